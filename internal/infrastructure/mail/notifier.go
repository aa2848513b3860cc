package mail

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-registry-api/internal/domain/notification"
)

const subjectTrainerAssigned = "Nuevo aprendiz asignado"

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type trainerAssignedEvent struct {
	Id      string                       `json:"event_id"`
	Payload notification.TrainerAssigned `json:"payload"`
}

// TrainerNotifier turns queued notification events into mails.
type TrainerNotifier struct {
	sender   Sender
	log      *zap.Logger
	mCounter *prometheus.CounterVec
}

func NewTrainerNotifier(sender Sender, logger *zap.Logger, mCounter *prometheus.CounterVec) *TrainerNotifier {
	return &TrainerNotifier{
		sender:   sender,
		log:      logger,
		mCounter: mCounter,
	}
}

func (n *TrainerNotifier) Handle(ctx context.Context, routingKey string, body []byte) error {
	if routingKey != notification.TypeTrainerAssigned {
		return fmt.Errorf("unexpected routing key %q", routingKey)
	}

	var e trainerAssignedEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if e.Payload.TrainerEmail == "" {
		return fmt.Errorf("event %s: trainer email is empty", e.Id)
	}

	var html bytes.Buffer
	if err := templates.ExecuteTemplate(&html, "trainer_assigned.html", e.Payload); err != nil {
		return fmt.Errorf("render mail: %w", err)
	}

	if err := n.sender.Send(ctx, Message{
		To:       e.Payload.TrainerEmail,
		Subject:  subjectTrainerAssigned,
		HTMLBody: html.String(),
	}); err != nil {
		n.mCounter.WithLabelValues("notification_mail_failed_total").Inc()
		return err
	}

	n.mCounter.WithLabelValues("notification_mail_sent_total").Inc()
	n.log.Info("trainer notified",
		zap.String("event_id", e.Id),
		zap.String("to", e.Payload.TrainerEmail),
	)

	return nil
}
