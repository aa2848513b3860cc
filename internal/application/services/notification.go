package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/application/validation"
	"user-registry-api/internal/domain/notification"
	domain "user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/mq"
)

type NotificationService struct {
	userRepository domain.Repository
	validator      *validation.Validator
	mq             ports.RabbitMQ
	logger         *zap.Logger
	mCounter       *prometheus.CounterVec
	now            func() time.Time
}

func NewNotificationService(
	userRepository domain.Repository,
	validator *validation.Validator,
	mq ports.RabbitMQ,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.Notifier {
	return &NotificationService{
		userRepository: userRepository,
		validator:      validator,
		mq:             mq,
		logger:         logger,
		mCounter:       mCounter,
		now:            time.Now,
	}
}

// NotifyTrainerAssigned queues the mail for the trainer and returns without
// waiting on the broker. With a full queue the event is dropped and logged.
func (ns *NotificationService) NotifyTrainerAssigned(ctx context.Context, trainerID, apprenticeID domain.ID) error {
	if errs := ns.validator.ValidateAssignment(ctx, trainerID, apprenticeID); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	trainer, err := ns.fetch(ctx, trainerID)
	if err != nil {
		return err
	}
	apprentice, err := ns.fetch(ctx, apprenticeID)
	if err != nil {
		return err
	}

	e := mq.Event{
		Id:   uuid.New(),
		TS:   ns.now(),
		Type: notification.TypeTrainerAssigned,
		Payload: notification.TrainerAssigned{
			TrainerName:    trainer.Name,
			TrainerEmail:   trainer.Email,
			ApprenticeName: apprentice.FullName(),
		},
	}

	select {
	case ns.mq.GetInputChan() <- e:
		ns.mCounter.WithLabelValues("notification_enqueued_total").Inc()
	default:
		ns.logger.Error("notification dropped, publisher queue full",
			zap.String("event_id", e.Id.String()),
			zap.Int64("trainer_id", int64(trainerID)),
			zap.Int64("apprentice_id", int64(apprenticeID)),
		)
		ns.mCounter.WithLabelValues("notification_dropped_total").Inc()
	}

	return nil
}

func (ns *NotificationService) fetch(ctx context.Context, id domain.ID) (*domain.User, error) {
	u, err := ns.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, internal("notify trainer assigned", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return u, nil
}
