package services

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-registry-api/internal/domain/notification"
	"user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/mq"
)

type FakeRabbitMQ struct {
	in chan mq.Event
}

func (f *FakeRabbitMQ) Connect(context.Context, string) error { return nil }
func (f *FakeRabbitMQ) Init() error                           { return nil }
func (f *FakeRabbitMQ) PublisherWorker(context.Context)       {}
func (f *FakeRabbitMQ) GetInputChan() chan mq.Event           { return f.in }
func (f *FakeRabbitMQ) GetConn() *amqp091.Connection          { return nil }

func TestNotificationService_NotifyTrainerAssigned(t *testing.T) {
	s, us := newUserFixture(t)
	seeded := seed(t, us, map[string]string{"a@example.com": "3", "b@example.com": "1"})
	trainer, apprentice := seeded["a@example.com"], seeded["b@example.com"]

	rmq := &FakeRabbitMQ{in: make(chan mq.Event, 1)}
	counter := newTestCounter()
	svc := NewNotificationService(s, newTestValidator(s), rmq, zap.NewNop(), counter)

	err := svc.NotifyTrainerAssigned(context.Background(), trainer.ID, apprentice.ID)
	require.NoError(t, err)

	select {
	case e := <-rmq.in:
		assert.Equal(t, notification.TypeTrainerAssigned, e.Type)
		assert.NotEmpty(t, e.Id.String())
		assert.WithinDuration(t, time.Now(), e.TS, 5*time.Second)
		assert.Equal(t, notification.TrainerAssigned{
			TrainerName:    "Ana",
			TrainerEmail:   "a@example.com",
			ApprenticeName: "Ana Gómez",
		}, e.Payload)
	default:
		t.Fatal("no event queued")
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("notification_enqueued_total")))
}

func TestNotificationService_FullQueueDropsEvent(t *testing.T) {
	s, us := newUserFixture(t)
	seed(t, us, map[string]string{"a@example.com": "3", "b@example.com": "1"})

	rmq := &FakeRabbitMQ{in: make(chan mq.Event)}
	counter := newTestCounter()
	svc := NewNotificationService(s, newTestValidator(s), rmq, zap.NewNop(), counter)

	done := make(chan error, 1)
	go func() { done <- svc.NotifyTrainerAssigned(context.Background(), 1, 2) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("notify blocked on a full queue")
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("notification_dropped_total")))
}

func TestNotificationService_Failures(t *testing.T) {
	s, us := newUserFixture(t)
	seed(t, us, map[string]string{"a@example.com": "3"})
	rmq := &FakeRabbitMQ{in: make(chan mq.Event, 1)}
	svc := NewNotificationService(s, newTestValidator(s), rmq, zap.NewNop(), newTestCounter())
	ctx := context.Background()

	tests := []struct {
		name         string
		trainerID    user.ID
		apprenticeID user.ID
		wantErr      error
		wantFields   []string
	}{
		{name: "missing ids", trainerID: 0, apprenticeID: -1, wantFields: []string{"apprentice_id", "trainer_id"}},
		{name: "unknown apprentice", trainerID: 1, apprenticeID: 50, wantErr: ErrUserNotFound},
		{name: "unknown trainer", trainerID: 50, apprenticeID: 1, wantErr: ErrUserNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := svc.NotifyTrainerAssigned(ctx, tt.trainerID, tt.apprenticeID)
			if tt.wantFields != nil {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantFields, ve.Fields.Fields())
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
			assert.Empty(t, rmq.in)
		})
	}
}
