package ports

import (
	"context"

	"user-registry-api/internal/domain/user"
)

type Notifier interface {
	NotifyTrainerAssigned(ctx context.Context, trainerID, apprenticeID user.ID) error
}
