package ports

import (
	"time"

	"user-registry-api/internal/domain/user"
)

type TokenIssuer interface {
	Issue(userID user.ID) (string, time.Time, error)
	Verify(token string) (user.ID, error)
}
