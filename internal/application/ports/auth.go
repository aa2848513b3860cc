package ports

import (
	"context"

	"user-registry-api/internal/domain/auth"
	"user-registry-api/internal/domain/user"
)

type Auth interface {
	Register(ctx context.Context, in user.Input) (*user.User, error)
	Login(ctx context.Context, c auth.Credentials) (*auth.Session, error)
	GetUser(ctx context.Context, token string) (*user.User, error)
}
