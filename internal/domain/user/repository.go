package user

import (
	"context"
	"errors"

	"user-registry-api/internal/domain/role"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrRoleNotFound       = errors.New("role not found")
)

// Repository lookups return (nil, nil) when the row does not exist.
type Repository interface {
	FetchUsers(ctx context.Context) (Users, error)
	FetchUsersByRoles(ctx context.Context, roleIDs []role.ID) (Users, error)
	FetchUserByID(ctx context.Context, id ID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	EmailTaken(ctx context.Context, email string, exceptID ID) (bool, error)
	CreateUser(ctx context.Context, u User) (*User, error)
	UpdateUser(ctx context.Context, u User) (*User, error)
	DeleteUser(ctx context.Context, id ID) (bool, error)
}
