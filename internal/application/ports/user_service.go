package ports

import (
	"context"

	"user-registry-api/internal/domain/role"
	"user-registry-api/internal/domain/user"
)

type UserService interface {
	FindUsers(ctx context.Context) (user.Users, error)
	FindUsersByRoles(ctx context.Context, roleIDs []role.ID) (user.Users, error)
	FindUsersByGroup(ctx context.Context, group string) (user.Users, error)
	FindUserByID(ctx context.Context, id user.ID) (*user.User, error)
	CreateUser(ctx context.Context, in user.Input) (*user.User, error)
	UpdateUser(ctx context.Context, id user.ID, in user.Input) (*user.User, error)
	DeleteUser(ctx context.Context, id user.ID) error
}
