package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/application/validation"
	"user-registry-api/internal/domain/role"
	domain "user-registry-api/internal/domain/user"
)

type UserService struct {
	userRepository domain.Repository
	validator      *validation.Validator
	hasher         ports.Hasher
	roleGroups     map[string][]role.ID
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	validator *validation.Validator,
	hasher ports.Hasher,
	roleGroups map[string][]role.ID,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		validator:      validator,
		hasher:         hasher,
		roleGroups:     roleGroups,
		mCounter:       mCounter,
	}
}

func (us *UserService) FindUsers(ctx context.Context) (domain.Users, error) {
	users, err := us.userRepository.FetchUsers(ctx)
	if err != nil {
		return nil, internal("find users", err)
	}

	return users, nil
}

func (us *UserService) FindUsersByRoles(ctx context.Context, roleIDs []role.ID) (domain.Users, error) {
	if len(roleIDs) == 0 {
		return domain.Users{}, nil
	}

	users, err := us.userRepository.FetchUsersByRoles(ctx, roleIDs)
	if err != nil {
		return nil, internal("find users by roles", err)
	}

	return users, nil
}

func (us *UserService) FindUsersByGroup(ctx context.Context, group string) (domain.Users, error) {
	ids, ok := us.roleGroups[group]
	if !ok {
		return nil, ErrRoleGroupNotFound
	}

	return us.FindUsersByRoles(ctx, ids)
}

func (us *UserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, internal("find user", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return u, nil
}

func (us *UserService) CreateUser(ctx context.Context, in domain.Input) (*domain.User, error) {
	u, err := buildUser(ctx, us.validator, us.hasher, in, 0)
	if err != nil {
		return nil, err
	}

	uRet, err := us.userRepository.CreateUser(ctx, *u)
	if err != nil {
		return nil, storeError(ctx, "create user", err)
	}

	us.mCounter.WithLabelValues("user_created_total").Inc()

	return uRet, nil
}

// UpdateUser overwrites every field, password included. A missing user is
// reported before any validation query runs.
func (us *UserService) UpdateUser(ctx context.Context, id domain.ID, in domain.Input) (*domain.User, error) {
	if _, err := us.FindUserByID(ctx, id); err != nil {
		return nil, err
	}

	u, err := buildUser(ctx, us.validator, us.hasher, in, id)
	if err != nil {
		return nil, err
	}

	uRet, err := us.userRepository.UpdateUser(ctx, *u)
	if err != nil {
		return nil, storeError(ctx, "update user", err)
	}
	if uRet == nil {
		// deleted between the existence check and the write
		return nil, ErrUserNotFound
	}

	us.mCounter.WithLabelValues("user_updated_total").Inc()

	return uRet, nil
}

func (us *UserService) DeleteUser(ctx context.Context, id domain.ID) error {
	ok, err := us.userRepository.DeleteUser(ctx, id)
	if err != nil {
		return internal("delete user", err)
	}
	if !ok {
		return ErrUserNotFound
	}

	us.mCounter.WithLabelValues("user_deleted_total").Inc()

	return nil
}
