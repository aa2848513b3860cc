package services

import (
	"context"
	"errors"
	"fmt"

	"user-registry-api/internal/application/validation"
	"user-registry-api/internal/domain/user"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")

	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrRoleGroupNotFound = fmt.Errorf("role group %w", ErrNotFound)
)

// ValidationError is returned instead of any mutation when input fails the rule set.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields.Fields())
}

func internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}

// storeError re-surfaces constraint violations the validation pass raced with.
func storeError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return &ValidationError{Fields: validation.Single(ctx, "email", validation.RuleUnique)}
	case errors.Is(err, user.ErrRoleNotFound):
		return &ValidationError{Fields: validation.Single(ctx, "id_role", validation.RuleExists)}
	default:
		return internal(op, err)
	}
}
