package auth

import (
	"errors"
	"time"

	"user-registry-api/internal/domain/user"
)

const TokenTypeBearer = "bearer"

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

type (
	Credentials struct {
		Email    string
		Password string
	}
	Session struct {
		AccessToken string
		TokenType   string
		ExpiresAt   time.Time
		User        *user.User
	}
)
