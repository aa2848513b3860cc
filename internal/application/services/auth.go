package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/application/validation"
	"user-registry-api/internal/domain/auth"
	"user-registry-api/internal/domain/role"
	domain "user-registry-api/internal/domain/user"
)

type AuthService struct {
	userRepository domain.Repository
	validator      *validation.Validator
	hasher         ports.Hasher
	tokens         ports.TokenIssuer
	mCounter       *prometheus.CounterVec
}

func NewAuthService(
	userRepository domain.Repository,
	validator *validation.Validator,
	hasher ports.Hasher,
	tokens ports.TokenIssuer,
	mCounter *prometheus.CounterVec,
) ports.Auth {
	return &AuthService{
		userRepository: userRepository,
		validator:      validator,
		hasher:         hasher,
		tokens:         tokens,
		mCounter:       mCounter,
	}
}

func (as *AuthService) Register(ctx context.Context, in domain.Input) (*domain.User, error) {
	u, err := buildUser(ctx, as.validator, as.hasher, in, 0)
	if err != nil {
		as.mCounter.WithLabelValues("register_failed_total").Inc()
		return nil, err
	}

	uRet, err := as.userRepository.CreateUser(ctx, *u)
	if err != nil {
		as.mCounter.WithLabelValues("register_failed_total").Inc()
		return nil, storeError(ctx, "register", err)
	}

	as.mCounter.WithLabelValues("register_success_total").Inc()

	return uRet, nil
}

// Login never tells an unknown email apart from a wrong password.
func (as *AuthService) Login(ctx context.Context, c auth.Credentials) (*auth.Session, error) {
	email := domain.NormalizeEmail(c.Email)
	if email == "" || c.Password == "" {
		as.mCounter.WithLabelValues("login_failed_total").Inc()
		return nil, ErrUnauthorized
	}

	u, err := as.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return nil, internal("login", err)
	}

	hash := ""
	if u != nil {
		hash = u.PasswordHash
	}
	if err = as.hasher.Compare(hash, c.Password); err != nil || u == nil {
		as.mCounter.WithLabelValues("login_failed_total").Inc()
		return nil, ErrUnauthorized
	}

	token, exp, err := as.tokens.Issue(u.ID)
	if err != nil {
		return nil, internal("issue token", err)
	}

	as.mCounter.WithLabelValues("login_success_total").Inc()

	return &auth.Session{
		AccessToken: token,
		TokenType:   auth.TokenTypeBearer,
		ExpiresAt:   exp,
		User:        u,
	}, nil
}

// GetUser resolves the token to a fresh read of its user.
func (as *AuthService) GetUser(ctx context.Context, token string) (*domain.User, error) {
	id, err := as.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	u, err := as.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, internal("get user", err)
	}
	if u == nil {
		return nil, ErrUnauthorized
	}

	return u, nil
}

// buildUser validates in and returns the record to persist with its password hashed.
func buildUser(
	ctx context.Context,
	v *validation.Validator,
	h ports.Hasher,
	in domain.Input,
	exceptID domain.ID,
) (*domain.User, error) {
	in = in.Normalize()

	fieldErrs, err := v.ValidateUser(ctx, in, exceptID)
	if err != nil {
		return nil, internal("validate user", err)
	}
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	roleID, err := in.RoleID.Int64()
	if err != nil {
		return nil, internal("role id", err)
	}
	hash, err := h.Hash(in.Password)
	if err != nil {
		return nil, internal("hash password", err)
	}

	return &domain.User{
		ID:             exceptID,
		Identification: in.Identification,
		Name:           in.Name,
		LastName:       in.LastName,
		Email:          in.Email,
		PasswordHash:   hash,
		Telephone:      in.Telephone,
		Address:        in.Address,
		Department:     in.Department,
		Municipality:   in.Municipality,
		RoleID:         role.ID(roleID),
	}, nil
}
