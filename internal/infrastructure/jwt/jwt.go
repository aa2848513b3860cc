package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"user-registry-api/internal/domain/auth"
	"user-registry-api/internal/domain/user"
)

var ErrNoSigningKey = errors.New("jwt signing key is not configured")

type Service struct {
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
}

func New(jwtSecret string, ttl time.Duration) *Service {
	return &Service{
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
		now:       time.Now,
	}
}

type Claims struct {
	jwt.RegisteredClaims
}

// Issue signs a token whose subject is the user id.
func (s *Service) Issue(userID user.ID) (string, time.Time, error) {
	if len(s.jwtSecret) == 0 {
		return "", time.Time{}, ErrNoSigningKey
	}

	now := s.now()
	exp := now.Add(s.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(int64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        ulid.Make().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, exp, nil
}

// Verify returns the bound user id. Expired tokens with a valid signature
// fail with auth.ErrTokenExpired, everything else with auth.ErrTokenInvalid.
func (s *Service) Verify(tokenStr string) (user.ID, error) {
	if len(s.jwtSecret) == 0 {
		return 0, ErrNoSigningKey
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	var claims Claims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, auth.ErrTokenExpired
		}
		return 0, fmt.Errorf("%w: %v", auth.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return 0, auth.ErrTokenInvalid
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad subject %q", auth.ErrTokenInvalid, claims.Subject)
	}

	return user.ID(id), nil
}
