package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"user-registry-api/internal/domain/auth"
	"user-registry-api/internal/domain/role"
	domain "user-registry-api/internal/domain/user"
	jwtSvc "user-registry-api/internal/infrastructure/jwt"
)

const testSecret = "test-secret"

type FakeUserService struct {
	FindUsersFunc        func(ctx context.Context) (domain.Users, error)
	FindUsersByRolesFunc func(ctx context.Context, roleIDs []role.ID) (domain.Users, error)
	FindUsersByGroupFunc func(ctx context.Context, group string) (domain.Users, error)
	FindUserByIDFunc     func(ctx context.Context, id domain.ID) (*domain.User, error)
	CreateUserFunc       func(ctx context.Context, in domain.Input) (*domain.User, error)
	UpdateUserFunc       func(ctx context.Context, id domain.ID, in domain.Input) (*domain.User, error)
	DeleteUserFunc       func(ctx context.Context, id domain.ID) error
}

func (f *FakeUserService) FindUsers(ctx context.Context) (domain.Users, error) {
	if f.FindUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUsersFunc(ctx)
}
func (f *FakeUserService) FindUsersByRoles(ctx context.Context, roleIDs []role.ID) (domain.Users, error) {
	if f.FindUsersByRolesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUsersByRolesFunc(ctx, roleIDs)
}
func (f *FakeUserService) FindUsersByGroup(ctx context.Context, group string) (domain.Users, error) {
	if f.FindUsersByGroupFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUsersByGroupFunc(ctx, group)
}
func (f *FakeUserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUserByIDFunc(ctx, id)
}
func (f *FakeUserService) CreateUser(ctx context.Context, in domain.Input) (*domain.User, error) {
	if f.CreateUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateUserFunc(ctx, in)
}
func (f *FakeUserService) UpdateUser(ctx context.Context, id domain.ID, in domain.Input) (*domain.User, error) {
	if f.UpdateUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateUserFunc(ctx, id, in)
}
func (f *FakeUserService) DeleteUser(ctx context.Context, id domain.ID) error {
	if f.DeleteUserFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteUserFunc(ctx, id)
}

type FakeAuthService struct {
	RegisterFunc func(ctx context.Context, in domain.Input) (*domain.User, error)
	LoginFunc    func(ctx context.Context, c auth.Credentials) (*auth.Session, error)
	GetUserFunc  func(ctx context.Context, token string) (*domain.User, error)
}

func (f *FakeAuthService) Register(ctx context.Context, in domain.Input) (*domain.User, error) {
	if f.RegisterFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RegisterFunc(ctx, in)
}
func (f *FakeAuthService) Login(ctx context.Context, c auth.Credentials) (*auth.Session, error) {
	if f.LoginFunc == nil {
		return nil, errors.New("not used")
	}
	return f.LoginFunc(ctx, c)
}
func (f *FakeAuthService) GetUser(ctx context.Context, token string) (*domain.User, error) {
	if f.GetUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.GetUserFunc(ctx, token)
}

type FakeNotifier struct {
	NotifyTrainerAssignedFunc func(ctx context.Context, trainerID, apprenticeID domain.ID) error
}

func (f *FakeNotifier) NotifyTrainerAssigned(ctx context.Context, trainerID, apprenticeID domain.ID) error {
	if f.NotifyTrainerAssignedFunc == nil {
		return errors.New("not used")
	}
	return f.NotifyTrainerAssignedFunc(ctx, trainerID, apprenticeID)
}

func newTestEngine(t *testing.T) (*gin.Engine, *jwtSvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return gin.New(), jwtSvc.New(testSecret, time.Hour)
}

func bearer(t *testing.T, j *jwtSvc.Service, id domain.ID) map[string]string {
	t.Helper()
	tok, _, err := j.Issue(id)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func someDomainUser(id domain.ID) *domain.User {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:             id,
		Identification: "1020304050",
		Name:           "Ana",
		LastName:       "Gómez",
		Email:          "ana@example.com",
		PasswordHash:   "$2a$10$hash",
		Telephone:      "3001234567",
		Address:        "Calle 1",
		Department:     "Antioquia",
		Municipality:   "Medellín",
		RoleID:         1,
		Role:           &role.Role{ID: 1, Name: "apprentice"},
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
}

func validUserBody() map[string]any {
	return map[string]any{
		"identification": 1020304050,
		"name":           "Ana",
		"last_name":      "Gómez",
		"email":          "ana@example.com",
		"id_role":        1,
		"telephone":      "3001234567",
		"address":        "Calle 1",
		"department":     "Antioquia",
		"municipality":   "Medellín",
		"password":       "secret123",
	}
}
