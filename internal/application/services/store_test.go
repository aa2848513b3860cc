package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"user-registry-api/internal/application/validation"
	"user-registry-api/internal/domain/role"
	"user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/hasher"
	"user-registry-api/internal/infrastructure/metrics"
)

// memStore emulates the users table, including the unique email index and
// the role foreign key, and records every call.
type memStore struct {
	mu     sync.Mutex
	nextID user.ID
	users  map[user.ID]user.User
	roles  map[role.ID]string
	calls  []string
	err    error
}

func newMemStore() *memStore {
	return &memStore{
		nextID: 1,
		users:  map[user.ID]user.User{},
		roles: map[role.ID]string{
			1: "apprentice",
			2: "apprentice_practice",
			3: "instructor",
			4: "lead_instructor",
			5: "admin",
		},
	}
}

func (s *memStore) record(call string) error {
	s.calls = append(s.calls, call)
	return s.err
}

func (s *memStore) withRole(u user.User) *user.User {
	u.Role = &role.Role{ID: u.RoleID, Name: s.roles[u.RoleID]}
	return &u
}

func (s *memStore) sorted(keep func(user.User) bool) user.Users {
	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	out := user.Users{}
	for _, id := range ids {
		if u := s.users[user.ID(id)]; keep(u) {
			out = append(out, s.withRole(u))
		}
	}
	return out
}

func (s *memStore) FetchUsers(context.Context) (user.Users, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("FetchUsers"); err != nil {
		return nil, err
	}
	return s.sorted(func(user.User) bool { return true }), nil
}

func (s *memStore) FetchUsersByRoles(_ context.Context, roleIDs []role.ID) (user.Users, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("FetchUsersByRoles"); err != nil {
		return nil, err
	}
	return s.sorted(func(u user.User) bool {
		for _, id := range roleIDs {
			if u.RoleID == id {
				return true
			}
		}
		return false
	}), nil
}

func (s *memStore) FetchUserByID(_ context.Context, id user.ID) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("FetchUserByID"); err != nil {
		return nil, err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return s.withRole(u), nil
}

func (s *memStore) FetchUserByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("FetchUserByEmail"); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Email == email {
			return s.withRole(u), nil
		}
	}
	return nil, nil
}

func (s *memStore) emailTaken(email string, exceptID user.ID) bool {
	for id, u := range s.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (s *memStore) EmailTaken(_ context.Context, email string, exceptID user.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("EmailTaken"); err != nil {
		return false, err
	}
	return s.emailTaken(email, exceptID), nil
}

func (s *memStore) CreateUser(_ context.Context, u user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("CreateUser"); err != nil {
		return nil, err
	}
	if s.emailTaken(u.Email, 0) {
		return nil, user.ErrEmailAlreadyExists
	}
	if _, ok := s.roles[u.RoleID]; !ok {
		return nil, user.ErrRoleNotFound
	}
	u.ID = s.nextID
	s.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u
	return s.withRole(u), nil
}

func (s *memStore) UpdateUser(_ context.Context, u user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("UpdateUser"); err != nil {
		return nil, err
	}
	old, ok := s.users[u.ID]
	if !ok {
		return nil, nil
	}
	if s.emailTaken(u.Email, u.ID) {
		return nil, user.ErrEmailAlreadyExists
	}
	if _, ok := s.roles[u.RoleID]; !ok {
		return nil, user.ErrRoleNotFound
	}
	u.CreatedAt = old.CreatedAt
	u.UpdatedAt = time.Now()
	s.users[u.ID] = u
	return s.withRole(u), nil
}

func (s *memStore) DeleteUser(_ context.Context, id user.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("DeleteUser"); err != nil {
		return false, err
	}
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

func (s *memStore) Exists(_ context.Context, id role.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("RoleExists"); err != nil {
		return false, err
	}
	_, ok := s.roles[id]
	return ok, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *memStore) resetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func newTestHasher(t *testing.T) *hasher.Bcrypt {
	t.Helper()
	h, err := hasher.NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func newTestCounter() *prometheus.CounterVec {
	return metrics.NewCounter(prometheus.NewRegistry())
}

func newTestValidator(s *memStore) *validation.Validator {
	return validation.New(s, s)
}

func registerInput(email string, roleID string) user.Input {
	return user.Input{
		Identification: "1020304050",
		Name:           "Ana",
		LastName:       "Gómez",
		Email:          email,
		RoleID:         json.Number(roleID),
		Telephone:      "3001234567",
		Address:        "Calle 1",
		Department:     "Antioquia",
		Municipality:   "Medellín",
		Password:       "secret123",
	}
}
