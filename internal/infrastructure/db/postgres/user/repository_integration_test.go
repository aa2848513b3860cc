//go:build integration

package user_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"user-registry-api/internal/domain/role"
	domain "user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/db/postgres"
	roleDB "user-registry-api/internal/infrastructure/db/postgres/role"
	userDB "user-registry-api/internal/infrastructure/db/postgres/user"
)

func startPostgres(t *testing.T) (string, string) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "registry",
			"POSTGRES_PASSWORD": "registry",
			"POSTGRES_DB":       "registry",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	hostPort := fmt.Sprintf("%s:%s", host, port.Port())
	return "postgres://registry:registry@" + hostPort + "/registry?sslmode=disable",
		"pgx5://registry:registry@" + hostPort + "/registry?sslmode=disable"
}

func TestRepository_Postgres(t *testing.T) {
	dsn, migrateDSN := startPostgres(t)
	logger := zap.NewNop()
	require.NoError(t, postgres.Migrate(logger, migrateDSN))

	ctx := context.Background()
	pool, err := postgres.New(ctx, logger, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	users := userDB.NewRepository(pool)
	roles := roleDB.NewRepository(pool)

	ok, err := roles.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = roles.Exists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)

	in := domain.User{
		Identification: "1020304050",
		Name:           "Ana",
		Email:          "ana@example.com",
		PasswordHash:   "$2a$04$hash",
		Telephone:      "3001234567",
		Address:        "Calle 1",
		Department:     "Antioquia",
		Municipality:   "Medellín",
		RoleID:         1,
	}
	created, err := users.CreateUser(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "apprentice", created.Role.Name)

	_, err = users.CreateUser(ctx, in)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	in.Email = "other@example.com"
	in.RoleID = 999
	_, err = users.CreateUser(ctx, in)
	require.ErrorIs(t, err, domain.ErrRoleNotFound)

	in.RoleID = 3
	instructor, err := users.CreateUser(ctx, in)
	require.NoError(t, err)

	apprentices, err := users.FetchUsersByRoles(ctx, []role.ID{1, 2})
	require.NoError(t, err)
	require.Len(t, apprentices, 1)
	assert.Equal(t, created.ID, apprentices[0].ID)

	taken, err := users.EmailTaken(ctx, "ana@example.com", created.ID)
	require.NoError(t, err)
	assert.False(t, taken)
	taken, err = users.EmailTaken(ctx, "ana@example.com", instructor.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	instructor.Name = "Luis"
	updated, err := users.UpdateUser(ctx, *instructor)
	require.NoError(t, err)
	assert.Equal(t, "Luis", updated.Name)

	deleted, err := users.DeleteUser(ctx, instructor.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = users.DeleteUser(ctx, instructor.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	all, err := users.FetchUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
