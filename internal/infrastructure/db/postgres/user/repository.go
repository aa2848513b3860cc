package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"user-registry-api/internal/domain/role"
	"user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	return r.fetchMany(ctx, SelectUsers)
}

func (r *Repository) FetchUsersByRoles(ctx context.Context, ids []role.ID) (user.Users, error) {
	return r.fetchMany(ctx, SelectUsersByRoles, roleIDs(ids))
}

func (r *Repository) fetchMany(ctx context.Context, query string, args ...any) (user.Users, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := make(Users, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(us), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByID, int64(id))
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByEmail, email)
}

func (r *Repository) fetchOne(ctx context.Context, query string, args ...any) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) EmailTaken(ctx context.Context, email string, exceptID user.ID) (bool, error) {
	var taken bool
	if err := r.db.QueryRow(ctx, SelectEmailTaken, email, int64(exceptID)).Scan(&taken); err != nil {
		return false, err
	}

	return taken, nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(
		ctx,
		InsertUser,
		req.Identification, req.Name, req.LastName, req.Email, req.PasswordHash,
		req.Telephone, req.Address, req.Department, req.Municipality, int64(req.RoleID),
	))
	if err != nil {
		return nil, mapWriteError(err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) UpdateUser(ctx context.Context, req user.User) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(
		ctx,
		UpdateUserByID,
		req.Identification, req.Name, req.LastName, req.Email, req.PasswordHash,
		req.Telephone, req.Address, req.Department, req.Municipality, int64(req.RoleID),
		int64(req.ID),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) DeleteUser(ctx context.Context, id user.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteUserByID, int64(id))
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func mapWriteError(err error) error {
	switch {
	case postgres.IsPgUniqueViolation(err):
		return user.ErrEmailAlreadyExists
	case postgres.IsPgForeignKeyViolation(err):
		return user.ErrRoleNotFound
	}

	return fmt.Errorf("users write: %w", err)
}

func scanUser(row pgx.Row) (*User, error) {
	u := new(User)
	if err := row.Scan(
		&u.ID,
		&u.Identification,
		&u.Name,
		&u.LastName,
		&u.Email,
		&u.Password,
		&u.Telephone,
		&u.Address,
		&u.Department,
		&u.Municipality,
		&u.IDRole,

		&u.CreatedAt,
		&u.UpdatedAt,

		&u.RoleID,
		&u.RoleName,
	); err != nil {
		return nil, err
	}

	return u, nil
}
