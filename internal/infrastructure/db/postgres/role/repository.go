package role

import (
	"context"

	"user-registry-api/internal/domain/role"
	"user-registry-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) role.Repository {
	return &Repository{db: db}
}

func (r *Repository) Exists(ctx context.Context, id role.ID) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, SelectRoleExists, int64(id)).Scan(&ok); err != nil {
		return false, err
	}

	return ok, nil
}
