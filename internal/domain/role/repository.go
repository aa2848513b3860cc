package role

import "context"

type Repository interface {
	Exists(ctx context.Context, id ID) (bool, error)
}
