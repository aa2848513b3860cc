package role

type (
	ID   int64
	Role struct {
		ID   ID
		Name string
	}
)
