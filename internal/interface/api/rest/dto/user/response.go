package user

import "time"

type (
	Role struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	// User never carries the password hash.
	User struct {
		ID             int64     `json:"id"`
		Identification string    `json:"identification"`
		Name           string    `json:"name"`
		LastName       string    `json:"last_name"`
		Email          string    `json:"email"`
		Telephone      string    `json:"telephone"`
		Address        string    `json:"address"`
		Department     string    `json:"department"`
		Municipality   string    `json:"municipality"`
		IDRole         int64     `json:"id_role"`
		Role           *Role     `json:"role,omitempty"`
		CreatedAt      time.Time `json:"created_at"`
		UpdatedAt      time.Time `json:"updated_at"`
	}
	Users []User
)
