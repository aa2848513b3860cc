package user

import (
	"time"
)

type (
	User struct {
		ID             int64
		Identification string
		Name           string
		LastName       string
		Email          string
		Password       string
		Telephone      string
		Address        string
		Department     string
		Municipality   string
		IDRole         int64

		CreatedAt time.Time
		UpdatedAt time.Time

		RoleID   int64
		RoleName string
	}
	Users []*User
)
