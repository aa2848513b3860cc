package user

import (
	"encoding/json"
	"strings"
	"time"

	"user-registry-api/internal/domain/role"
)

type (
	ID   int64
	User struct {
		ID             ID
		Identification string
		Name           string
		LastName       string
		Email          string
		PasswordHash   string
		Telephone      string
		Address        string
		Department     string
		Municipality   string
		RoleID         role.ID
		Role           *role.Role

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User

	// Input is the submitted field set for register, create and update.
	// Password is plaintext here and must never reach the store as is.
	Input struct {
		Identification       string
		Name                 string
		LastName             string
		Email                string
		RoleID               json.Number
		Telephone            string
		Address              string
		Department           string
		Municipality         string
		Password             string
		PasswordConfirmation *string
	}
)

func (u User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.LastName)
}

// Normalize trims surrounding blanks from every field except the password
// and normalizes the email.
func (in Input) Normalize() Input {
	in.Identification = strings.TrimSpace(in.Identification)
	in.Name = strings.TrimSpace(in.Name)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = NormalizeEmail(in.Email)
	in.RoleID = json.Number(strings.TrimSpace(string(in.RoleID)))
	in.Telephone = strings.TrimSpace(in.Telephone)
	in.Address = strings.TrimSpace(in.Address)
	in.Department = strings.TrimSpace(in.Department)
	in.Municipality = strings.TrimSpace(in.Municipality)

	return in
}

// NormalizeEmail is applied before every lookup and write so the unique
// index is effectively case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
