package user

import (
	"encoding/json"

	"user-registry-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		ID:             int64(uDomain.ID),
		Identification: uDomain.Identification,
		Name:           uDomain.Name,
		LastName:       uDomain.LastName,
		Email:          uDomain.Email,
		Telephone:      uDomain.Telephone,
		Address:        uDomain.Address,
		Department:     uDomain.Department,
		Municipality:   uDomain.Municipality,
		IDRole:         int64(uDomain.RoleID),
		CreatedAt:      uDomain.CreatedAt,
		UpdatedAt:      uDomain.UpdatedAt,
	}
	if uDomain.Role != nil {
		u.Role = &Role{ID: int64(uDomain.Role.ID), Name: uDomain.Role.Name}
	}

	return u
}

// ToResponseUsers never returns nil so an empty list encodes as [].
func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToDomainInput(r Request) user.Input {
	return user.Input{
		Identification:       string(r.Identification),
		Name:                 r.Name,
		LastName:             r.LastName,
		Email:                r.Email,
		RoleID:               json.Number(r.IDRole),
		Telephone:            string(r.Telephone),
		Address:              r.Address,
		Department:           r.Department,
		Municipality:         r.Municipality,
		Password:             r.Password,
		PasswordConfirmation: r.PasswordConfirmation,
	}
}
