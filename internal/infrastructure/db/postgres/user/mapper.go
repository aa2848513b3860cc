package user

import (
	"user-registry-api/internal/domain/role"
	domain "user-registry-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:             domain.ID(model.ID),
		Identification: model.Identification,
		Name:           model.Name,
		LastName:       model.LastName,
		Email:          model.Email,
		PasswordHash:   model.Password,
		Telephone:      model.Telephone,
		Address:        model.Address,
		Department:     model.Department,
		Municipality:   model.Municipality,
		RoleID:         role.ID(model.IDRole),
		Role: &role.Role{
			ID:   role.ID(model.RoleID),
			Name: model.RoleName,
		},

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u
}

func fromDBModels(models Users) domain.Users {
	us := make(domain.Users, len(models))
	for idx, u := range models {
		us[idx] = fromDBModel(u)
	}

	return us
}

func roleIDs(ids []role.ID) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}

	return out
}
