package validator

import (
	"errors"
	"strconv"
	"strings"

	"user-registry-api/internal/domain/role"
	"user-registry-api/internal/domain/user"
)

var ErrInvalidID = errors.New("id must be a positive integer")

func ParseID(s string) (user.ID, error) {
	id, err := parsePositive(s)
	return user.ID(id), err
}

// ParseRoleIDs reads a comma separated list such as "1,2". An empty string
// yields no ids and no error.
func ParseRoleIDs(s string) ([]role.ID, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var ids []role.ID
	for _, part := range strings.Split(s, ",") {
		id, err := parsePositive(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, role.ID(id))
	}

	return ids, nil
}

func parsePositive(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
