package user

import (
	"encoding/json"
	"fmt"
)

type (
	// FlexString accepts a JSON string or number; identification and
	// telephone arrive both ways.
	FlexString string

	Request struct {
		Identification       FlexString `json:"identification"`
		Name                 string     `json:"name"`
		LastName             string     `json:"last_name"`
		Email                string     `json:"email"`
		IDRole               FlexString `json:"id_role"`
		Telephone            FlexString `json:"telephone"`
		Address              string     `json:"address"`
		Department           string     `json:"department"`
		Municipality         string     `json:"municipality"`
		Password             string     `json:"password"`
		PasswordConfirmation *string    `json:"password_confirmation"`
	}
)

func (s *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a string or a number, got %s", b)
	}
	*s = FlexString(n.String())

	return nil
}
