package validation

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/asaskevich/govalidator"
	ozzo "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"user-registry-api/internal/domain/role"
	"user-registry-api/internal/domain/user"
)

const (
	maxString    = 255
	maxTelephone = 15
	minPassword  = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var errRule = errors.New("rule failed")

// emailFormat checks syntax only, without the MX lookup is.Email performs.
var emailFormat = ozzo.NewStringRule(govalidator.IsEmail, "must be a valid email address")

// Errors lists the messages per field, e.g. {"email": ["El correo ya está registrado."]}.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Fields returns the failing field names in a stable order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	return fields
}

// Single builds the errors for one field failing one rule.
func Single(ctx context.Context, field, rule string, args ...any) Errors {
	return Errors{field: {MessagesFrom(ctx).Text(field, rule, args...)}}
}

// storeError carries a failed lookup out of a rule so it is reported as an
// internal failure instead of a field message.
type storeError struct{ err error }

func (e *storeError) Error() string { return e.err.Error() }

type check struct {
	rule string
	args []any
	ozzo.Rule
}

type Validator struct {
	users user.Repository
	roles role.Repository
}

func New(users user.Repository, roles role.Repository) *Validator {
	return &Validator{
		users: users,
		roles: roles,
	}
}

// ValidateUser normalizes in and applies the user rule set to it. exceptID
// excludes a row from the email uniqueness check (0 on create). A non-nil
// error means a store lookup failed and the Errors are incomplete.
func (v *Validator) ValidateUser(ctx context.Context, in user.Input, exceptID user.ID) (Errors, error) {
	in = in.Normalize()
	msgs := MessagesFrom(ctx)
	errs := Errors{}

	fields := []struct {
		name   string
		value  any
		checks []check
	}{
		{"identification", in.Identification, []check{required(), maxLen(maxString)}},
		{"name", in.Name, []check{required(), maxLen(maxString)}},
		{"last_name", in.LastName, []check{maxLen(maxString)}},
		{"email", in.Email, []check{
			required(),
			{rule: RuleEmail, Rule: emailFormat},
			maxLen(maxString),
			{rule: RuleUnique, Rule: ozzo.By(v.uniqueEmail(ctx, exceptID))},
		}},
		{"id_role", string(in.RoleID), []check{
			required(),
			{rule: RuleInteger, Rule: is.Int},
			{rule: RuleExists, Rule: ozzo.By(v.existingRole(ctx))},
		}},
		{"telephone", in.Telephone, []check{required(), maxLen(maxTelephone)}},
		{"address", in.Address, []check{required(), maxLen(maxString)}},
		{"department", in.Department, []check{required(), maxLen(maxString)}},
		{"municipality", in.Municipality, []check{required(), maxLen(maxString)}},
		{"password", in.Password, []check{
			required(),
			{rule: RuleMin, args: []any{minPassword}, Rule: ozzo.RuneLength(minPassword, 0)},
			{rule: RuleMax, args: []any{maxPasswordBytes}, Rule: ozzo.Length(0, maxPasswordBytes)},
			{rule: RuleConfirmed, Rule: ozzo.By(confirmed(in.PasswordConfirmation))},
		}},
	}

	for _, f := range fields {
		if err := run(msgs, errs, f.name, f.value, f.checks); err != nil {
			return nil, err
		}
	}

	return errs, nil
}

// ValidateAssignment checks the ids of a trainer assignment before any lookup.
func (v *Validator) ValidateAssignment(ctx context.Context, trainerID, apprenticeID user.ID) Errors {
	msgs := MessagesFrom(ctx)
	errs := Errors{}
	positive := []check{required(), {rule: RuleExists, Rule: ozzo.Min(user.ID(1))}}

	_ = run(msgs, errs, "trainer_id", trainerID, positive)
	_ = run(msgs, errs, "apprentice_id", apprenticeID, positive)

	return errs
}

func run(msgs Messages, errs Errors, field string, value any, checks []check) error {
	for _, c := range checks {
		err := ozzo.Validate(value, c.Rule)
		if err == nil {
			continue
		}
		var se *storeError
		if errors.As(err, &se) {
			return se.err
		}
		errs.Add(field, msgs.Text(field, c.rule, c.args...))
	}

	return nil
}

func required() check {
	return check{rule: RuleRequired, Rule: ozzo.Required}
}

func maxLen(n int) check {
	return check{rule: RuleMax, args: []any{n}, Rule: ozzo.RuneLength(0, n)}
}

func (v *Validator) uniqueEmail(ctx context.Context, exceptID user.ID) ozzo.RuleFunc {
	return func(value any) error {
		email := value.(string)
		if email == "" || !govalidator.IsEmail(email) {
			// reported by the format rule
			return nil
		}
		taken, err := v.users.EmailTaken(ctx, email, exceptID)
		if err != nil {
			return &storeError{err: err}
		}
		if taken {
			return errRule
		}
		return nil
	}
}

func (v *Validator) existingRole(ctx context.Context) ozzo.RuleFunc {
	return func(value any) error {
		id, err := strconv.ParseInt(value.(string), 10, 64)
		if errors.Is(err, strconv.ErrRange) || (err == nil && id <= 0) {
			// an integer no role id can hold
			return errRule
		}
		if err != nil {
			// empty or not an integer; reported by the other rules
			return nil
		}
		ok, err := v.roles.Exists(ctx, role.ID(id))
		if err != nil {
			return &storeError{err: err}
		}
		if !ok {
			return errRule
		}
		return nil
	}
}

func confirmed(confirmation *string) ozzo.RuleFunc {
	return func(value any) error {
		pw := value.(string)
		if confirmation == nil || pw == "" || *confirmation == pw {
			return nil
		}
		return errRule
	}
}
