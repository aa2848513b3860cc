package validation

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Generic rule keys. A field may override any of them with a "<field>.<rule>" entry.
const (
	RuleRequired  = "required"
	RuleMax       = "max"
	RuleMin       = "min"
	RuleEmail     = "email"
	RuleInteger   = "integer"
	RuleUnique    = "unique"
	RuleExists    = "exists"
	RuleConfirmed = "confirmed"
)

var supported = []language.Tag{language.Spanish, language.English}

var matcher = language.NewMatcher(supported)

var generic = map[language.Tag]map[string]string{
	language.Spanish: {
		RuleRequired:  "El campo %s es obligatorio.",
		RuleMax:       "El campo %s no debe ser mayor que %d caracteres.",
		RuleMin:       "El campo %s debe tener al menos %d caracteres.",
		RuleEmail:     "El campo %s debe ser una dirección de correo válida.",
		RuleInteger:   "El campo %s debe ser un número entero.",
		RuleUnique:    "El valor del campo %s ya está en uso.",
		RuleExists:    "El %s seleccionado no es válido.",
		RuleConfirmed: "La confirmación del campo %s no coincide.",
	},
	language.English: {
		RuleRequired:  "The %s field is required.",
		RuleMax:       "The %s field must not be greater than %d characters.",
		RuleMin:       "The %s field must be at least %d characters.",
		RuleEmail:     "The %s field must be a valid email address.",
		RuleInteger:   "The %s field must be an integer.",
		RuleUnique:    "The %s has already been taken.",
		RuleExists:    "The selected %s is invalid.",
		RuleConfirmed: "The %s field confirmation does not match.",
	},
}

var attributes = map[language.Tag]map[string]string{
	language.Spanish: {
		"identification": "identificación",
		"name":           "nombre",
		"last_name":      "apellido",
		"email":          "correo electrónico",
		"id_role":        "rol",
		"telephone":      "teléfono",
		"address":        "dirección",
		"department":     "departamento",
		"municipality":   "municipio",
		"password":       "contraseña",
		"trainer_id":     "instructor",
		"apprentice_id":  "aprendiz",
	},
	language.English: {
		"identification": "identification",
		"name":           "name",
		"last_name":      "last name",
		"email":          "email",
		"id_role":        "role",
		"telephone":      "telephone",
		"address":        "address",
		"department":     "department",
		"municipality":   "municipality",
		"password":       "password",
		"trainer_id":     "trainer",
		"apprentice_id":  "apprentice",
	},
}

// custom holds per-field overrides. Every key must exist for every supported language.
var custom = map[language.Tag]map[string]string{
	language.Spanish: {
		"identification.required": "La identificación es obligatoria.",
		"email.required":          "El correo electrónico es obligatorio.",
		"email.email":             "El formato del correo electrónico no es válido.",
		"email.unique":            "El correo ya está registrado.",
		"id_role.required":        "El rol es obligatorio.",
		"id_role.exists":          "El rol seleccionado no es válido.",
		"password.required":       "La contraseña es obligatoria.",
		"password.min":            "La contraseña debe tener al menos 8 caracteres.",
		"password.max":            "La contraseña no debe superar los 72 bytes.",
	},
	language.English: {
		"identification.required": "The identification is required.",
		"email.required":          "The email is required.",
		"email.email":             "The email format is invalid.",
		"email.unique":            "The email is already registered.",
		"id_role.required":        "The role is required.",
		"id_role.exists":          "The selected role is invalid.",
		"password.required":       "The password is required.",
		"password.min":            "The password must be at least 8 characters.",
		"password.max":            "The password must not exceed 72 bytes.",
	},
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Spanish))
	for _, set := range []map[language.Tag]map[string]string{generic, custom} {
		for tag, msgs := range set {
			for key, msg := range msgs {
				if err := b.SetString(tag, key, msg); err != nil {
					panic(err)
				}
			}
		}
	}
	for tag, attrs := range attributes {
		for field, name := range attrs {
			if err := b.SetString(tag, attrKey(field), name); err != nil {
				panic(err)
			}
		}
	}

	return b
}

func attrKey(field string) string { return "attr." + field }

// Messages renders rule violations in one language.
type Messages struct {
	tag language.Tag
	p   *message.Printer
}

func NewMessages(tag language.Tag) Messages {
	tag = MatchTag(tag)
	return Messages{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

func (m Messages) Language() language.Tag { return m.tag }

// Text returns the field override when there is one and the generic rule
// message with the localized attribute name otherwise.
func (m Messages) Text(field, rule string, args ...any) string {
	key := field + "." + rule
	if _, ok := custom[language.Spanish][key]; ok {
		return m.p.Sprintf(key)
	}
	attr := field
	if _, ok := attributes[language.Spanish][field]; ok {
		attr = m.p.Sprintf(attrKey(field))
	}

	return m.p.Sprintf(rule, append([]any{attr}, args...)...)
}

type langKey struct{}

func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, langKey{}, MatchTag(tag))
}

// MessagesFrom uses the language stored by WithLanguage, Spanish otherwise.
func MessagesFrom(ctx context.Context) Messages {
	if tag, ok := ctx.Value(langKey{}).(language.Tag); ok {
		return NewMessages(tag)
	}
	return NewMessages(language.Spanish)
}

// MatchTag maps any tag to the closest supported language.
func MatchTag(tag language.Tag) language.Tag {
	_, idx, _ := matcher.Match(tag)
	return supported[idx]
}

// MatchLanguage picks a supported language from an Accept-Language header,
// falling back to the configured locale.
func MatchLanguage(acceptLanguage, fallback string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err == nil && len(tags) > 0 {
		_, idx, conf := matcher.Match(tags...)
		if conf != language.No {
			return supported[idx]
		}
	}

	return MatchTag(language.Make(fallback))
}
