package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		name     string
		accept   string
		fallback string
		want     language.Tag
	}{
		{"empty header uses fallback", "", "es", language.Spanish},
		{"english header", "en-US,en;q=0.9", "es", language.English},
		{"regional spanish", "es-CO", "en", language.Spanish},
		{"weighted preference", "fr;q=0.9, en;q=0.8", "es", language.English},
		{"unsupported header uses fallback", "fr-FR", "en", language.English},
		{"garbage header uses fallback", ";;;", "es", language.Spanish},
		{"unknown fallback is spanish", "", "xx", language.Spanish},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchLanguage(tt.accept, tt.fallback))
		})
	}
}

func TestMessages_Text(t *testing.T) {
	es := NewMessages(language.Spanish)
	en := NewMessages(language.English)

	assert.Equal(t, "El correo ya está registrado.", es.Text("email", RuleUnique))
	assert.Equal(t, "The email is already registered.", en.Text("email", RuleUnique))
	assert.Equal(t, "El campo municipio no debe ser mayor que 255 caracteres.", es.Text("municipality", RuleMax, 255))
	assert.Equal(t, "The municipality field must not be greater than 255 characters.", en.Text("municipality", RuleMax, 255))
	assert.Equal(t, "The nickname field is required.", en.Text("nickname", RuleRequired))
}

func TestMessagesFrom(t *testing.T) {
	assert.Equal(t, language.Spanish, MessagesFrom(context.Background()).Language())

	ctx := WithLanguage(context.Background(), language.BritishEnglish)
	assert.Equal(t, language.English, MessagesFrom(ctx).Language())
}

func TestSingle(t *testing.T) {
	errs := Single(context.Background(), "id_role", RuleExists)
	assert.Equal(t, Errors{"id_role": {"El rol seleccionado no es válido."}}, errs)
}
