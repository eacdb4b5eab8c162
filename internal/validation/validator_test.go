package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/fragancia/fragancia-api/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" validate:"min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

type rating struct {
	Rating  *int   `json:"rating" validate:"required,min=1,max=5" msg:"Rating deve ser entre 1 e 5"`
	Comment string `json:"comment" validate:"max=1000"`
}

func intPtr(i int) *int { return &i }

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, apperr.Validation, e.Kind)
	assert.Equal(t, "Dados inválidos", e.Message)

	out := map[string]string{}
	for _, d := range e.Details {
		out[d.Field] = d.Message
	}
	return out
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(&signup{Name: "Ana", Email: "ana@example.com", Password: "secret1"}))
	assert.NoError(t, Struct(&rating{Rating: intPtr(5)}))
}

func TestStruct_SignupErrors(t *testing.T) {
	fields := fieldsOf(t, Struct(&signup{Name: "Al", Email: "not-an-email", Password: "123"}))

	assert.Equal(t, "name deve ter pelo menos 3 caracteres", fields["name"])
	assert.Equal(t, "Email inválido", fields["email"])
	assert.Equal(t, "password deve ter pelo menos 6 caracteres", fields["password"])
}

func TestStruct_RatingBounds(t *testing.T) {
	for _, r := range []*int{nil, intPtr(0), intPtr(6)} {
		fields := fieldsOf(t, Struct(&rating{Rating: r}))
		assert.Equal(t, "Rating deve ser entre 1 e 5", fields["rating"])
	}
}

func TestStruct_CommentTooLong(t *testing.T) {
	fields := fieldsOf(t, Struct(&rating{Rating: intPtr(3), Comment: strings.Repeat("a", 1001)}))
	assert.Equal(t, "comment deve ter no máximo 1000 caracteres", fields["comment"])
}

type secret struct {
	Password string `json:"password" validate:"min=6,maxbytes=8" msg:"curta" msg_maxbytes:"longa"`
	Token    string `json:"token" validate:"maxbytes=4"`
}

func TestStruct_MaxBytes(t *testing.T) {
	assert.NoError(t, Struct(&secret{Password: "12345678", Token: "abcd"}))

	// "éééé" is four runes but eight bytes.
	fields := fieldsOf(t, Struct(&secret{Password: "123456789", Token: "éééé"}))
	assert.Equal(t, "longa", fields["password"])
	assert.Equal(t, "token deve ter no máximo 4 bytes", fields["token"])

	fields = fieldsOf(t, Struct(&secret{Password: "123", Token: "ok"}))
	assert.Equal(t, "curta", fields["password"])
}
