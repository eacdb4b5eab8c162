package auth_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fragancia/fragancia-api/internal/auth"
	"github.com/fragancia/fragancia-api/internal/dbtest"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	tokens *auth.TokenService
	server http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	d := dbtest.Open(t)
	require.NoError(t, auth.Init(d))

	tokens := auth.NewTokenService("test-secret", 7*24*time.Hour)
	h := auth.NewHandler(auth.NewStore(d), auth.NewPasswordHasher(bcrypt.MinCost), tokens)

	r := chi.NewRouter()
	r.Mount("/auth", auth.SetupRoutes(h, tokens, nil))
	return &fixture{db: d, tokens: tokens, server: r}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func (f *fixture) register(t *testing.T, name, email, password string) (string, string) {
	t.Helper()
	rec, body := f.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := body["user"].(map[string]any)
	return body["token"].(string), user["id"].(string)
}

func TestAnaSilvaScenario(t *testing.T) {
	f := newFixture(t)

	rec, body := f.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Ana Silva", "email": "ana@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Usuário criado com sucesso!", body["message"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "Ana Silva", user["name"])
	assert.Equal(t, "ana@x.com", user["email"])
	assert.NotContains(t, rec.Body.String(), "password")
	registeredID := user["id"].(string)

	rec, body = f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ana@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Email ou senha incorretos", body["error"])

	rec, body = f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ana@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login realizado com sucesso!", body["message"])

	claims, err := f.tokens.Verify(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, registeredID, claims.UserID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ana Silva", "ana@x.com", "secret1")

	rec, body := f.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Outra Ana", "email": "  ANA@x.com ", "password": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email já cadastrado", body["error"])

	var n int64
	require.NoError(t, f.db.Model(&auth.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"short name", map[string]string{"name": "  Al  ", "email": "al@x.com", "password": "secret1"}, "name"},
		{"bad email", map[string]string{"name": "Alice", "email": "nope", "password": "secret1"}, "email"},
		{"short password", map[string]string{"name": "Alice", "email": "al@x.com", "password": "12345"}, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := f.do(t, http.MethodPost, "/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Dados inválidos", body["error"])

			details := body["details"].([]any)
			require.Len(t, details, 1)
			assert.Equal(t, tc.field, details[0].(map[string]any)["field"])
		})
	}

	var n int64
	require.NoError(t, f.db.Model(&auth.User{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRegister_PasswordTooLong(t *testing.T) {
	f := newFixture(t)

	// bcrypt rejects more than 72 bytes; the second password is 40 runes but 80 bytes.
	for _, pw := range []string{strings.Repeat("a", 80), strings.Repeat("é", 40)} {
		rec, body := f.do(t, http.MethodPost, "/auth/register", "", map[string]string{
			"name": "Alice", "email": "al@x.com", "password": pw,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		assert.Equal(t, "Dados inválidos", body["error"])

		details := body["details"].([]any)
		require.Len(t, details, 1)
		detail := details[0].(map[string]any)
		assert.Equal(t, "password", detail["field"])
		assert.Equal(t, "Senha deve ter no máximo 72 bytes", detail["message"])
	}

	var n int64
	require.NoError(t, f.db.Model(&auth.User{}).Count(&n).Error)
	assert.Zero(t, n)

	f.register(t, "Alice", "al@x.com", strings.Repeat("a", 72))
}

func TestStoreCreate_UniqueIndexWithoutPrecheck(t *testing.T) {
	f := newFixture(t)
	store := auth.NewStore(f.db)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &auth.User{ID: uuid.NewString(), Name: "Ana", Email: "ana@x.com", PasswordHash: "h"}))
	err := store.Create(ctx, &auth.User{ID: uuid.NewString(), Name: "Ana 2", Email: "ana@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)

	var n int64
	require.NoError(t, f.db.Model(&auth.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newFixture(t)

	rec, body := f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ghost@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Email ou senha incorretos", body["error"])
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	token, id := f.register(t, "Ana Silva", "ana@x.com", "secret1")

	rec, body := f.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "Ana Silva", body["name"])
	assert.NotEmpty(t, body["created_at"])

	rec, _ = f.do(t, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// A deactivated account keeps a verifying token until expiry, but the
// profile lookup no longer finds it.
func TestDeactivatedUserWithValidToken(t *testing.T) {
	f := newFixture(t)
	token, _ := f.register(t, "Ana Silva", "ana@x.com", "secret1")

	rec, _ := f.do(t, http.MethodDelete, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := f.tokens.Verify(token)
	require.NoError(t, err)

	rec, body := f.do(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Usuário não encontrado", body["error"])

	rec, _ = f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ana@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodDelete, "/auth/me", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
