package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtwr-app/wtwr-api/internal/api/shared"
	"github.com/wtwr-app/wtwr-api/internal/config"
	"github.com/wtwr-app/wtwr-api/internal/domain"
	"github.com/wtwr-app/wtwr-api/internal/mocks"
	"github.com/wtwr-app/wtwr-api/internal/service/auth"
)

// withActor simulates the authentication middleware by placing the given
// user ID in the request context.
func withActor(userID string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
		next(w, r.WithContext(ctx))
	}
}

func newTestTokenService(t *testing.T) auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService(config.AuthConfig{
		JWTSecret:            "test-secret-that-is-at-least-32-chars!!",
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	})
	require.NoError(t, err)
	return svc
}

func newUserHandlerFixture(t *testing.T) (*UserHandler, *mocks.UserStore) {
	t.Helper()
	users := mocks.NewUserStore()
	handler := NewUserHandler(users, newTestTokenService(t), auth.NewBcryptHasher(4), nil)
	return handler, users
}

func doJSON(handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestSignup(t *testing.T) {
	handler, _ := newUserHandlerFixture(t)

	rec := doJSON(handler.Signup, http.MethodPost, "/signup",
		`{"name":"Terry","avatar":"https://example.com/a.png","email":"terry@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, domain.IsValidID(created.ID))
	assert.Equal(t, "terry@example.com", created.Email)
	assert.Equal(t, "Terry", created.Name)

	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	handler, _ := newUserHandlerFixture(t)

	payload := `{"email":"terry@example.com","password":"secret1"}`
	rec := doJSON(handler.Signup, http.MethodPost, "/signup", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(handler.Signup, http.MethodPost, "/signup", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already exists", errorMessage(t, rec))
}

func TestSignup_InvalidPayload(t *testing.T) {
	handler, _ := newUserHandlerFixture(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "malformed JSON",
			body:    `{"email":`,
			message: "Invalid request format",
		},
		{
			name:    "missing password",
			body:    `{"email":"terry@example.com"}`,
			message: `The "password" field must be filled in`,
		},
		{
			name:    "short name",
			body:    `{"name":"T","email":"terry@example.com","password":"secret1"}`,
			message: `The minimum length of the "name" field is 2`,
		},
		{
			name:    "bad avatar URL",
			body:    `{"avatar":"nope","email":"terry@example.com","password":"secret1"}`,
			message: `The "avatar" field must be a valid URL`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(handler.Signup, http.MethodPost, "/signup", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.message, errorMessage(t, rec))
		})
	}
}

// An avatar URL that satisfies the url validator tag but not the
// entity's http(s) requirement maps to 400, not 500.
func TestSignup_NonHTTPAvatarURL(t *testing.T) {
	handler, _ := newUserHandlerFixture(t)

	rec := doJSON(handler.Signup, http.MethodPost, "/signup",
		`{"avatar":"ftp://example.com/a.png","email":"terry@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid data provided", errorMessage(t, rec))
}

func TestSignin(t *testing.T) {
	handler, _ := newUserHandlerFixture(t)
	tokens := handler.tokenService

	rec := doJSON(handler.Signup, http.MethodPost, "/signup",
		`{"email":"terry@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(handler.Signin, http.MethodPost, "/signin",
		`{"email":"terry@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SigninResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	claims, err := tokens.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
}

// A wrong password and an unknown email must be indistinguishable from
// the client's side, otherwise signin leaks which emails are registered.
func TestSignin_UniformFailure(t *testing.T) {
	handler, _ := newUserHandlerFixture(t)

	rec := doJSON(handler.Signup, http.MethodPost, "/signup",
		`{"email":"terry@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPassword := doJSON(handler.Signin, http.MethodPost, "/signin",
		`{"email":"terry@example.com","password":"wrong"}`)
	unknownEmail := doJSON(handler.Signin, http.MethodPost, "/signin",
		`{"email":"nobody@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "Invalid credentials", errorMessage(t, wrongPassword))
}

// countingHasher records how often Compare runs.
type countingHasher struct {
	auth.PasswordHasher
	compares int
}

func (c *countingHasher) Compare(hashed, password string) error {
	c.compares++
	return c.PasswordHasher.Compare(hashed, password)
}

// The unknown-email path must do the same hash comparison work as the
// wrong-password path, otherwise response timing leaks which emails are
// registered.
func TestSignin_UnknownEmailStillComparesHash(t *testing.T) {
	hasher := &countingHasher{PasswordHasher: auth.NewBcryptHasher(4)}
	handler := NewUserHandler(mocks.NewUserStore(), newTestTokenService(t), hasher, nil)

	rec := doJSON(handler.Signin, http.MethodPost, "/signin",
		`{"email":"nobody@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", errorMessage(t, rec))
	assert.Equal(t, 1, hasher.compares)
}

func TestUserList_PublicProjections(t *testing.T) {
	handler, _ := newUserHandlerFixture(t)

	rec := doJSON(handler.Signup, http.MethodPost, "/signup",
		`{"email":"terry@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec = httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var users []domain.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "terry@example.com", users[0].Email)
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestGetCurrent(t *testing.T) {
	handler, users := newUserHandlerFixture(t)

	rec := doJSON(handler.Signup, http.MethodPost, "/signup",
		`{"name":"Terry","email":"terry@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec = httptest.NewRecorder()
	withActor(created.ID, handler.GetCurrent)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var me domain.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, created.ID, me.ID)
	assert.Equal(t, "Terry", me.Name)

	// A valid token whose account was deleted out-of-band resolves to 404.
	users.Delete(created.ID)
	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec = httptest.NewRecorder()
	withActor(created.ID, handler.GetCurrent)(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", errorMessage(t, rec))
}

func TestGetCurrent_NoActor(t *testing.T) {
	handler, _ := newUserHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	handler.GetCurrent(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateCurrent(t *testing.T) {
	handler, _ := newUserHandlerFixture(t)

	rec := doJSON(handler.Signup, http.MethodPost, "/signup",
		`{"name":"Terry","avatar":"https://example.com/a.png","email":"terry@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Only the name is sent; the avatar must survive the patch.
	rec = doJSON(withActor(created.ID, handler.UpdateCurrent),
		http.MethodPatch, "/users/me", `{"name":"Terrence"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var updated domain.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Terrence", updated.Name)
	assert.Equal(t, "https://example.com/a.png", updated.Avatar)

	// The change is persisted, not just echoed.
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	getRec := httptest.NewRecorder()
	withActor(created.ID, handler.GetCurrent)(getRec, req)
	require.Equal(t, http.StatusOK, getRec.Code)
	assert.Contains(t, getRec.Body.String(), "Terrence")
}

func TestUpdateCurrent_RejectsInvalidName(t *testing.T) {
	handler, _ := newUserHandlerFixture(t)

	rec := doJSON(handler.Signup, http.MethodPost, "/signup",
		`{"email":"terry@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	long := strings.Repeat("a", 31)
	rec = doJSON(withActor(created.ID, handler.UpdateCurrent),
		http.MethodPatch, "/users/me", `{"name":"`+long+`"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `The maximum length of the "name" field is 30`, errorMessage(t, rec))
}

// Routing sanity check: the handlers wired into a chi router behave the
// same as when invoked directly.
func TestUserRoutes_ThroughRouter(t *testing.T) {
	handler, _ := newUserHandlerFixture(t)

	r := chi.NewRouter()
	r.Post("/signup", handler.Signup)
	r.Post("/signin", handler.Signin)
	r.Get("/users", handler.List)

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/signup", "application/json",
		strings.NewReader(`{"email":"terry@example.com","password":"secret1"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
