package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchurch/campaign-service/internal/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, sub string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authedHandler() (http.Handler, *string) {
	var gotScope string
	h := middleware.Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotScope = middleware.ScopeFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return h, &gotScope
}

func TestAuthPassesScopeThrough(t *testing.T) {
	h, gotScope := authedHandler()

	req := httptest.NewRequest("GET", "/campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "org-42", time.Hour))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "org-42", *gotScope)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	h, _ := authedHandler()

	req := httptest.NewRequest("GET", "/campaigns", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	h, _ := authedHandler()

	req := httptest.NewRequest("GET", "/campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "org-42", time.Hour))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	h, _ := authedHandler()

	req := httptest.NewRequest("GET", "/campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "org-42", -time.Hour))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsTokenWithoutSubject(t *testing.T) {
	h, _ := authedHandler()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
