package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authChain(ja *jwtauth.JWTAuth) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return jwtauth.Verifier(ja)(AuthRequired(ja)(ok))
}

func encodeToken(t *testing.T, ja *jwtauth.JWTAuth, claims map[string]interface{}) string {
	_, token, err := ja.Encode(claims)
	require.NoError(t, err)
	return token
}

func TestAuthRequired(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	chain := authChain(ja)

	t.Run("access token passes", func(t *testing.T) {
		token := encodeToken(t, ja, map[string]interface{}{
			"user_id": "user-1",
			"type":    "access",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("refresh token is rejected", func(t *testing.T) {
		token := encodeToken(t, ja, map[string]interface{}{
			"user_id": "user-1",
			"type":    "refresh",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := encodeToken(t, ja, map[string]interface{}{
			"user_id": "user-1",
			"type":    "access",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		rec := httptest.NewRecorder()

		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
