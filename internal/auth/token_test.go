package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookvault/internal/domain"
)

func TestIssueAndIdentity(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"))
	user := domain.User{
		ID:          42,
		Email:       "reader@example.com",
		Preferences: []domain.Genre{domain.Fantasy, domain.Mystery},
	}

	raw, err := tokens.Issue(user)
	require.NoError(t, err)

	id, err := tokens.Identity(raw)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", id.Email)
	assert.Equal(t, int64(42), id.UserID)
	assert.Equal(t, []domain.Genre{domain.Fantasy, domain.Mystery}, id.Preferences)
}

func TestIdentityRejectsWrongSecret(t *testing.T) {
	raw, err := NewTokens([]byte("one")).Issue(domain.User{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	_, err = NewTokens([]byte("two")).Identity(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestIdentityRejectsGarbage(t *testing.T) {
	_, err := NewTokens([]byte("s")).Identity("not.a.token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"))
	raw, err := tokens.Issue(domain.User{ID: 7, Email: "u@example.com"})
	require.NoError(t, err)

	unauthorized := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	var gotID domain.Identity
	handler := tokens.Middleware(unauthorized)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		require.True(t, ok)
		gotID = id
	}))

	t.Run("valid token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(7), gotID.UserID)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("bad token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer junk")
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
