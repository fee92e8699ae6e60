package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/auth"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

var secret = []byte("test-secret")

// echoCaller responds 200 with the caller the middleware stored.
var echoCaller = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CallerFromContext(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(caller)
})

func serve(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	auth.NewMiddleware(secret)(echoCaller).ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	token, err := auth.IssueToken(secret, userID, "", time.Hour)
	require.NoError(t, err)

	rec := serve(t, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	var caller domain.Caller
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&caller))
	assert.Equal(t, userID, caller.UserID)
	assert.False(t, caller.Admin)
}

func TestMiddleware_AdminRole(t *testing.T) {
	token, err := auth.IssueToken(secret, uuid.New(), auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	rec := serve(t, "bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	var caller domain.Caller
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&caller))
	assert.True(t, caller.Admin)
}

func TestMiddleware_Rejects(t *testing.T) {
	valid, err := auth.IssueToken(secret, uuid.New(), "", time.Hour)
	require.NoError(t, err)
	expired, err := auth.IssueToken(secret, uuid.New(), "", -time.Minute)
	require.NoError(t, err)
	otherKey, err := auth.IssueToken([]byte("other"), uuid.New(), "", time.Hour)
	require.NoError(t, err)
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	cases := map[string]string{
		"no header":        "",
		"wrong scheme":     "Basic " + valid,
		"empty token":      "Bearer ",
		"expired":          "Bearer " + expired,
		"wrong key":        "Bearer " + otherKey,
		"alg none":         "Bearer " + noneAlg,
		"subject not uuid": "Bearer " + badSubject,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, header)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
		})
	}
}

func TestCallerFromContext_Missing(t *testing.T) {
	_, err := auth.CallerFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParseToken_WrapsUnauthorized(t *testing.T) {
	_, err := auth.ParseToken(secret, "not-a-jwt")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
