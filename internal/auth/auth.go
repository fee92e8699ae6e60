// Package auth verifies bearer tokens and carries the resulting caller
// through the request context. Tokens are HS256 JWTs whose subject is the
// user's UUID; a "role" claim of "admin" marks a global administrator.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// RoleAdmin is the role claim value that grants access to every trip.
const RoleAdmin = "admin"

// Claims is the JWT payload accepted by the API.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type ctxKey struct{}

// IssueToken signs a token for userID that expires after ttl.
// Used by tests and local tooling; the API itself never issues tokens.
func IssueToken(secret []byte, userID uuid.UUID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies tokenString against secret and returns the caller it
// identifies. Any failure is reported as domain.ErrUnauthorized.
func ParseToken(secret []byte, tokenString string) (domain.Caller, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Caller{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return domain.Caller{}, fmt.Errorf("%w: token subject is not a user id", domain.ErrUnauthorized)
	}
	return domain.Caller{UserID: userID, Admin: claims.Role == RoleAdmin}, nil
}

// NewMiddleware returns a middleware that rejects requests without a valid
// "Authorization: Bearer <token>" header with 401, and otherwise stores the
// caller in the request context for CallerFromContext.
func NewMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}
			caller, err := ParseToken(secret, token)
			if err != nil {
				unauthorized(w, "invalid bearer token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// WithCaller returns a copy of ctx carrying caller.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, caller)
}

// CallerFromContext returns the caller stored by the middleware, or
// domain.ErrUnauthorized if there is none.
func CallerFromContext(ctx context.Context) (domain.Caller, error) {
	caller, ok := ctx.Value(ctxKey{}).(domain.Caller)
	if !ok {
		return domain.Caller{}, domain.ErrUnauthorized
	}
	return caller, nil
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// unauthorized writes the API's standard error envelope with status 401.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="trip-planner"`)
	w.WriteHeader(http.StatusUnauthorized)
	body := map[string]map[string]string{"error": {"code": "unauthorized", "message": message}}
	_ = json.NewEncoder(w).Encode(body)
}
