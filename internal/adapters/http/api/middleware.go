package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openhack/arena/internal/domain/acl"
	"github.com/openhack/arena/pkg/metrics"
)

// MetricsMiddleware wraps HTTP handlers to record Prometheus metrics.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		durationMs := float64(time.Since(start).Milliseconds())
		status := strconv.Itoa(wrapped.statusCode)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, durationMs)
	}
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}

// Caller identifies the authenticated request principal.
type Caller struct {
	UserID int64
	Role   acl.Role
}

type callerKey struct{}

// CallerFrom extracts the authenticated caller, if any.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}

// WithCaller injects a caller into the context, mainly for tests.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

type tokenClaims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator validates bearer tokens and enforces the role table.
type Authenticator struct {
	secret []byte
	table  acl.Table
}

// NewAuthenticator creates an authenticator over an HMAC secret and a
// permission table.
func NewAuthenticator(secret string, table acl.Table) *Authenticator {
	return &Authenticator{secret: []byte(secret), table: table}
}

// Require wraps a handler with authentication plus the role check for
// one action. Public actions pass without a token; a presented token is
// still validated so the caller identity is available downstream.
func (a *Authenticator) Require(action acl.Action, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := a.authenticate(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", err)
			return
		}

		if !a.table.Allows(action, caller.Role) {
			if caller.Role == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", ErrUnauthorized)
				return
			}
			writeError(w, http.StatusForbidden, "forbidden", ErrForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	}
}

// authenticate parses the bearer token if present. A missing token
// yields an anonymous caller; the role check decides whether that is
// acceptable.
func (a *Authenticator) authenticate(r *http.Request) (Caller, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Caller{}, nil
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return Caller{}, fmt.Errorf("%w: malformed authorization header", ErrUnauthorized)
	}

	tok, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !tok.Valid {
		return Caller{}, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	claims, ok := tok.Claims.(*tokenClaims)
	if !ok {
		return Caller{}, fmt.Errorf("%w: invalid claims", ErrUnauthorized)
	}
	return Caller{UserID: claims.UserID, Role: acl.Role(claims.Role)}, nil
}
