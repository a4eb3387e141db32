package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

// ReqIDHeader is the HTTP header used to propagate the request ID.
const ReqIDHeader = "X-Request-ID"

type ridKey struct{}

// NewRequestID generates a cryptographically random 16-byte (32 hex char) id.
func NewRequestID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RequestIDFromCtx extracts the request ID from ctx, or "" if absent.
func RequestIDFromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ridKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestID injects a unique request ID into every request context and the
// response header. An upstream X-Request-ID is honoured so IDs survive
// proxies.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(ReqIDHeader)
		if id == "" {
			id = NewRequestID()
		}

		w.Header().Set(ReqIDHeader, id)

		ctx := context.WithValue(r.Context(), ridKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
