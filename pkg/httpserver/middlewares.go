package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/JailtonJunior94/aop-logging/pkg/observability"
	"github.com/google/uuid"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// ContextKeyRequestID is the context key for request ID.
	ContextKeyRequestID ContextKey = "request-id"

	HeaderRequestID = "X-Request-ID"
)

// RequestID is a middleware that adds a UUIDv7 request ID to each request,
// on the context and in the X-Request-ID response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := generateRequestID()

		w.Header().Set(HeaderRequestID, requestID)
		ctx := context.WithValue(r.Context(), ContextKeyRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func generateRequestID() string {
	id, err := uuid.NewV7()
	if err == nil {
		return id.String()
	}
	return generateFallbackID()
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if no request ID is found.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(ContextKeyRequestID).(string)
	return requestID
}

// generateFallbackID returns the timestamp in hex followed by 8 hex chars of randomness.
func generateFallbackID() string {
	ts := strconv.FormatInt(time.Now().UnixNano(), 16)
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return ts + "00000000"
	}
	return ts + hex.EncodeToString(randomBytes)
}

// Recovery returns a middleware that recovers from panics, logs them with the
// stack trace and responds 500.
func Recovery(logger observability.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if p == http.ErrAbortHandler {
					panic(p)
				}
				logger.Error(r.Context(), "panic recovered",
					observability.String("request_id", GetRequestID(r.Context())),
					observability.Any("panic", p),
					observability.String("stacktrace", string(debug.Stack())),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// ContentType is a middleware that sets the Content-Type header for responses.
func ContentType(contentType string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", contentType)
			next.ServeHTTP(w, r)
		})
	}
}

// PlainText sets Content-Type to text/plain; charset=utf-8.
func PlainText(next http.Handler) http.Handler {
	return ContentType("text/plain; charset=utf-8")(next)
}
