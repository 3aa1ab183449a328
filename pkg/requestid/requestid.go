// Package requestid carries the per-request correlation id through the
// context, so handler logs and error payloads can be matched to the http
// middleware's request lines.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

// Generate mints a fresh request id.
func Generate() string {
	return uuid.New().String()
}

// ToContext stores the request id on the context.
func ToContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// FromContext returns the request id, or the empty string when none was set.
func FromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// FromContextPtr is FromContext for optional wire fields: nil when unset.
func FromContextPtr(ctx context.Context) *string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return &requestID
	}
	return nil
}

// FromRequest returns the request id stored on the request context.
func FromRequest(r *http.Request) string {
	return FromContext(r.Context())
}
