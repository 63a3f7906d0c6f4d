package util

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type key string

const requestIDKey = key("request-id")

// ContextWithRequestID returns a context carrying the given request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the request id from context, or the empty string
// when none is present.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// NewRequestID generates a fresh ULID request id.
func NewRequestID() string {
	return ulid.Make().String()
}
