package ctxutil

import "context"

type ctxKey string

const (
	clientKey    ctxKey = "client"
	requestIDKey ctxKey = "request_id"
)

// WithClient stores the authenticated client name (the token subject) in the context.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, clientKey, client)
}

// ClientFromCtx extracts the client name from the context.
// Returns "" and false if the value is missing, empty, or of the wrong type.
func ClientFromCtx(ctx context.Context) (string, bool) {
	c, ok := ctx.Value(clientKey).(string)
	if !ok || c == "" {
		return "", false
	}
	return c, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
