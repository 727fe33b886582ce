package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	scopeIDKey   ctxKey = "scope_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func WithScopeID(ctx context.Context, scopeID string) context.Context {
	return context.WithValue(ctx, scopeIDKey, scopeID)
}

func ScopeIDFrom(ctx context.Context) string {
	if v := ctx.Value(scopeIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// FromCtx returns a logger with the request and cart-scope ids attached
// when the context carries them.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if scopeID := ScopeIDFrom(ctx); scopeID != "" {
		l = l.With(zap.String("scope_id", scopeID))
	}
	return l
}
