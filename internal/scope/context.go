package scope

import "context"

type ctxKey string

const idKey ctxKey = "cart_scope_id"

func WithID(ctx context.Context, scopeID string) context.Context {
	return context.WithValue(ctx, idKey, scopeID)
}

// IDFrom returns the scope id the middleware attached, or "".
func IDFrom(ctx context.Context) string {
	if v := ctx.Value(idKey); v != nil {
		return v.(string)
	}
	return ""
}
