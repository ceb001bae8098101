package trace

import "context"

// ctxKey is the key type for storing an Instrumentor in context.
type ctxKey struct{}

// WithInstrumentor attaches an Instrumentor to context.
func WithInstrumentor(ctx context.Context, in *Instrumentor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, in)
}

// FromContext extracts the Instrumentor from context.
// If not found, returns nil, which is a valid no-op Instrumentor.
func FromContext(ctx context.Context) *Instrumentor {
	if ctx == nil {
		return nil
	}
	in, _ := ctx.Value(ctxKey{}).(*Instrumentor)
	return in
}

// ScopeFrom starts a timer on the Instrumentor carried by ctx.
func ScopeFrom(ctx context.Context, name string) *Timer {
	return FromContext(ctx).Scope(name)
}

// FunctionFrom starts a timer named after the calling function on the
// Instrumentor carried by ctx.
func FunctionFrom(ctx context.Context) *Timer {
	return FromContext(ctx).Scope(callerName(2))
}
