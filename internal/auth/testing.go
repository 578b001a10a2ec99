package auth

import "context"

// ContextWithPrincipal adds a principal to the context, letting handler
// tests skip the token verification middleware.
func ContextWithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}
