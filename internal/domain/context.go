package domain

import "context"

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const userContextKey contextKey = "authenticated_user"

// WithUser stores the authenticated user in the context
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the authenticated user, or nil if unauthenticated
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey).(*User)
	return user
}
