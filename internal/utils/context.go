// Package utils holds small helpers shared by the server and the client:
// request-scoped user ids, HMAC hashing, JSON responses, the retrying HTTP
// client, JWT issuing and parsing and record id generation.
package utils

import (
	"context"
)

// userIDKey is unexported so no other package can overwrite the value.
type userIDKey struct{}

// WithUserID returns a copy of ctx that carries the authenticated owner.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserIDFromContext returns the owner stored by [WithUserID]. ok is false
// when the request was never authenticated.
func GetUserIDFromContext(ctx context.Context) (userID int64, ok bool) {
	userID, ok = ctx.Value(userIDKey{}).(int64)
	return userID, ok
}
