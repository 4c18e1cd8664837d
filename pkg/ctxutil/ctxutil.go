package ctxutil

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey    ctxKey = "user_id"
	userEmailKey ctxKey = "user_email"
	userRoleKey  ctxKey = "user_role"
	requestIDKey ctxKey = "request_id"
)

// Identity is the caller identity supplied by the identity provider.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// WithIdentity stores every identity field in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = WithUserID(ctx, id.UserID)
	ctx = context.WithValue(ctx, userEmailKey, strings.ToLower(strings.TrimSpace(id.Email)))
	return context.WithValue(ctx, userRoleKey, id.Role)
}

// IdentityFromCtx returns the identity stored by WithIdentity.
// ok is false when no user ID is present.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	userID, ok := UserIDFromCtx(ctx)
	if !ok {
		return Identity{}, false
	}
	email, _ := ctx.Value(userEmailKey).(string)
	role, _ := ctx.Value(userRoleKey).(string)
	return Identity{UserID: userID, Email: email, Role: role}, true
}

// WithUserID stores the user ID in the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the user ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// UserRoleFromCtx returns the role claim, or "" when absent.
func UserRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}

// IsAdminCtx reports whether the caller carries the admin role.
func IsAdminCtx(ctx context.Context) bool {
	return UserRoleFromCtx(ctx) == "admin"
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
