package domain

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/pkg/ctxutil"
)

// Role is the claim supplied by the identity provider.
type Role string

const (
	RoleMember  Role = "member"
	RoleSteward Role = "steward"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleSteward, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller of a core operation.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

// CanModerate reports whether the actor may review submissions and manage
// steward assignments.
func (a Actor) CanModerate() bool {
	return a.Role == RoleSteward || a.Role == RoleAdmin
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// SystemActor attributes scheduled maintenance (retention cron, operator CLI)
// that runs without a signed-in user.
var SystemActor = Actor{ID: uuid.MustParse("00000000-0000-0000-0000-00000000005e"), Email: "system@journeys.local", Role: RoleAdmin}

// ActorFromCtx builds the Actor from the identity carried in ctx.
// Returns ErrUnauthorized when the request is anonymous.
func ActorFromCtx(ctx context.Context) (Actor, error) {
	id, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return Actor{}, ErrUnauthorized
	}
	return Actor{ID: id.UserID, Email: id.Email, Role: Role(id.Role)}, nil
}

// WithActor stores the actor identity in ctx.
func WithActor(ctx context.Context, a Actor) context.Context {
	return ctxutil.WithIdentity(ctx, ctxutil.Identity{UserID: a.ID, Email: a.Email, Role: string(a.Role)})
}

// UserAccount is the minimal account record owned by the surrounding app.
type UserAccount struct {
	ID    uuid.UUID
	Email string
	Name  *string
}
