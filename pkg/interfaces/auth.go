package interfaces

import "context"

// AuthProvider evaluates caller identity and permissions. Authorization
// policy lives in the host application; the write path only asks before
// mutating state.
type AuthProvider interface {
	CurrentUserID(ctx context.Context) (string, error)
	HasPermission(ctx context.Context, permission string) (bool, error)
}
