package testutil

import (
	"context"

	"github.com/betulabla/foundation/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxUserRole, types.UserRoleAdmin)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}

// AsUser returns ctx acting as the given caller
func AsUser(ctx context.Context, userID string, role types.UserRole) context.Context {
	ctx = types.SetUserID(ctx, userID)
	return types.SetUserRole(ctx, role)
}
