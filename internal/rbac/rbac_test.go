package rbac

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoles(t *testing.T) {
	svc, err := NewRBACService(config.GetDefaultConfig())
	require.NoError(t, err)

	assert.True(t, svc.HasPermission(types.UserRoleAdmin, EntityUser, ActionList))
	assert.True(t, svc.HasPermission(types.UserRoleAdmin, EntityUser, ActionDelete))
	assert.False(t, svc.HasPermission(types.UserRoleCoordinator, EntityUser, ActionList))
	assert.False(t, svc.HasPermission(types.UserRoleStaff, EntityUser, ActionDelete))

	for _, role := range types.UserRoles {
		assert.True(t, svc.HasPermission(role, EntityOrphan, ActionWrite), role)
		assert.True(t, svc.HasPermission(role, EntityReport, ActionPublish), role)
	}

	assert.False(t, svc.HasPermission("", EntityOrphan, ActionRead))

	roles := svc.ListRoles()
	require.Len(t, roles, 3)
	assert.Equal(t, "admin", roles[0].ID)
	assert.Equal(t, "Administrator", roles[0].Name)
}

func TestRolesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"staff":{"name":"Staff","permissions":{"orphan":["read"]}}}`), 0o600))

	cfg := config.GetDefaultConfig()
	cfg.RBAC.RolesConfigPath = path
	svc, err := NewRBACService(cfg)
	require.NoError(t, err)

	assert.True(t, svc.HasPermission(types.UserRoleStaff, EntityOrphan, ActionRead))
	assert.False(t, svc.HasPermission(types.UserRoleStaff, EntityOrphan, ActionWrite))
	assert.False(t, svc.HasPermission(types.UserRoleAdmin, EntityUser, ActionList))

	require.NoError(t, os.WriteFile(path, []byte(`{"owner":{"permissions":{}}}`), 0o600))
	_, err = NewRBACService(cfg)
	assert.Error(t, err)
}
