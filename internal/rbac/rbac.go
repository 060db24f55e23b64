package rbac

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/types"
)

//go:embed roles.json
var defaultRoles []byte

// Permission entities and actions referenced by route definitions
const (
	EntityUser     = "user"
	EntityOrphan   = "orphan"
	EntityBorehole = "borehole"
	EntityReport   = "report"

	ActionList    = "list"
	ActionRead    = "read"
	ActionWrite   = "write"
	ActionDelete  = "delete"
	ActionExport  = "export"
	ActionApprove = "approve"
	ActionPublish = "publish"
)

// RBACService handles permission checks with set-based lookups
type RBACService struct {
	// role -> entity -> action
	permissions map[string]map[string]map[string]bool

	// full role definitions for the roles endpoint
	roles map[string]*Role
}

// Role represents a role with metadata
type Role struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Permissions map[string][]string `json:"permissions"`
}

// NewRBACService loads the role definitions, from rbac.roles_config_path when set
func NewRBACService(cfg *config.Configuration) (*RBACService, error) {
	data := defaultRoles
	if path := cfg.RBAC.RolesConfigPath; path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read roles config: %w", err)
		}
	}

	var rawConfig map[string]*Role
	if err := json.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse roles config: %w", err)
	}

	permissions := make(map[string]map[string]map[string]bool)
	for roleID, role := range rawConfig {
		if err := types.UserRole(roleID).Validate(); err != nil {
			return nil, fmt.Errorf("roles config defines unknown role %q", roleID)
		}

		role.ID = roleID
		permissions[roleID] = make(map[string]map[string]bool)
		for entity, actions := range role.Permissions {
			permissions[roleID][entity] = make(map[string]bool)
			for _, action := range actions {
				permissions[roleID][entity][action] = true
			}
		}
	}

	return &RBACService{
		permissions: permissions,
		roles:       rawConfig,
	}, nil
}

// HasPermission reports whether the role grants action on entity.
// A role missing from the definitions has no permissions.
func (s *RBACService) HasPermission(role types.UserRole, entity string, action string) bool {
	return s.permissions[string(role)][entity][action]
}

// ListRoles returns all roles with metadata, ordered by id
func (s *RBACService) ListRoles() []*Role {
	result := make([]*Role, 0, len(s.roles))
	for _, role := range s.roles {
		result = append(result, role)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
