package types

// UserRole is the closed set of roles a user can hold
type UserRole string

const (
	UserRoleAdmin       UserRole = "admin"
	UserRoleCoordinator UserRole = "coordinator"
	UserRoleStaff       UserRole = "staff"
)

var UserRoles = []UserRole{
	UserRoleAdmin,
	UserRoleCoordinator,
	UserRoleStaff,
}

func (r UserRole) Validate() error {
	return validateChoice(r, UserRoles, "role")
}

// DisplayName returns the human readable label of the role
func (r UserRole) DisplayName() string {
	switch r {
	case UserRoleAdmin:
		return "Administrator"
	case UserRoleCoordinator:
		return "Coordinator"
	case UserRoleStaff:
		return "Staff"
	default:
		return string(r)
	}
}

var UserOrderingFields = []string{"username", "full_name", "role", "created_at"}

// UserFilter represents filters for user listing
type UserFilter struct {
	*QueryFilter
	Role     *UserRole `json:"role,omitempty" form:"role"`
	IsActive *bool     `json:"is_active,omitempty" form:"is_active"`
}

func NewDefaultUserFilter() *UserFilter {
	return &UserFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *UserFilter) Validate() error {
	if f == nil {
		return nil
	}

	if f.QueryFilter == nil {
		f.QueryFilter = NewDefaultQueryFilter()
	}

	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}

	if err := f.QueryFilter.ValidateOrdering(UserOrderingFields); err != nil {
		return err
	}

	if f.Role != nil {
		if err := f.Role.Validate(); err != nil {
			return err
		}
	}
	return nil
}
