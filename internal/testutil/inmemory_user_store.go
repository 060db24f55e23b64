package testutil

import (
	"context"
	"strings"

	"github.com/betulabla/foundation/internal/domain/user"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/types"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]

	// owns reports whether the user still created records; nil means never
	owns func(userID string) bool
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User]("user"),
	}
}

// SetOwnershipCheck makes Delete fail the way ON DELETE RESTRICT does
func (s *InMemoryUserStore) SetOwnershipCheck(fn func(userID string) bool) {
	s.owns = fn
}

func copyUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").Mark(ierr.ErrValidation)
	}
	if _, err := s.GetByUsername(ctx, u.Username); err == nil {
		return ierr.NewError("user already exists").
			WithHint("user already exists").
			WithReportableDetails(map[string]any{"constraint": "users_username_key"}).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

func (s *InMemoryUserStore) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := s.InMemoryStore.Find(ctx, func(u *user.User) bool {
		return u.Username == username
	})
	if err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	return s.InMemoryStore.Update(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) Delete(ctx context.Context, id string) error {
	if s.owns != nil && s.owns(id) {
		return ierr.NewError("user owns records").
			WithHint("User cannot be deleted while they own orphans, boreholes or reports").
			WithReportableDetails(map[string]any{"user_id": id}).
			Mark(ierr.ErrReferentialIntegrity)
	}
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryUserStore) List(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	if filter == nil {
		filter = types.NewDefaultUserFilter()
	}
	users, err := s.InMemoryStore.List(ctx, filter, userFilterFn, userSortFn(filter))
	if err != nil {
		return nil, err
	}

	result := make([]*user.User, len(users))
	for i, u := range users {
		result[i] = copyUser(u)
	}
	return result, nil
}

func (s *InMemoryUserStore) Count(ctx context.Context, filter *types.UserFilter) (int, error) {
	if filter == nil {
		filter = types.NewDefaultUserFilter()
	}
	return s.InMemoryStore.Count(ctx, filter, userFilterFn)
}

func userFilterFn(ctx context.Context, u *user.User, filter interface{}) bool {
	f, ok := filter.(*types.UserFilter)
	if !ok {
		return true
	}

	if f.Role != nil && u.Role != *f.Role {
		return false
	}
	if f.IsActive != nil && u.IsActive != *f.IsActive {
		return false
	}
	if f.QueryFilter != nil && !matchesSearch(f.GetSearch(), u.Username, u.FullName, u.Email) {
		return false
	}
	return true
}

func userSortFn(filter *types.UserFilter) SortFunc[*user.User] {
	return orderBy(filter.QueryFilter, map[string]func(a, b *user.User) int{
		"username":   func(a, b *user.User) int { return strings.Compare(a.Username, b.Username) },
		"full_name":  func(a, b *user.User) int { return strings.Compare(a.FullName, b.FullName) },
		"role":       func(a, b *user.User) int { return strings.Compare(string(a.Role), string(b.Role)) },
		"created_at": func(a, b *user.User) int { return a.CreatedAt.Compare(b.CreatedAt) },
	}, func(u *user.User) string { return u.ID })
}
