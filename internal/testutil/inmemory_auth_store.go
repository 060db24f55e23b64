package testutil

import (
	"context"

	"github.com/betulabla/foundation/internal/domain/auth"
)

// InMemoryAuthStore implements auth.Repository, keyed by user id
type InMemoryAuthStore struct {
	*InMemoryStore[*auth.Auth]
}

func NewInMemoryAuthStore() *InMemoryAuthStore {
	return &InMemoryAuthStore{
		InMemoryStore: NewInMemoryStore[*auth.Auth]("credential"),
	}
}

func copyAuth(a *auth.Auth) *auth.Auth {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func (s *InMemoryAuthStore) CreateAuth(ctx context.Context, a *auth.Auth) error {
	return s.InMemoryStore.Create(ctx, a.UserID, copyAuth(a))
}

func (s *InMemoryAuthStore) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	a, err := s.InMemoryStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return copyAuth(a), nil
}

func (s *InMemoryAuthStore) UpdateAuth(ctx context.Context, a *auth.Auth) error {
	return s.InMemoryStore.Update(ctx, a.UserID, copyAuth(a))
}

func (s *InMemoryAuthStore) DeleteAuth(ctx context.Context, userID string) error {
	return s.InMemoryStore.Delete(ctx, userID)
}
