package orphan

import (
	"context"

	"github.com/betulabla/foundation/internal/types"
)

type Repository interface {
	Create(ctx context.Context, orphan *Orphan) error
	Get(ctx context.Context, id string) (*Orphan, error)
	Update(ctx context.Context, orphan *Orphan) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.OrphanFilter) ([]*Orphan, error)
	Count(ctx context.Context, filter *types.OrphanFilter) (int, error)
	Stats(ctx context.Context) (*Stats, error)
}
