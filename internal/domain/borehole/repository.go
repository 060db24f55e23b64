package borehole

import (
	"context"

	"github.com/betulabla/foundation/internal/types"
)

type Repository interface {
	Create(ctx context.Context, borehole *Borehole) error
	Get(ctx context.Context, id string) (*Borehole, error)
	Update(ctx context.Context, borehole *Borehole) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.BoreholeFilter) ([]*Borehole, error)
	Count(ctx context.Context, filter *types.BoreholeFilter) (int, error)
	Stats(ctx context.Context) (*Stats, error)
}
