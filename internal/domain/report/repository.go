package report

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/types"
)

type Repository interface {
	Create(ctx context.Context, report *Report) error
	Get(ctx context.Context, id string) (*Report, error)
	Update(ctx context.Context, report *Report) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.ReportFilter) ([]*Report, error)
	Count(ctx context.Context, filter *types.ReportFilter) (int, error)
	// Stats counts reports; monthStart bounds reports_this_month
	Stats(ctx context.Context, monthStart time.Time) (*Stats, error)
}
