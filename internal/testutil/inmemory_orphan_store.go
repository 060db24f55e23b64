package testutil

import (
	"context"
	"strings"

	"github.com/betulabla/foundation/internal/domain/orphan"
	"github.com/betulabla/foundation/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryOrphanStore implements orphan.Repository
type InMemoryOrphanStore struct {
	*InMemoryStore[*orphan.Orphan]

	// onDelete runs after a successful delete, standing in for FK cascades
	onDelete func(id string)
}

func NewInMemoryOrphanStore() *InMemoryOrphanStore {
	return &InMemoryOrphanStore{
		InMemoryStore: NewInMemoryStore[*orphan.Orphan]("orphan"),
	}
}

func copyOrphan(o *orphan.Orphan) *orphan.Orphan {
	if o == nil {
		return nil
	}
	c := *o
	if o.PhotoKey != nil {
		c.PhotoKey = lo.ToPtr(*o.PhotoKey)
	}
	if o.LastPaymentDate != nil {
		c.LastPaymentDate = lo.ToPtr(*o.LastPaymentDate)
	}
	return &c
}

func (s *InMemoryOrphanStore) Create(ctx context.Context, o *orphan.Orphan) error {
	return s.InMemoryStore.Create(ctx, o.ID, copyOrphan(o))
}

func (s *InMemoryOrphanStore) Get(ctx context.Context, id string) (*orphan.Orphan, error) {
	o, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyOrphan(o), nil
}

func (s *InMemoryOrphanStore) Update(ctx context.Context, o *orphan.Orphan) error {
	return s.InMemoryStore.Update(ctx, o.ID, copyOrphan(o))
}

func (s *InMemoryOrphanStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return err
	}
	if s.onDelete != nil {
		s.onDelete(id)
	}
	return nil
}

func (s *InMemoryOrphanStore) List(ctx context.Context, filter *types.OrphanFilter) ([]*orphan.Orphan, error) {
	if filter == nil {
		filter = types.NewDefaultOrphanFilter()
	}
	orphans, err := s.InMemoryStore.List(ctx, filter, orphanFilterFn, orphanSortFn(filter))
	if err != nil {
		return nil, err
	}
	return lo.Map(orphans, func(o *orphan.Orphan, _ int) *orphan.Orphan { return copyOrphan(o) }), nil
}

func (s *InMemoryOrphanStore) Count(ctx context.Context, filter *types.OrphanFilter) (int, error) {
	if filter == nil {
		filter = types.NewDefaultOrphanFilter()
	}
	return s.InMemoryStore.Count(ctx, filter, orphanFilterFn)
}

func (s *InMemoryOrphanStore) Stats(ctx context.Context) (*orphan.Stats, error) {
	stats := &orphan.Stats{}
	for _, o := range s.All() {
		stats.TotalOrphans++
		switch o.Status {
		case types.OrphanStatusActive:
			stats.ActiveOrphans++
			stats.TotalMonthlyBudget = stats.TotalMonthlyBudget.Add(o.MonthlyAllowance)
		case types.OrphanStatusPending:
			stats.PendingOrphans++
		case types.OrphanStatusInactive:
			stats.InactiveOrphans++
		}
	}
	if stats.ActiveOrphans > 0 {
		stats.AvgMonthlyAllowance = stats.TotalMonthlyBudget.
			Div(decimal.NewFromInt(int64(stats.ActiveOrphans))).
			Round(2)
	}
	return stats, nil
}

func orphanFilterFn(ctx context.Context, o *orphan.Orphan, filter interface{}) bool {
	f, ok := filter.(*types.OrphanFilter)
	if !ok {
		return true
	}

	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if f.Gender != nil && o.Gender != *f.Gender {
		return false
	}
	if f.EducationLevel != nil && o.EducationLevel != *f.EducationLevel {
		return false
	}
	if f.HealthStatus != nil && o.HealthStatus != *f.HealthStatus {
		return false
	}
	if f.QueryFilter != nil && !matchesSearch(f.GetSearch(), o.FullName, o.GuardianName, o.Address, o.SchoolName) {
		return false
	}
	return true
}

func orphanSortFn(filter *types.OrphanFilter) SortFunc[*orphan.Orphan] {
	return orderBy(filter.QueryFilter, map[string]func(a, b *orphan.Orphan) int{
		"full_name":         func(a, b *orphan.Orphan) int { return strings.Compare(a.FullName, b.FullName) },
		"date_of_birth":     func(a, b *orphan.Orphan) int { return a.DateOfBirth.Compare(b.DateOfBirth.Time) },
		"monthly_allowance": func(a, b *orphan.Orphan) int { return a.MonthlyAllowance.Cmp(b.MonthlyAllowance) },
		"created_at":        func(a, b *orphan.Orphan) int { return a.CreatedAt.Compare(b.CreatedAt) },
	}, func(o *orphan.Orphan) string { return o.ID })
}
