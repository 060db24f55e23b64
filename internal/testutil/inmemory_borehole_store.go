package testutil

import (
	"context"
	"strings"

	"github.com/betulabla/foundation/internal/domain/borehole"
	"github.com/betulabla/foundation/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryBoreholeStore implements borehole.Repository
type InMemoryBoreholeStore struct {
	*InMemoryStore[*borehole.Borehole]

	// onDelete runs after a successful delete, standing in for FK cascades
	onDelete func(id string)
}

func NewInMemoryBoreholeStore() *InMemoryBoreholeStore {
	return &InMemoryBoreholeStore{
		InMemoryStore: NewInMemoryStore[*borehole.Borehole]("borehole"),
	}
}

func copyBorehole(b *borehole.Borehole) *borehole.Borehole {
	if b == nil {
		return nil
	}
	c := *b
	if b.DepthMeters != nil {
		c.DepthMeters = lo.ToPtr(*b.DepthMeters)
	}
	if b.InstallationDate != nil {
		c.InstallationDate = lo.ToPtr(*b.InstallationDate)
	}
	if b.LastMaintenance != nil {
		c.LastMaintenance = lo.ToPtr(*b.LastMaintenance)
	}
	return &c
}

func (s *InMemoryBoreholeStore) Create(ctx context.Context, b *borehole.Borehole) error {
	return s.InMemoryStore.Create(ctx, b.ID, copyBorehole(b))
}

func (s *InMemoryBoreholeStore) Get(ctx context.Context, id string) (*borehole.Borehole, error) {
	b, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyBorehole(b), nil
}

func (s *InMemoryBoreholeStore) Update(ctx context.Context, b *borehole.Borehole) error {
	return s.InMemoryStore.Update(ctx, b.ID, copyBorehole(b))
}

func (s *InMemoryBoreholeStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return err
	}
	if s.onDelete != nil {
		s.onDelete(id)
	}
	return nil
}

func (s *InMemoryBoreholeStore) List(ctx context.Context, filter *types.BoreholeFilter) ([]*borehole.Borehole, error) {
	if filter == nil {
		filter = types.NewDefaultBoreholeFilter()
	}
	boreholes, err := s.InMemoryStore.List(ctx, filter, boreholeFilterFn, boreholeSortFn(filter))
	if err != nil {
		return nil, err
	}
	return lo.Map(boreholes, func(b *borehole.Borehole, _ int) *borehole.Borehole { return copyBorehole(b) }), nil
}

func (s *InMemoryBoreholeStore) Count(ctx context.Context, filter *types.BoreholeFilter) (int, error) {
	if filter == nil {
		filter = types.NewDefaultBoreholeFilter()
	}
	return s.InMemoryStore.Count(ctx, filter, boreholeFilterFn)
}

func (s *InMemoryBoreholeStore) Stats(ctx context.Context) (*borehole.Stats, error) {
	stats := &borehole.Stats{}
	for _, b := range s.All() {
		stats.TotalBoreholes++
		switch b.Status {
		case types.BoreholeStatusActive:
			stats.ActiveBoreholes++
			stats.TotalBeneficiaries += int64(b.BeneficiariesCount)
		case types.BoreholeStatusMaintenance:
			stats.MaintenanceBoreholes++
		}
	}
	if stats.ActiveBoreholes > 0 {
		stats.AvgBeneficiariesPerBorehole = decimal.NewFromInt(stats.TotalBeneficiaries).
			Div(decimal.NewFromInt(int64(stats.ActiveBoreholes))).
			Round(2)
	}
	return stats, nil
}

func boreholeFilterFn(ctx context.Context, b *borehole.Borehole, filter interface{}) bool {
	f, ok := filter.(*types.BoreholeFilter)
	if !ok {
		return true
	}

	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.WaterQuality != nil && b.WaterQuality != *f.WaterQuality {
		return false
	}
	if f.QueryFilter != nil && !matchesSearch(f.GetSearch(), b.Name, b.Location, b.CommunityServed) {
		return false
	}
	return true
}

func boreholeSortFn(filter *types.BoreholeFilter) SortFunc[*borehole.Borehole] {
	return orderBy(filter.QueryFilter, map[string]func(a, b *borehole.Borehole) int{
		"name":     func(a, b *borehole.Borehole) int { return strings.Compare(a.Name, b.Name) },
		"location": func(a, b *borehole.Borehole) int { return strings.Compare(a.Location, b.Location) },
		"installation_date": func(a, b *borehole.Borehole) int {
			return compareDates(a.InstallationDate, b.InstallationDate)
		},
		"beneficiaries_count": func(a, b *borehole.Borehole) int { return a.BeneficiariesCount - b.BeneficiariesCount },
		"created_at":          func(a, b *borehole.Borehole) int { return a.CreatedAt.Compare(b.CreatedAt) },
	}, func(b *borehole.Borehole) string { return b.ID })
}

// compareDates sorts NULL after every value, as postgres does for ASC
func compareDates(a, b *types.Date) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(b.Time)
}
