package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/betulabla/foundation/internal/domain/report"
	"github.com/betulabla/foundation/internal/types"
	"github.com/samber/lo"
)

// InMemoryReportStore implements report.Repository. Creator and reviewer
// names are resolved from the user store on read, like the SQL join.
type InMemoryReportStore struct {
	*InMemoryStore[*report.Report]
	users *InMemoryUserStore
}

func NewInMemoryReportStore(users *InMemoryUserStore) *InMemoryReportStore {
	return &InMemoryReportStore{
		InMemoryStore: NewInMemoryStore[*report.Report]("report"),
		users:         users,
	}
}

func copyReport(r *report.Report) *report.Report {
	if r == nil {
		return nil
	}
	c := *r
	if r.OrphanID != nil {
		c.OrphanID = lo.ToPtr(*r.OrphanID)
	}
	if r.BoreholeID != nil {
		c.BoreholeID = lo.ToPtr(*r.BoreholeID)
	}
	if r.FileKey != nil {
		c.FileKey = lo.ToPtr(*r.FileKey)
	}
	if r.ReviewedBy != nil {
		c.ReviewedBy = lo.ToPtr(*r.ReviewedBy)
	}
	if r.PublishedAt != nil {
		c.PublishedAt = lo.ToPtr(*r.PublishedAt)
	}
	return &c
}

// withNames returns a copy carrying the joined user names
func (s *InMemoryReportStore) withNames(ctx context.Context, r *report.Report) *report.Report {
	c := copyReport(r)
	c.CreatedByName = ""
	c.ReviewedByName = nil
	if s.users == nil {
		return c
	}
	if u, err := s.users.GetByID(ctx, c.CreatedBy); err == nil {
		c.CreatedByName = u.FullName
	}
	if c.ReviewedBy != nil {
		if u, err := s.users.GetByID(ctx, *c.ReviewedBy); err == nil {
			c.ReviewedByName = lo.ToPtr(u.FullName)
		}
	}
	return c
}

func (s *InMemoryReportStore) Create(ctx context.Context, r *report.Report) error {
	return s.InMemoryStore.Create(ctx, r.ID, copyReport(r))
}

func (s *InMemoryReportStore) Get(ctx context.Context, id string) (*report.Report, error) {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, r), nil
}

func (s *InMemoryReportStore) Update(ctx context.Context, r *report.Report) error {
	return s.InMemoryStore.Update(ctx, r.ID, copyReport(r))
}

func (s *InMemoryReportStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryReportStore) List(ctx context.Context, filter *types.ReportFilter) ([]*report.Report, error) {
	if filter == nil {
		filter = types.NewDefaultReportFilter()
	}
	reports, err := s.InMemoryStore.List(ctx, filter, reportFilterFn, reportSortFn(filter))
	if err != nil {
		return nil, err
	}
	return lo.Map(reports, func(r *report.Report, _ int) *report.Report { return s.withNames(ctx, r) }), nil
}

func (s *InMemoryReportStore) Count(ctx context.Context, filter *types.ReportFilter) (int, error) {
	if filter == nil {
		filter = types.NewDefaultReportFilter()
	}
	return s.InMemoryStore.Count(ctx, filter, reportFilterFn)
}

func (s *InMemoryReportStore) Stats(ctx context.Context, monthStart time.Time) (*report.Stats, error) {
	stats := &report.Stats{}
	for _, r := range s.All() {
		stats.TotalReports++
		switch r.Status {
		case types.ReportStatusDraft:
			stats.DraftReports++
		case types.ReportStatusPublished:
			stats.PublishedReports++
		}
		if !r.CreatedAt.Before(monthStart) {
			stats.ReportsThisMonth++
		}
	}
	return stats, nil
}

// DeleteByOrphan drops the reports about an orphan (ON DELETE CASCADE)
func (s *InMemoryReportStore) DeleteByOrphan(orphanID string) {
	s.DeleteWhere(func(r *report.Report) bool {
		return lo.FromPtr(r.OrphanID) == orphanID
	})
}

// DeleteByBorehole drops the reports about a borehole (ON DELETE CASCADE)
func (s *InMemoryReportStore) DeleteByBorehole(boreholeID string) {
	s.DeleteWhere(func(r *report.Report) bool {
		return lo.FromPtr(r.BoreholeID) == boreholeID
	})
}

// CreatedBy reports whether any report was written by the user
func (s *InMemoryReportStore) CreatedBy(userID string) bool {
	return lo.ContainsBy(s.All(), func(r *report.Report) bool { return r.CreatedBy == userID })
}

func reportFilterFn(ctx context.Context, r *report.Report, filter interface{}) bool {
	f, ok := filter.(*types.ReportFilter)
	if !ok {
		return true
	}

	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	if f.ReportType != nil && r.ReportType != *f.ReportType {
		return false
	}
	if f.OrphanID != nil && lo.FromPtr(r.OrphanID) != *f.OrphanID {
		return false
	}
	if f.BoreholeID != nil && lo.FromPtr(r.BoreholeID) != *f.BoreholeID {
		return false
	}
	if f.QueryFilter != nil && !matchesSearch(f.GetSearch(), r.Title, r.Content) {
		return false
	}
	return true
}

func reportSortFn(filter *types.ReportFilter) SortFunc[*report.Report] {
	return orderBy(filter.QueryFilter, map[string]func(a, b *report.Report) int{
		"title":      func(a, b *report.Report) int { return strings.Compare(a.Title, b.Title) },
		"created_at": func(a, b *report.Report) int { return a.CreatedAt.Compare(b.CreatedAt) },
		"published_at": func(a, b *report.Report) int {
			switch {
			case a.PublishedAt == nil && b.PublishedAt == nil:
				return 0
			case a.PublishedAt == nil:
				return 1
			case b.PublishedAt == nil:
				return -1
			}
			return a.PublishedAt.Compare(*b.PublishedAt)
		},
	}, func(r *report.Report) string { return r.ID })
}
