package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/domain/borehole"
	"github.com/betulabla/foundation/internal/domain/orphan"
	"github.com/betulabla/foundation/internal/domain/report"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/export"
	"github.com/betulabla/foundation/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ExportService renders filtered resource listings as xlsx workbooks
type ExportService interface {
	ExportOrphans(ctx context.Context, filter *types.OrphanFilter) (*dto.ExportFile, error)
	ExportBoreholes(ctx context.Context, filter *types.BoreholeFilter) (*dto.ExportFile, error)
	ExportReports(ctx context.Context, filter *types.ReportFilter) (*dto.ExportFile, error)
}

type exportService struct {
	ServiceParams
	now func() time.Time
}

func NewExportService(params ServiceParams) ExportService {
	return &exportService{
		ServiceParams: params,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *exportService) ExportOrphans(ctx context.Context, filter *types.OrphanFilter) (*dto.ExportFile, error) {
	if filter == nil {
		filter = types.NewNoLimitOrphanFilter()
	}
	filter.QueryFilter = unlimited(filter.QueryFilter)
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	orphans, err := s.OrphanRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rows := lo.Map(orphans, func(o *orphan.Orphan, _ int) []any {
		return []any{
			o.ID,
			o.FullName,
			o.DateOfBirth.String(),
			o.Age(now),
			string(o.Gender),
			o.Address,
			o.GuardianName,
			o.GuardianPhone,
			o.SchoolName,
			string(o.EducationLevel),
			string(o.HealthStatus),
			money(o.MonthlyAllowance),
			dateCell(o.LastPaymentDate),
			string(o.Status),
			o.CreatedAt.Format(time.RFC3339),
		}
	})

	return s.write(ctx, "Orphans", export.Sheet{
		Name: "Orphans",
		Columns: []export.Column{
			{Header: "ID", Width: 32},
			{Header: "Full Name", Width: 25},
			{Header: "Date of Birth", Width: 14},
			{Header: "Age", Width: 6},
			{Header: "Gender", Width: 10},
			{Header: "Address", Width: 30},
			{Header: "Guardian Name", Width: 25},
			{Header: "Guardian Phone", Width: 16},
			{Header: "School", Width: 25},
			{Header: "Education Level", Width: 16},
			{Header: "Health Status", Width: 14},
			{Header: "Monthly Allowance", Width: 18},
			{Header: "Last Payment", Width: 14},
			{Header: "Status", Width: 12},
			{Header: "Created At", Width: 22},
		},
		Rows: rows,
	})
}

func (s *exportService) ExportBoreholes(ctx context.Context, filter *types.BoreholeFilter) (*dto.ExportFile, error) {
	if filter == nil {
		filter = types.NewNoLimitBoreholeFilter()
	}
	filter.QueryFilter = unlimited(filter.QueryFilter)
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	boreholes, err := s.BoreholeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := lo.Map(boreholes, func(b *borehole.Borehole, _ int) []any {
		return []any{
			b.ID,
			b.Name,
			b.Location,
			b.CommunityServed,
			coordinate(b.Latitude),
			coordinate(b.Longitude),
			lo.FromPtr(b.DepthMeters),
			string(b.WaterQuality),
			dateCell(b.InstallationDate),
			dateCell(b.LastMaintenance),
			b.BeneficiariesCount,
			string(b.Status),
			b.CreatedAt.Format(time.RFC3339),
		}
	})

	return s.write(ctx, "Boreholes", export.Sheet{
		Name: "Boreholes",
		Columns: []export.Column{
			{Header: "ID", Width: 32},
			{Header: "Name", Width: 25},
			{Header: "Location", Width: 25},
			{Header: "Community Served", Width: 25},
			{Header: "Latitude", Width: 12},
			{Header: "Longitude", Width: 12},
			{Header: "Depth (m)", Width: 10},
			{Header: "Water Quality", Width: 14},
			{Header: "Installed", Width: 14},
			{Header: "Last Maintenance", Width: 16},
			{Header: "Beneficiaries", Width: 14},
			{Header: "Status", Width: 14},
			{Header: "Created At", Width: 22},
		},
		Rows: rows,
	})
}

func (s *exportService) ExportReports(ctx context.Context, filter *types.ReportFilter) (*dto.ExportFile, error) {
	if filter == nil {
		filter = types.NewNoLimitReportFilter()
	}
	filter.QueryFilter = unlimited(filter.QueryFilter)
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	reports, err := s.ReportRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := lo.Map(reports, func(r *report.Report, _ int) []any {
		var publishedAt any
		if r.PublishedAt != nil {
			publishedAt = r.PublishedAt.Format(time.RFC3339)
		}
		return []any{
			r.ID,
			r.Title,
			string(r.ReportType),
			string(r.Status),
			lo.FromPtr(r.OrphanID),
			lo.FromPtr(r.BoreholeID),
			r.CreatedByName,
			lo.FromPtr(r.ReviewedByName),
			r.CreatedAt.Format(time.RFC3339),
			publishedAt,
		}
	})

	return s.write(ctx, "Reports", export.Sheet{
		Name: "Reports",
		Columns: []export.Column{
			{Header: "ID", Width: 32},
			{Header: "Title", Width: 35},
			{Header: "Type", Width: 12},
			{Header: "Status", Width: 12},
			{Header: "Orphan", Width: 32},
			{Header: "Borehole", Width: 32},
			{Header: "Created By", Width: 20},
			{Header: "Reviewed By", Width: 20},
			{Header: "Created At", Width: 22},
			{Header: "Published At", Width: 22},
		},
		Rows: rows,
	})
}

func (s *exportService) write(ctx context.Context, name string, sheet export.Sheet) (*dto.ExportFile, error) {
	data, err := export.Write(sheet)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate export").
			Mark(ierr.ErrSystem)
	}

	s.Logger.Infow("export generated",
		"sheet", name,
		"rows", len(sheet.Rows),
		"user_id", types.GetUserID(ctx),
	)

	return &dto.ExportFile{
		Filename:    fmt.Sprintf("%s-%s.xlsx", strings.ToLower(name), s.now().Format("20060102")),
		ContentType: export.ContentType,
		Data:        data,
	}, nil
}

// unlimited keeps search, ordering and filters but drops pagination
func unlimited(f *types.QueryFilter) *types.QueryFilter {
	out := types.NewNoLimitQueryFilter()
	if f != nil {
		out.Search = f.Search
		if f.Ordering != nil {
			out.Ordering = f.Ordering
		}
	}
	return out
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func coordinate(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}

func dateCell(d *types.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}
