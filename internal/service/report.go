package service

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/domain/report"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/s3"
	"github.com/betulabla/foundation/internal/types"
	"github.com/samber/lo"
)

type ReportService interface {
	CreateReport(ctx context.Context, req dto.CreateReportRequest) (*dto.ReportResponse, error)
	GetReport(ctx context.Context, id string) (*dto.ReportResponse, error)
	ListReports(ctx context.Context, filter *types.ReportFilter) (*dto.ListReportsResponse, error)
	UpdateReport(ctx context.Context, id string, req dto.UpdateReportRequest, partial bool) (*dto.ReportResponse, error)
	DeleteReport(ctx context.Context, id string) error
	ApproveReport(ctx context.Context, id string) (*dto.ReportResponse, error)
	PublishReport(ctx context.Context, id string) (*dto.ReportResponse, error)
	GetReportStats(ctx context.Context) (*dto.ReportStatsResponse, error)
	UploadReportAttachment(ctx context.Context, id string, data []byte) (*dto.ReportResponse, error)
}

type reportService struct {
	ServiceParams
	media MediaService
	now   func() time.Time
}

func NewReportService(params ServiceParams, media MediaService) ReportService {
	return &reportService{
		ServiceParams: params,
		media:         media,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) CreateReport(ctx context.Context, req dto.CreateReportRequest) (*dto.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := req.ToReport(ctx)
	if r.Status == types.ReportStatusPublished {
		r.MarkPublished(r.CreatedAt)
	}

	var created *report.Report
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.validateReferences(ctx, r); err != nil {
			return err
		}
		if err := s.ReportRepo.Create(ctx, r); err != nil {
			return err
		}

		var err error
		created, err = s.ReportRepo.Get(ctx, r.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("report created", "report_id", created.ID, "report_type", created.ReportType, "created_by", created.CreatedBy)
	return s.toResponse(ctx, created), nil
}

func (s *reportService) GetReport(ctx context.Context, id string) (*dto.ReportResponse, error) {
	r, err := s.ReportRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, r), nil
}

func (s *reportService) ListReports(ctx context.Context, filter *types.ReportFilter) (*dto.ListReportsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultReportFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	reports, err := s.ReportRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.ReportRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(reports, func(r *report.Report, _ int) *dto.ReportListItemResponse {
		return dto.NewReportListItemResponse(r)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// UpdateReport applies a full or partial update. Status may be written directly;
// reaching published this way still stamps the first publication time.
func (s *reportService) UpdateReport(ctx context.Context, id string, req dto.UpdateReportRequest, partial bool) (*dto.ReportResponse, error) {
	if err := req.Validate(partial); err != nil {
		return nil, err
	}

	return s.update(ctx, id, func(ctx context.Context, r *report.Report) error {
		req.Apply(r)
		if r.Status == types.ReportStatusPublished {
			r.MarkPublished(s.now())
		}
		return s.validateReferences(ctx, r)
	})
}

func (s *reportService) DeleteReport(ctx context.Context, id string) error {
	r, err := s.ReportRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.ReportRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.media.Delete(ctx, r.FileKey)
	s.Logger.Infow("report deleted", "report_id", id, "deleted_by", types.GetUserID(ctx))
	return nil
}

// ApproveReport marks the report approved by the caller, whatever its current status
func (s *reportService) ApproveReport(ctx context.Context, id string) (*dto.ReportResponse, error) {
	reviewer := types.GetUserID(ctx)
	return s.update(ctx, id, func(_ context.Context, r *report.Report) error {
		r.Status = types.ReportStatusApproved
		r.ReviewedBy = lo.EmptyableToPtr(reviewer)
		return nil
	})
}

// PublishReport moves an approved report to published
func (s *reportService) PublishReport(ctx context.Context, id string) (*dto.ReportResponse, error) {
	return s.update(ctx, id, func(_ context.Context, r *report.Report) error {
		if r.Status != types.ReportStatusApproved {
			return ierr.NewErrorf("report %s is %s, not approved", r.ID, r.Status).
				WithHint("Report must be approved before publishing").
				WithReportableDetails(map[string]any{
					"status": r.Status,
				}).
				Mark(ierr.ErrValidation)
		}
		r.MarkPublished(s.now())
		return nil
	})
}

func (s *reportService) GetReportStats(ctx context.Context) (*dto.ReportStatsResponse, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats, err := s.ReportRepo.Stats(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	return dto.NewReportStatsResponse(stats), nil
}

func (s *reportService) UploadReportAttachment(ctx context.Context, id string, data []byte) (*dto.ReportResponse, error) {
	if _, err := s.ReportRepo.Get(ctx, id); err != nil {
		return nil, err
	}

	key, err := s.media.Upload(ctx, s3.DocumentTypeReportAttachment, id, data)
	if err != nil {
		return nil, err
	}

	var previous *string
	resp, err := s.update(ctx, id, func(_ context.Context, r *report.Report) error {
		previous = r.FileKey
		r.FileKey = &key
		return nil
	})
	if err != nil {
		s.media.Delete(ctx, &key)
		return nil, err
	}

	s.media.Delete(ctx, previous)
	return resp, nil
}

// update runs a read-modify-write of one report inside a transaction and
// reloads it so the reviewer and author names reflect the change
func (s *reportService) update(ctx context.Context, id string, mutate func(ctx context.Context, r *report.Report) error) (*dto.ReportResponse, error) {
	var updated *report.Report
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		r, err := s.ReportRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if err := mutate(ctx, r); err != nil {
			return err
		}

		r.UpdatedAt = s.now()
		if err := s.ReportRepo.Update(ctx, r); err != nil {
			return err
		}

		updated, err = s.ReportRepo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, updated), nil
}

// validateReferences rejects links to orphans or boreholes that do not exist
func (s *reportService) validateReferences(ctx context.Context, r *report.Report) error {
	if r.OrphanID != nil {
		if _, err := s.OrphanRepo.Get(ctx, *r.OrphanID); err != nil {
			return referenceError(err, "orphan", *r.OrphanID)
		}
	}
	if r.BoreholeID != nil {
		if _, err := s.BoreholeRepo.Get(ctx, *r.BoreholeID); err != nil {
			return referenceError(err, "borehole", *r.BoreholeID)
		}
	}
	return nil
}

func (s *reportService) toResponse(ctx context.Context, r *report.Report) *dto.ReportResponse {
	return dto.NewReportResponse(r, s.media.URL(ctx, r.FileKey))
}

func referenceError(err error, field, id string) error {
	if !ierr.IsNotFound(err) {
		return err
	}
	return ierr.NewErrorf("%s %s does not exist", field, id).
		WithHintf("Invalid %s \"%s\" - object does not exist.", field, id).
		WithReportableDetails(map[string]any{
			field: "Invalid pk \"" + id + "\" - object does not exist.",
		}).
		Mark(ierr.ErrValidation)
}
