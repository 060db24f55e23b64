package postgres

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/domain/report"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
	"github.com/betulabla/foundation/internal/types"
)

type reportRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewReportRepository(db *postgres.DB, logger *logger.Logger) report.Repository {
	return &reportRepository{db: db, logger: logger}
}

const reportSelect = `
	SELECT
		r.id, r.title, r.report_type, r.content, r.orphan_id, r.borehole_id, r.file_key,
		r.status, r.reviewed_by, r.published_at, r.created_by, r.created_at, r.updated_at,
		COALESCE(cu.full_name, '') AS created_by_name,
		ru.full_name AS reviewed_by_name
	FROM reports r
	LEFT JOIN users cu ON cu.id = r.created_by
	LEFT JOIN users ru ON ru.id = r.reviewed_by`

var reportOrderColumns = map[string]string{
	"title":        "r.title",
	"created_at":   "r.created_at",
	"published_at": "r.published_at",
}

func (r *reportRepository) Create(ctx context.Context, rep *report.Report) error {
	query := `
		INSERT INTO reports (
			id, title, report_type, content, orphan_id, borehole_id, file_key, status,
			reviewed_by, published_at, created_by, created_at, updated_at
		) VALUES (
			:id, :title, :report_type, :content, :orphan_id, :borehole_id, :file_key, :status,
			:reviewed_by, :published_at, :created_by, :created_at, :updated_at
		)`

	r.logger.Debugw("creating report", "report_id", rep.ID, "created_by", rep.CreatedBy)

	_, err := r.db.NamedExecContext(ctx, query, rep)
	return postgres.WrapError(err, "report")
}

func (r *reportRepository) Get(ctx context.Context, id string) (*report.Report, error) {
	var rep report.Report
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &rep, reportSelect+` WHERE r.id = $1`, id); err != nil {
		return nil, postgres.WrapError(err, "report")
	}
	return &rep, nil
}

func (r *reportRepository) Update(ctx context.Context, rep *report.Report) error {
	rep.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE reports SET
			title = :title,
			report_type = :report_type,
			content = :content,
			orphan_id = :orphan_id,
			borehole_id = :borehole_id,
			file_key = :file_key,
			status = :status,
			reviewed_by = :reviewed_by,
			published_at = :published_at,
			updated_at = :updated_at
		WHERE id = :id`

	r.logger.Debugw("updating report", "report_id", rep.ID, "status", rep.Status)

	result, err := r.db.NamedExecContext(ctx, query, rep)
	if err != nil {
		return postgres.WrapError(err, "report")
	}
	return expectAffected(result, "report")
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting report", "report_id", id)

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return postgres.WrapError(err, "report")
	}
	return expectAffected(result, "report")
}

func (r *reportRepository) List(ctx context.Context, filter *types.ReportFilter) ([]*report.Report, error) {
	if filter == nil {
		filter = types.NewDefaultReportFilter()
	}
	q := r.filterQuery(filter)
	query := reportSelect + q.where() + q.page(filter.QueryFilter, reportOrderColumns, "r.id")

	reports := make([]*report.Report, 0)
	if err := r.db.NamedSelectContext(ctx, &reports, query, q.args); err != nil {
		return nil, postgres.WrapError(err, "report")
	}
	return reports, nil
}

func (r *reportRepository) Count(ctx context.Context, filter *types.ReportFilter) (int, error) {
	if filter == nil {
		filter = types.NewDefaultReportFilter()
	}
	q := r.filterQuery(filter)

	var count int
	if err := r.db.NamedGetContext(ctx, &count, `SELECT COUNT(*) FROM reports r`+q.where(), q.args); err != nil {
		return 0, postgres.WrapError(err, "report")
	}
	return count, nil
}

func (r *reportRepository) Stats(ctx context.Context, monthStart time.Time) (*report.Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total_reports,
			COUNT(*) FILTER (WHERE status = 'draft') AS draft_reports,
			COUNT(*) FILTER (WHERE status = 'published') AS published_reports,
			COUNT(*) FILTER (WHERE created_at >= :month_start) AS reports_this_month
		FROM reports`

	var stats report.Stats
	if err := r.db.NamedGetContext(ctx, &stats, query, map[string]interface{}{"month_start": monthStart}); err != nil {
		return nil, postgres.WrapError(err, "report")
	}
	return &stats, nil
}

func (r *reportRepository) filterQuery(filter *types.ReportFilter) *listQuery {
	q := newListQuery()
	if filter.Status != nil {
		q.eq("r.status", "status", *filter.Status)
	}
	if filter.ReportType != nil {
		q.eq("r.report_type", "report_type", *filter.ReportType)
	}
	if filter.OrphanID != nil {
		q.eq("r.orphan_id", "orphan_id", *filter.OrphanID)
	}
	if filter.BoreholeID != nil {
		q.eq("r.borehole_id", "borehole_id", *filter.BoreholeID)
	}
	if filter.QueryFilter != nil {
		q.search(filter.GetSearch(), "r.title", "r.content")
	}
	return q
}
