package postgres

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/domain/orphan"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
	"github.com/betulabla/foundation/internal/types"
)

type orphanRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewOrphanRepository(db *postgres.DB, logger *logger.Logger) orphan.Repository {
	return &orphanRepository{db: db, logger: logger}
}

const orphanColumns = `id, full_name, date_of_birth, gender, address, guardian_name, guardian_phone,
	school_name, education_level, health_status, special_needs, monthly_allowance,
	last_payment_date, photo_key, status, created_by, created_at, updated_at`

var orphanOrderColumns = map[string]string{
	"full_name":         "full_name",
	"date_of_birth":     "date_of_birth",
	"created_at":        "created_at",
	"monthly_allowance": "monthly_allowance",
}

func (r *orphanRepository) Create(ctx context.Context, o *orphan.Orphan) error {
	query := `
		INSERT INTO orphans (` + orphanColumns + `)
		VALUES (
			:id, :full_name, :date_of_birth, :gender, :address, :guardian_name, :guardian_phone,
			:school_name, :education_level, :health_status, :special_needs, :monthly_allowance,
			:last_payment_date, :photo_key, :status, :created_by, :created_at, :updated_at
		)`

	r.logger.Debugw("creating orphan", "orphan_id", o.ID, "created_by", o.CreatedBy)

	_, err := r.db.NamedExecContext(ctx, query, o)
	return postgres.WrapError(err, "orphan")
}

func (r *orphanRepository) Get(ctx context.Context, id string) (*orphan.Orphan, error) {
	var o orphan.Orphan
	query := `SELECT ` + orphanColumns + ` FROM orphans WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &o, query, id); err != nil {
		return nil, postgres.WrapError(err, "orphan")
	}
	return &o, nil
}

func (r *orphanRepository) Update(ctx context.Context, o *orphan.Orphan) error {
	o.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE orphans SET
			full_name = :full_name,
			date_of_birth = :date_of_birth,
			gender = :gender,
			address = :address,
			guardian_name = :guardian_name,
			guardian_phone = :guardian_phone,
			school_name = :school_name,
			education_level = :education_level,
			health_status = :health_status,
			special_needs = :special_needs,
			monthly_allowance = :monthly_allowance,
			last_payment_date = :last_payment_date,
			photo_key = :photo_key,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id`

	r.logger.Debugw("updating orphan", "orphan_id", o.ID, "status", o.Status)

	result, err := r.db.NamedExecContext(ctx, query, o)
	if err != nil {
		return postgres.WrapError(err, "orphan")
	}
	return expectAffected(result, "orphan")
}

// Delete removes the orphan. Reports about the orphan are removed by the FK cascade.
func (r *orphanRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting orphan", "orphan_id", id)

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM orphans WHERE id = $1`, id)
	if err != nil {
		return postgres.WrapError(err, "orphan")
	}
	return expectAffected(result, "orphan")
}

func (r *orphanRepository) List(ctx context.Context, filter *types.OrphanFilter) ([]*orphan.Orphan, error) {
	if filter == nil {
		filter = types.NewDefaultOrphanFilter()
	}
	q := r.filterQuery(filter)
	query := `SELECT ` + orphanColumns + ` FROM orphans` + q.where() + q.page(filter.QueryFilter, orphanOrderColumns, "id")

	orphans := make([]*orphan.Orphan, 0)
	if err := r.db.NamedSelectContext(ctx, &orphans, query, q.args); err != nil {
		return nil, postgres.WrapError(err, "orphan")
	}
	return orphans, nil
}

func (r *orphanRepository) Count(ctx context.Context, filter *types.OrphanFilter) (int, error) {
	if filter == nil {
		filter = types.NewDefaultOrphanFilter()
	}
	q := r.filterQuery(filter)

	var count int
	if err := r.db.NamedGetContext(ctx, &count, `SELECT COUNT(*) FROM orphans`+q.where(), q.args); err != nil {
		return 0, postgres.WrapError(err, "orphan")
	}
	return count, nil
}

func (r *orphanRepository) Stats(ctx context.Context) (*orphan.Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total_orphans,
			COUNT(*) FILTER (WHERE status = 'active') AS active_orphans,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending_orphans,
			COUNT(*) FILTER (WHERE status = 'inactive') AS inactive_orphans,
			COALESCE(SUM(monthly_allowance) FILTER (WHERE status = 'active'), 0) AS total_monthly_budget,
			COALESCE(AVG(monthly_allowance) FILTER (WHERE status = 'active'), 0) AS avg_monthly_allowance
		FROM orphans`

	var stats orphan.Stats
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &stats, query); err != nil {
		return nil, postgres.WrapError(err, "orphan")
	}
	return &stats, nil
}

func (r *orphanRepository) filterQuery(filter *types.OrphanFilter) *listQuery {
	q := newListQuery()
	if filter.Status != nil {
		q.eq("status", "status", *filter.Status)
	}
	if filter.Gender != nil {
		q.eq("gender", "gender", *filter.Gender)
	}
	if filter.EducationLevel != nil {
		q.eq("education_level", "education_level", *filter.EducationLevel)
	}
	if filter.HealthStatus != nil {
		q.eq("health_status", "health_status", *filter.HealthStatus)
	}
	if filter.QueryFilter != nil {
		q.search(filter.GetSearch(), types.OrphanSearchFields...)
	}
	return q
}
