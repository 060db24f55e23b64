package postgres

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/domain/borehole"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
	"github.com/betulabla/foundation/internal/types"
)

type boreholeRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewBoreholeRepository(db *postgres.DB, logger *logger.Logger) borehole.Repository {
	return &boreholeRepository{db: db, logger: logger}
}

const boreholeColumns = `id, name, location, community_served, latitude, longitude, depth_meters,
	water_quality, installation_date, last_maintenance, beneficiaries_count, status,
	created_by, created_at, updated_at`

var boreholeOrderColumns = map[string]string{
	"name":                "name",
	"location":            "location",
	"installation_date":   "installation_date",
	"beneficiaries_count": "beneficiaries_count",
	"created_at":          "created_at",
}

func (r *boreholeRepository) Create(ctx context.Context, b *borehole.Borehole) error {
	query := `
		INSERT INTO boreholes (` + boreholeColumns + `)
		VALUES (
			:id, :name, :location, :community_served, :latitude, :longitude, :depth_meters,
			:water_quality, :installation_date, :last_maintenance, :beneficiaries_count, :status,
			:created_by, :created_at, :updated_at
		)`

	r.logger.Debugw("creating borehole", "borehole_id", b.ID, "created_by", b.CreatedBy)

	_, err := r.db.NamedExecContext(ctx, query, b)
	return postgres.WrapError(err, "borehole")
}

func (r *boreholeRepository) Get(ctx context.Context, id string) (*borehole.Borehole, error) {
	var b borehole.Borehole
	query := `SELECT ` + boreholeColumns + ` FROM boreholes WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &b, query, id); err != nil {
		return nil, postgres.WrapError(err, "borehole")
	}
	return &b, nil
}

func (r *boreholeRepository) Update(ctx context.Context, b *borehole.Borehole) error {
	b.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE boreholes SET
			name = :name,
			location = :location,
			community_served = :community_served,
			latitude = :latitude,
			longitude = :longitude,
			depth_meters = :depth_meters,
			water_quality = :water_quality,
			installation_date = :installation_date,
			last_maintenance = :last_maintenance,
			beneficiaries_count = :beneficiaries_count,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id`

	r.logger.Debugw("updating borehole", "borehole_id", b.ID, "status", b.Status)

	result, err := r.db.NamedExecContext(ctx, query, b)
	if err != nil {
		return postgres.WrapError(err, "borehole")
	}
	return expectAffected(result, "borehole")
}

// Delete removes the borehole. Reports about the borehole are removed by the FK cascade.
func (r *boreholeRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting borehole", "borehole_id", id)

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM boreholes WHERE id = $1`, id)
	if err != nil {
		return postgres.WrapError(err, "borehole")
	}
	return expectAffected(result, "borehole")
}

func (r *boreholeRepository) List(ctx context.Context, filter *types.BoreholeFilter) ([]*borehole.Borehole, error) {
	if filter == nil {
		filter = types.NewDefaultBoreholeFilter()
	}
	q := r.filterQuery(filter)
	query := `SELECT ` + boreholeColumns + ` FROM boreholes` + q.where() + q.page(filter.QueryFilter, boreholeOrderColumns, "id")

	boreholes := make([]*borehole.Borehole, 0)
	if err := r.db.NamedSelectContext(ctx, &boreholes, query, q.args); err != nil {
		return nil, postgres.WrapError(err, "borehole")
	}
	return boreholes, nil
}

func (r *boreholeRepository) Count(ctx context.Context, filter *types.BoreholeFilter) (int, error) {
	if filter == nil {
		filter = types.NewDefaultBoreholeFilter()
	}
	q := r.filterQuery(filter)

	var count int
	if err := r.db.NamedGetContext(ctx, &count, `SELECT COUNT(*) FROM boreholes`+q.where(), q.args); err != nil {
		return 0, postgres.WrapError(err, "borehole")
	}
	return count, nil
}

func (r *boreholeRepository) Stats(ctx context.Context) (*borehole.Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total_boreholes,
			COUNT(*) FILTER (WHERE status = 'active') AS active_boreholes,
			COUNT(*) FILTER (WHERE status = 'maintenance') AS maintenance_boreholes,
			COALESCE(SUM(beneficiaries_count) FILTER (WHERE status = 'active'), 0) AS total_beneficiaries,
			COALESCE(AVG(beneficiaries_count) FILTER (WHERE status = 'active'), 0) AS avg_beneficiaries_per_borehole
		FROM boreholes`

	var stats borehole.Stats
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &stats, query); err != nil {
		return nil, postgres.WrapError(err, "borehole")
	}
	return &stats, nil
}

func (r *boreholeRepository) filterQuery(filter *types.BoreholeFilter) *listQuery {
	q := newListQuery()
	if filter.Status != nil {
		q.eq("status", "status", *filter.Status)
	}
	if filter.WaterQuality != nil {
		q.eq("water_quality", "water_quality", *filter.WaterQuality)
	}
	if filter.QueryFilter != nil {
		q.search(filter.GetSearch(), types.BoreholeSearchFields...)
	}
	return q
}
