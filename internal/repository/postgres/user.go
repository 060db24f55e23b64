package postgres

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/domain/user"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
	"github.com/betulabla/foundation/internal/types"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

const userColumns = `id, username, email, role, phone_number, full_name, location, is_active, created_at, updated_at`

var userOrderColumns = map[string]string{
	"username":   "username",
	"full_name":  "full_name",
	"role":       "role",
	"created_at": "created_at",
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (
			:id, :username, :email, :role, :phone_number, :full_name, :location, :is_active, :created_at, :updated_at
		)`

	r.logger.Debugw("creating user", "user_id", u.ID, "username", u.Username)

	_, err := r.db.NamedExecContext(ctx, query, u)
	return postgres.WrapError(err, "user")
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, id); err != nil {
		return nil, postgres.WrapError(err, "user")
	}
	return &u, nil
}

// GetByUsername is exact and case sensitive, matching the unique index
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, username); err != nil {
		return nil, postgres.WrapError(err, "user")
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE users SET
			email = :email,
			role = :role,
			phone_number = :phone_number,
			full_name = :full_name,
			location = :location,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id`

	r.logger.Debugw("updating user", "user_id", u.ID)

	result, err := r.db.NamedExecContext(ctx, query, u)
	if err != nil {
		return postgres.WrapError(err, "user")
	}
	return expectAffected(result, "user")
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting user", "user_id", id)

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if _, ok := postgres.IsForeignKeyViolation(err); ok {
			return ierr.WithError(err).
				WithHint("User cannot be deleted while they own orphans, boreholes or reports").
				WithReportableDetails(map[string]any{"user_id": id}).
				Mark(ierr.ErrReferentialIntegrity)
		}
		return postgres.WrapError(err, "user")
	}
	return expectAffected(result, "user")
}

func (r *userRepository) List(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	if filter == nil {
		filter = types.NewDefaultUserFilter()
	}
	q := r.filterQuery(filter)
	query := `SELECT ` + userColumns + ` FROM users` + q.where() + q.page(filter.QueryFilter, userOrderColumns, "id")

	users := make([]*user.User, 0)
	if err := r.db.NamedSelectContext(ctx, &users, query, q.args); err != nil {
		return nil, postgres.WrapError(err, "user")
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter *types.UserFilter) (int, error) {
	if filter == nil {
		filter = types.NewDefaultUserFilter()
	}
	q := r.filterQuery(filter)

	var count int
	if err := r.db.NamedGetContext(ctx, &count, `SELECT COUNT(*) FROM users`+q.where(), q.args); err != nil {
		return 0, postgres.WrapError(err, "user")
	}
	return count, nil
}

func (r *userRepository) filterQuery(filter *types.UserFilter) *listQuery {
	q := newListQuery()
	if filter.Role != nil {
		q.eq("role", "role", *filter.Role)
	}
	if filter.IsActive != nil {
		q.eq("is_active", "is_active", *filter.IsActive)
	}
	if filter.QueryFilter != nil {
		q.search(filter.GetSearch(), "username", "full_name", "email")
	}
	return q
}
