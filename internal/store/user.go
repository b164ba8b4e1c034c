package store

import (
	"context"
	"fmt"
	"time"

	"karma/internal/utils"
	"karma/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userTableName = "karma.users"

var userColumns = utils.StructTagValues(types.User{})

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) User(ctx context.Context, userID string) (*types.User, error) {
	query, args, err := psql().
		Select(userColumns...).
		From(userTableName).
		Where(sq.Eq{"id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user query: %w", err)
	}

	var user types.User
	err = pgxscan.Get(ctx, r.pool, &user, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *types.User) error {
	now := time.Now()
	if user.ID == "" {
		user.ID = utils.NanoID()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	query, args, err := psql().
		Insert(userTableName).
		SetMap(utils.StructToMap(user)).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + buildUpdateClause(userColumns, "id", "created_at", "total_donated_cents", "total_volunteer_hours")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create user query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create user")
}

// Update applies the non-nil fields of update and returns the stored user.
func (r *UserRepository) Update(ctx context.Context, userID string, update types.UserUpdate) (*types.User, error) {
	builder := psql().
		Update(userTableName).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": userID})

	if update.FullName != nil {
		builder = builder.Set("full_name", update.FullName)
	}
	if update.Phone != nil {
		builder = builder.Set("phone", update.Phone)
	}
	if update.Location != nil {
		for column, value := range utils.StructToMap(update.Location) {
			builder = builder.Set(column, value)
		}
	}
	if update.PreferredCategories != nil {
		builder = builder.Set("preferred_categories", update.PreferredCategories)
	}
	if update.FavoriteNonprofits != nil {
		builder = builder.Set("favorite_nonprofits", update.FavoriteNonprofits)
	}
	if update.UserType != nil {
		builder = builder.Set("user_type", string(*update.UserType))
	}
	if update.NonprofitID != nil {
		builder = builder.Set("nonprofit_id", update.NonprofitID)
	}
	if update.ProfileCompleted != nil {
		builder = builder.Set("profile_completed", *update.ProfileCompleted)
	}

	query, args, err := builder.Suffix("RETURNING " + joinColumns(userColumns)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update user query: %w", err)
	}

	var user types.User
	err = pgxscan.Get(ctx, r.pool, &user, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}
