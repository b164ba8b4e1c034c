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

const nonprofitTableName = "karma.nonprofits"

var nonprofitColumns = utils.StructTagValues(types.Nonprofit{})

type NonprofitRepository struct {
	pool *pgxpool.Pool
}

func NewNonprofitRepository(pool *pgxpool.Pool) *NonprofitRepository {
	return &NonprofitRepository{pool: pool}
}

// Nonprofits returns the whole directory, newest first.
func (r *NonprofitRepository) Nonprofits(ctx context.Context) ([]*types.Nonprofit, error) {
	query, args, err := psql().
		Select(nonprofitColumns...).
		From(nonprofitTableName).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonprofits query: %w", err)
	}

	var nonprofits []*types.Nonprofit
	err = pgxscan.Select(ctx, r.pool, &nonprofits, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nonprofits: %w", err)
	}

	return nonprofits, nil
}

func (r *NonprofitRepository) Nonprofit(ctx context.Context, nonprofitID string) (*types.Nonprofit, error) {
	query, args, err := psql().
		Select(nonprofitColumns...).
		From(nonprofitTableName).
		Where(sq.Eq{"id": nonprofitID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonprofit query: %w", err)
	}

	var nonprofit types.Nonprofit
	err = pgxscan.Get(ctx, r.pool, &nonprofit, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch nonprofit: %w", err)
	}

	return &nonprofit, nil
}

func (r *NonprofitRepository) Create(ctx context.Context, nonprofit *types.Nonprofit) error {
	now := time.Now()
	if nonprofit.ID == "" {
		nonprofit.ID = utils.NanoID()
	}
	nonprofit.CreatedAt = now
	nonprofit.UpdatedAt = now

	query, args, err := psql().
		Insert(nonprofitTableName).
		SetMap(utils.StructToMap(nonprofit)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert nonprofit query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create nonprofit")
}

// Upsert writes nonprofit keyed by id. An existing row keeps its created_at
// and running totals.
func (r *NonprofitRepository) Upsert(ctx context.Context, nonprofit *types.Nonprofit) error {
	nonprofit.UpdatedAt = time.Now()
	if nonprofit.CreatedAt.IsZero() {
		nonprofit.CreatedAt = nonprofit.UpdatedAt
	}

	query, args, err := psql().
		Insert(nonprofitTableName).
		SetMap(utils.StructToMap(nonprofit)).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + buildUpdateClause(nonprofitColumns, "id", "created_at", "total_donations_received_cents", "volunteers_count")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert nonprofit query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert nonprofit")
}
