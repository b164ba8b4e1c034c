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

const reviewTableName = "karma.reviews"

var reviewColumns = utils.StructTagValues(types.Review{})

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) Reviews(ctx context.Context) ([]*types.Review, error) {
	return r.reviews(ctx, nil)
}

func (r *ReviewRepository) ReviewsByReviewer(ctx context.Context, reviewerID string) ([]*types.Review, error) {
	return r.reviews(ctx, sq.Eq{"reviewer_id": reviewerID})
}

func (r *ReviewRepository) ReviewsByNonprofit(ctx context.Context, nonprofitID string) ([]*types.Review, error) {
	return r.reviews(ctx, sq.Eq{"nonprofit_id": nonprofitID})
}

func (r *ReviewRepository) reviews(ctx context.Context, where sq.Sqlizer) ([]*types.Review, error) {
	builder := psql().
		Select(reviewColumns...).
		From(reviewTableName).
		OrderBy("created_at DESC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reviews query: %w", err)
	}

	var reviews []*types.Review
	err = pgxscan.Select(ctx, r.pool, &reviews, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return reviews, nil
}

// Create inserts review. A second review of the same nonprofit by the same
// reviewer fails with ErrDuplicate.
func (r *ReviewRepository) Create(ctx context.Context, review *types.Review) error {
	if review.ID == "" {
		review.ID = utils.NanoID()
	}
	review.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(reviewTableName).
		SetMap(utils.StructToMap(review)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert review query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create review: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}
