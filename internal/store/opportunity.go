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

const opportunityTableName = "karma.opportunities"

var opportunityColumns = utils.StructTagValues(types.Opportunity{})

type OpportunityRepository struct {
	pool *pgxpool.Pool
}

func NewOpportunityRepository(pool *pgxpool.Pool) *OpportunityRepository {
	return &OpportunityRepository{pool: pool}
}

func (r *OpportunityRepository) ActiveOpportunities(ctx context.Context) ([]*types.Opportunity, error) {
	return r.opportunities(ctx, sq.Eq{"is_active": true})
}

func (r *OpportunityRepository) ActiveOpportunitiesByNonprofit(ctx context.Context, nonprofitID string) ([]*types.Opportunity, error) {
	return r.opportunities(ctx, sq.Eq{"is_active": true, "nonprofit_id": nonprofitID})
}

func (r *OpportunityRepository) opportunities(ctx context.Context, where sq.Eq) ([]*types.Opportunity, error) {
	query, args, err := psql().
		Select(opportunityColumns...).
		From(opportunityTableName).
		Where(where).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate opportunities query: %w", err)
	}

	var opportunities []*types.Opportunity
	err = pgxscan.Select(ctx, r.pool, &opportunities, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opportunities: %w", err)
	}

	return opportunities, nil
}

func (r *OpportunityRepository) Opportunity(ctx context.Context, opportunityID string) (*types.Opportunity, error) {
	query, args, err := psql().
		Select(opportunityColumns...).
		From(opportunityTableName).
		Where(sq.Eq{"id": opportunityID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate opportunity query: %w", err)
	}

	var opportunity types.Opportunity
	err = pgxscan.Get(ctx, r.pool, &opportunity, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch opportunity: %w", err)
	}

	return &opportunity, nil
}

func (r *OpportunityRepository) Upsert(ctx context.Context, opportunity *types.Opportunity) error {
	if opportunity.ID == "" {
		opportunity.ID = utils.NanoID()
	}
	opportunity.UpdatedAt = time.Now()
	if opportunity.CreatedAt.IsZero() {
		opportunity.CreatedAt = opportunity.UpdatedAt
	}

	query, args, err := psql().
		Insert(opportunityTableName).
		SetMap(utils.StructToMap(opportunity)).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + buildUpdateClause(opportunityColumns, "id", "created_at", "volunteers_signed_up")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert opportunity query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert opportunity")
}
