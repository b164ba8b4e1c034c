package store

import (
	"context"
	"fmt"
	"time"

	"karma/internal/utils"
	"karma/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const volunteerApplicationTableName = "karma.volunteer_applications"

type VolunteerApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewVolunteerApplicationRepository(pool *pgxpool.Pool) *VolunteerApplicationRepository {
	return &VolunteerApplicationRepository{pool: pool}
}

// Submit stores a pending application and counts the volunteer against the
// opportunity's sign ups in the same transaction.
func (r *VolunteerApplicationRepository) Submit(ctx context.Context, application *types.VolunteerApplication) error {
	now := time.Now()
	if application.ID == "" {
		application.ID = utils.NanoID()
	}
	application.CreatedAt = now
	application.UpdatedAt = now

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin application transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	insertQuery, insertArgs, err := psql().
		Insert(volunteerApplicationTableName).
		SetMap(utils.StructToMap(application)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert application query: %w", err)
	}

	if _, err := tx.Exec(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}

	signupQuery, signupArgs, err := psql().
		Update(opportunityTableName).
		Set("volunteers_signed_up", sq.Expr("volunteers_signed_up + 1")).
		Set("updated_at", now).
		Where(sq.Eq{"id": application.OpportunityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate signup count query: %w", err)
	}

	if _, err := tx.Exec(ctx, signupQuery, signupArgs...); err != nil {
		return fmt.Errorf("failed to increment signups: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit application transaction: %w", err)
	}

	return nil
}
