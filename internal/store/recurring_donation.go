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

const recurringDonationTableName = "karma.recurring_donations"

var recurringDonationColumns = utils.StructTagValues(types.RecurringDonation{})

type RecurringDonationRepository struct {
	pool *pgxpool.Pool
}

func NewRecurringDonationRepository(pool *pgxpool.Pool) *RecurringDonationRepository {
	return &RecurringDonationRepository{pool: pool}
}

// RecurringDonationsByDonor returns the donor's schedules, soonest first.
func (r *RecurringDonationRepository) RecurringDonationsByDonor(ctx context.Context, donorID string) ([]*types.RecurringDonation, error) {
	query, args, err := psql().
		Select(recurringDonationColumns...).
		From(recurringDonationTableName).
		Where(sq.Eq{"donor_id": donorID}).
		OrderBy("next_donation_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate recurring donations query: %w", err)
	}

	var recurring []*types.RecurringDonation
	err = pgxscan.Select(ctx, r.pool, &recurring, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recurring donations: %w", err)
	}

	return recurring, nil
}

func (r *RecurringDonationRepository) Create(ctx context.Context, recurring *types.RecurringDonation) error {
	now := time.Now()
	if recurring.ID == "" {
		recurring.ID = utils.NanoID()
	}
	recurring.CreatedAt = now
	recurring.UpdatedAt = now

	query, args, err := psql().
		Insert(recurringDonationTableName).
		SetMap(utils.StructToMap(recurring)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert recurring donation query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create recurring donation")
}

// UpdateStatus moves the donor's recurring donation to status. The update is
// conditional on the current status being one that may transition there, so
// a concurrent change can never produce an illegal transition.
func (r *RecurringDonationRepository) UpdateStatus(ctx context.Context, recurringID, donorID string, status types.RecurringStatus) error {
	sources := status.Sources()
	if len(sources) == 0 {
		return types.ErrInvalidTransition
	}

	query, args, err := psql().
		Update(recurringDonationTableName).
		Set("status", string(status)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{
			"id":       recurringID,
			"donor_id": donorID,
			"status":   stringSlice(sources),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate recurring status query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update recurring donation status: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return nil
	}

	exists, err := r.exists(ctx, recurringID, donorID)
	if err != nil {
		return err
	}
	if !exists {
		return types.ErrNotFound
	}

	return types.ErrInvalidTransition
}

func (r *RecurringDonationRepository) exists(ctx context.Context, recurringID, donorID string) (bool, error) {
	query, args, err := psql().
		Select("1").
		From(recurringDonationTableName).
		Where(sq.Eq{"id": recurringID, "donor_id": donorID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate recurring exists query: %w", err)
	}

	var exists bool
	err = r.pool.QueryRow(ctx, query, args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check recurring donation: %w", err)
	}

	return exists, nil
}
