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

const donationTableName = "karma.donations"

var donationColumns = utils.StructTagValues(types.Donation{})

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

func (r *DonationRepository) DonationsByDonor(ctx context.Context, donorID string) ([]*types.Donation, error) {
	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		Where(sq.Eq{"donor_id": donorID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donations query: %w", err)
	}

	var donations []*types.Donation
	err = pgxscan.Select(ctx, r.pool, &donations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donations: %w", err)
	}

	return donations, nil
}

func (r *DonationRepository) CountDonations(ctx context.Context) (int, error) {
	query, args, err := psql().
		Select("COUNT(*)").
		From(donationTableName).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate donation count query: %w", err)
	}

	var count int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count donations: %w", err)
	}

	return count, nil
}

// Record stores a completed donation and credits the donor's running total
// with the gross amount and the nonprofit's with the net amount, all in one
// transaction.
func (r *DonationRepository) Record(ctx context.Context, donation *types.Donation) error {
	if donation.ID == "" {
		donation.ID = utils.NanoID()
	}
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin donation transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	insertQuery, insertArgs, err := psql().
		Insert(donationTableName).
		SetMap(utils.StructToMap(donation)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donation query: %w", err)
	}

	if _, err := tx.Exec(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("failed to insert donation: %w", err)
	}

	userQuery, userArgs, err := psql().
		Update(userTableName).
		Set("total_donated_cents", sq.Expr("total_donated_cents + ?", donation.AmountCents)).
		Set("updated_at", donation.CreatedAt).
		Where(sq.Eq{"id": donation.DonorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate donor total query: %w", err)
	}

	if _, err := tx.Exec(ctx, userQuery, userArgs...); err != nil {
		return fmt.Errorf("failed to update donor total: %w", err)
	}

	nonprofitQuery, nonprofitArgs, err := psql().
		Update(nonprofitTableName).
		Set("total_donations_received_cents", sq.Expr("total_donations_received_cents + ?", donation.NetAmountCents)).
		Set("updated_at", donation.CreatedAt).
		Where(sq.Eq{"id": donation.NonprofitID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate nonprofit total query: %w", err)
	}

	if _, err := tx.Exec(ctx, nonprofitQuery, nonprofitArgs...); err != nil {
		return fmt.Errorf("failed to update nonprofit total: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit donation transaction: %w", err)
	}

	return nil
}

func (r *DonationRepository) SetReceiptKey(ctx context.Context, donationID, key string) error {
	query, args, err := psql().
		Update(donationTableName).
		Set("receipt_key", key).
		Where(sq.Eq{"id": donationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate receipt key query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to set donation receipt key")
}
