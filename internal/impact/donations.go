package impact

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"karma/internal/events"
	"karma/internal/fees"
	"karma/internal/utils"
	"karma/pkg/types"

	"github.com/sirupsen/logrus"
)

const transactionPrefix = "demo_txn_"

type DonationRequest struct {
	Amount      string          `json:"amount"`
	Recurring   bool            `json:"recurring"`
	Frequency   types.Frequency `json:"frequency"`
	Message     *string         `json:"message"`
	IsAnonymous bool            `json:"isAnonymous"`
	CardNumber  string          `json:"cardNumber"`
}

type DonationResult struct {
	Breakdown fees.Breakdown           `json:"breakdown"`
	Donation  *types.Donation          `json:"donation,omitempty"`
	Recurring *types.RecurringDonation `json:"recurringDonation,omitempty"`
}

// Donate gives to nonprofitID. A one-off gift is recorded immediately and
// credited to both running totals; a recurring gift only schedules its first
// charge. Payment is simulated and only the card's last four digits are kept.
func (s *Service) Donate(ctx context.Context, user *types.User, nonprofitID string, req DonationRequest) (*DonationResult, error) {
	breakdown := fees.SplitString(req.Amount)
	if breakdown.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: donation amount must be positive", ErrInvalidInput)
	}

	nonprofit, err := s.nonprofit(ctx, nonprofitID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	lastFour := cardLastFour(req.CardNumber)
	fields := logrus.Fields{"user_id": user.ID, "nonprofit_id": nonprofitID}

	if req.Recurring {
		frequency := req.Frequency
		if frequency == "" {
			frequency = types.FrequencyMonthly
		}
		if !frequency.Valid() {
			return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, req.Frequency)
		}

		recurring := &types.RecurringDonation{
			ID:               utils.NanoID(),
			DonorID:          user.ID,
			NonprofitID:      nonprofitID,
			AmountCents:      breakdown.AmountCents,
			Frequency:        frequency,
			NextDonationDate: frequency.Next(now),
			CardLastFour:     lastFour,
			Status:           types.RecurringStatusActive,
		}

		if err := s.stores.Recurring.Create(ctx, recurring); err != nil {
			return nil, s.actionFailed(err, "schedule recurring donation", fields)
		}

		return &DonationResult{Breakdown: breakdown, Recurring: recurring}, nil
	}

	donation := &types.Donation{
		ID:               utils.NanoID(),
		DonorID:          user.ID,
		NonprofitID:      nonprofitID,
		AmountCents:      breakdown.AmountCents,
		PlatformFeeCents: breakdown.PlatformFeeCents,
		NetAmountCents:   breakdown.NetCents,
		Category:         utils.Ptr(nonprofit.Category),
		Message:          req.Message,
		IsAnonymous:      req.IsAnonymous,
		PaymentMethod:    types.PaymentMethodCreditCard,
		CardLastFour:     lastFour,
		Status:           types.DonationStatusCompleted,
		TransactionID:    utils.PrefixedID(transactionPrefix, 16),
		CreatedAt:        now,
	}

	if err := s.stores.Donations.Record(ctx, donation); err != nil {
		return nil, s.actionFailed(err, "record donation", fields)
	}

	s.publish(ctx, events.SubjectDonationCreated, donation)
	s.storeReceipt(ctx, donation, nonprofit.Name)

	return &DonationResult{Breakdown: breakdown, Donation: donation}, nil
}

// storeReceipt is best effort; the donation already stands without it.
func (s *Service) storeReceipt(ctx context.Context, donation *types.Donation, nonprofitName string) {
	if s.receipts == nil {
		return
	}

	entry := s.logger.WithField("donation_id", donation.ID)

	key, err := s.receipts.SaveReceipt(ctx, donation, nonprofitName)
	if err != nil {
		entry.WithError(err).Warn("failed to store donation receipt")
		return
	}
	if key == "" {
		return
	}

	if err := s.stores.Donations.SetReceiptKey(ctx, donation.ID, key); err != nil {
		entry.WithError(err).Warn("failed to link donation receipt")
		return
	}

	donation.ReceiptKey = &key
}

// RecurringDonations lists the user's schedules, next charge first.
func (s *Service) RecurringDonations(ctx context.Context, user *types.User) ([]*types.RecurringDonation, error) {
	recurring, err := s.stores.Recurring.RecurringDonationsByDonor(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring donations: %w", err)
	}

	slices.SortStableFunc(recurring, func(a, b *types.RecurringDonation) int {
		return a.NextDonationDate.Compare(b.NextDonationDate)
	})

	return recurring, nil
}

// ChangeRecurringStatus pauses, resumes or cancels one of the user's
// recurring donations. Cancelled schedules cannot change again.
func (s *Service) ChangeRecurringStatus(ctx context.Context, user *types.User, recurringID string, status types.RecurringStatus) error {
	switch status {
	case types.RecurringStatusActive, types.RecurringStatusPaused, types.RecurringStatusCancelled:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	err := s.stores.Recurring.UpdateStatus(ctx, recurringID, user.ID, status)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrInvalidTransition), errors.Is(err, types.ErrNotFound):
		return err
	}

	return s.actionFailed(err, "change recurring status", logrus.Fields{
		"user_id":      user.ID,
		"recurring_id": recurringID,
		"status":       status,
	})
}

func cardLastFour(number string) *string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)

	if len(digits) < 4 {
		return nil
	}

	return utils.StringPtr(digits[len(digits)-4:])
}

func (s *Service) nonprofit(ctx context.Context, nonprofitID string) (*types.Nonprofit, error) {
	nonprofit, err := s.stores.Nonprofits.Nonprofit(ctx, nonprofitID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load nonprofit %s: %w", nonprofitID, err)
	}
	return nonprofit, nil
}
