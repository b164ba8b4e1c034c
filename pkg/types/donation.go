package types

import "time"

type Donation struct {
	ID               string    `db:"id" json:"id"`
	DonorID          string    `db:"donor_id" json:"donorId"`
	NonprofitID      string    `db:"nonprofit_id" json:"nonprofitId"`
	AmountCents      int64     `db:"amount_cents" json:"amountCents"`
	PlatformFeeCents int64     `db:"platform_fee_cents" json:"platformFeeCents"`
	NetAmountCents   int64     `db:"net_amount_cents" json:"netAmountCents"`
	Category         *Category `db:"category" json:"category,omitempty"`
	Message          *string   `db:"message" json:"message,omitempty"`
	IsAnonymous      bool      `db:"is_anonymous" json:"isAnonymous"`
	PaymentMethod    string    `db:"payment_method" json:"paymentMethod"`
	CardLastFour     *string   `db:"card_last_four" json:"cardLastFour,omitempty"`
	Status           string    `db:"status" json:"status"`
	TransactionID    string    `db:"transaction_id" json:"transactionId"`
	ReceiptKey       *string   `db:"receipt_key" json:"receiptKey,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

func (d *Donation) Amount() float64 {
	return float64(d.AmountCents) / 100
}

const (
	DonationStatusCompleted = "completed"
	PaymentMethodCreditCard = "credit_card"
)

type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	return f == FrequencyWeekly || f == FrequencyMonthly
}

// Next returns the date of the donation following one made at from.
func (f Frequency) Next(from time.Time) time.Time {
	if f == FrequencyWeekly {
		return from.AddDate(0, 0, 7)
	}
	return from.AddDate(0, 1, 0)
}

type RecurringStatus string

const (
	RecurringStatusActive    RecurringStatus = "active"
	RecurringStatusPaused    RecurringStatus = "paused"
	RecurringStatusCancelled RecurringStatus = "cancelled"
)

var recurringTransitions = map[RecurringStatus][]RecurringStatus{
	RecurringStatusActive: {RecurringStatusPaused, RecurringStatusCancelled},
	RecurringStatusPaused: {RecurringStatusActive, RecurringStatusCancelled},
}

// CanTransitionTo reports whether a recurring donation may move from s to
// next. Cancelled is terminal.
func (s RecurringStatus) CanTransitionTo(next RecurringStatus) bool {
	for _, allowed := range recurringTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Sources lists the statuses from which s can be reached.
func (s RecurringStatus) Sources() []RecurringStatus {
	sources := make([]RecurringStatus, 0, 2)
	for from, targets := range recurringTransitions {
		for _, to := range targets {
			if to == s {
				sources = append(sources, from)
			}
		}
	}
	return sources
}

type RecurringDonation struct {
	ID               string          `db:"id" json:"id"`
	DonorID          string          `db:"donor_id" json:"donorId"`
	NonprofitID      string          `db:"nonprofit_id" json:"nonprofitId"`
	AmountCents      int64           `db:"amount_cents" json:"amountCents"`
	Frequency        Frequency       `db:"frequency" json:"frequency"`
	NextDonationDate time.Time       `db:"next_donation_date" json:"nextDonationDate"`
	CardLastFour     *string         `db:"card_last_four" json:"cardLastFour,omitempty"`
	Status           RecurringStatus `db:"status" json:"status"`
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updatedAt"`
}
