package server

import (
	"context"
	"errors"
	"sync"

	"karma/internal/impact"
	"karma/pkg/types"
)

// memDB backs the in-memory stores the HTTP tests run against.
type memDB struct {
	mu            sync.Mutex
	users         map[string]*types.User
	nonprofits    map[string]*types.Nonprofit
	opportunities map[string]*types.Opportunity
	donations     []*types.Donation
	reviews       []*types.Review
	recurring     map[string]*types.RecurringDonation
}

func newMemDB() *memDB {
	return &memDB{
		users:         map[string]*types.User{},
		nonprofits:    map[string]*types.Nonprofit{},
		opportunities: map[string]*types.Opportunity{},
		recurring:     map[string]*types.RecurringDonation{},
	}
}

func (db *memDB) stores() impact.Stores {
	return impact.Stores{
		Users:         memUsers{db},
		Nonprofits:    memNonprofits{db},
		Opportunities: memOpportunities{db},
		Donations:     memDonations{db},
		Reviews:       memReviews{db},
		Recurring:     memRecurring{db},
	}
}

type memUsers struct{ db *memDB }

func (m memUsers) User(_ context.Context, userID string) (*types.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	user, ok := m.db.users[userID]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	return user, nil
}

func (m memUsers) Create(_ context.Context, user *types.User) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.users[user.ID] = user
	return nil
}

func (m memUsers) Update(_ context.Context, userID string, update types.UserUpdate) (*types.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	user, ok := m.db.users[userID]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	if update.FullName != nil {
		user.FullName = update.FullName
	}
	return user, nil
}

type memNonprofits struct{ db *memDB }

func (m memNonprofits) Nonprofits(context.Context) ([]*types.Nonprofit, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := make([]*types.Nonprofit, 0, len(m.db.nonprofits))
	for _, n := range m.db.nonprofits {
		out = append(out, n)
	}
	return out, nil
}

func (m memNonprofits) Nonprofit(_ context.Context, nonprofitID string) (*types.Nonprofit, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	n, ok := m.db.nonprofits[nonprofitID]
	if !ok {
		return nil, types.ErrNotFound
	}
	return n, nil
}

func (m memNonprofits) Create(_ context.Context, nonprofit *types.Nonprofit) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.nonprofits[nonprofit.ID] = nonprofit
	return nil
}

type memOpportunities struct{ db *memDB }

func (m memOpportunities) ActiveOpportunities(ctx context.Context) ([]*types.Opportunity, error) {
	return m.ActiveOpportunitiesByNonprofit(ctx, "")
}

func (m memOpportunities) ActiveOpportunitiesByNonprofit(_ context.Context, nonprofitID string) ([]*types.Opportunity, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []*types.Opportunity{}
	for _, o := range m.db.opportunities {
		if o.IsActive && (nonprofitID == "" || o.NonprofitID == nonprofitID) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m memOpportunities) Opportunity(_ context.Context, opportunityID string) (*types.Opportunity, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	o, ok := m.db.opportunities[opportunityID]
	if !ok {
		return nil, types.ErrNotFound
	}
	return o, nil
}

type memDonations struct{ db *memDB }

func (m memDonations) DonationsByDonor(_ context.Context, donorID string) ([]*types.Donation, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []*types.Donation{}
	for _, d := range m.db.donations {
		if d.DonorID == donorID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m memDonations) CountDonations(context.Context) (int, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return len(m.db.donations), nil
}

func (m memDonations) Record(_ context.Context, donation *types.Donation) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.donations = append(m.db.donations, donation)
	if user, ok := m.db.users[donation.DonorID]; ok {
		user.TotalDonatedCents += donation.AmountCents
	}
	if nonprofit, ok := m.db.nonprofits[donation.NonprofitID]; ok {
		nonprofit.TotalDonationsReceivedCents += donation.NetAmountCents
	}
	return nil
}

func (m memDonations) SetReceiptKey(context.Context, string, string) error {
	return nil
}

type memReviews struct{ db *memDB }

func (m memReviews) Reviews(context.Context) ([]*types.Review, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return append([]*types.Review{}, m.db.reviews...), nil
}

func (m memReviews) ReviewsByReviewer(_ context.Context, reviewerID string) ([]*types.Review, error) {
	return m.filter(func(r *types.Review) bool { return r.ReviewerID == reviewerID }), nil
}

func (m memReviews) ReviewsByNonprofit(_ context.Context, nonprofitID string) ([]*types.Review, error) {
	return m.filter(func(r *types.Review) bool { return r.NonprofitID == nonprofitID }), nil
}

func (m memReviews) filter(keep func(*types.Review) bool) []*types.Review {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []*types.Review{}
	for _, r := range m.db.reviews {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

var errDuplicateReview = errors.New("duplicate key value violates unique constraint")

func (m memReviews) Create(_ context.Context, review *types.Review) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, r := range m.db.reviews {
		if r.ReviewerID == review.ReviewerID && r.NonprofitID == review.NonprofitID {
			return errDuplicateReview
		}
	}
	m.db.reviews = append(m.db.reviews, review)
	return nil
}

type memRecurring struct{ db *memDB }

func (m memRecurring) RecurringDonationsByDonor(_ context.Context, donorID string) ([]*types.RecurringDonation, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []*types.RecurringDonation{}
	for _, r := range m.db.recurring {
		if r.DonorID == donorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m memRecurring) Create(_ context.Context, recurring *types.RecurringDonation) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.recurring[recurring.ID] = recurring
	return nil
}

func (m memRecurring) UpdateStatus(_ context.Context, recurringID, donorID string, status types.RecurringStatus) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	r, ok := m.db.recurring[recurringID]
	if !ok || r.DonorID != donorID {
		return types.ErrNotFound
	}
	if !r.Status.CanTransitionTo(status) {
		return types.ErrInvalidTransition
	}
	r.Status = status
	return nil
}
