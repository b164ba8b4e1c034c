package impact

import (
	"context"
	"errors"
	"sync"
	"time"

	"karma/pkg/types"
)

var (
	errBackend   = errors.New("backend unavailable")
	errDuplicate = errors.New("duplicate key value violates unique constraint")
)

type fakeUsers struct {
	mu      sync.Mutex
	users   map[string]*types.User
	err     error
	updates []types.UserUpdate
}

func (f *fakeUsers) User(ctx context.Context, userID string) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) Create(ctx context.Context, user *types.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.users == nil {
		f.users = make(map[string]*types.User)
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) Update(ctx context.Context, userID string, update types.UserUpdate) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.updates = append(f.updates, update)

	u, ok := f.users[userID]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	updated := *u
	if update.FullName != nil {
		updated.FullName = update.FullName
	}
	if update.Location != nil {
		updated.Location = *update.Location
	}
	if update.PreferredCategories != nil {
		updated.PreferredCategories = update.PreferredCategories
	}
	if update.FavoriteNonprofits != nil {
		updated.FavoriteNonprofits = update.FavoriteNonprofits
	}
	if update.UserType != nil {
		updated.UserType = (*string)(update.UserType)
	}
	if update.NonprofitID != nil {
		updated.NonprofitID = update.NonprofitID
	}
	if update.ProfileCompleted != nil {
		updated.ProfileCompleted = *update.ProfileCompleted
	}
	f.users[userID] = &updated
	return &updated, nil
}

type fakeNonprofits struct {
	mu         sync.Mutex
	nonprofits []*types.Nonprofit
	err        error
	createErr  error
}

func (f *fakeNonprofits) Nonprofits(ctx context.Context) ([]*types.Nonprofit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.nonprofits, nil
}

func (f *fakeNonprofits) Nonprofit(ctx context.Context, nonprofitID string) (*types.Nonprofit, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, n := range f.nonprofits {
		if n.ID == nonprofitID {
			return n, nil
		}
	}
	return nil, types.ErrNotFound
}

func (f *fakeNonprofits) Create(ctx context.Context, nonprofit *types.Nonprofit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nonprofits = append(f.nonprofits, nonprofit)
	return nil
}

type fakeOpportunities struct {
	opportunities []*types.Opportunity
	err           error
}

func (f *fakeOpportunities) ActiveOpportunities(ctx context.Context) ([]*types.Opportunity, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Opportunity
	for _, o := range f.opportunities {
		if o.IsActive {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOpportunities) ActiveOpportunitiesByNonprofit(ctx context.Context, nonprofitID string) ([]*types.Opportunity, error) {
	active, err := f.ActiveOpportunities(ctx)
	if err != nil {
		return nil, err
	}
	var out []*types.Opportunity
	for _, o := range active {
		if o.NonprofitID == nonprofitID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOpportunities) Opportunity(ctx context.Context, opportunityID string) (*types.Opportunity, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, o := range f.opportunities {
		if o.ID == opportunityID {
			return o, nil
		}
	}
	return nil, types.ErrNotFound
}

type fakeDonations struct {
	mu          sync.Mutex
	donations   []*types.Donation
	err         error
	recordErr   error
	receiptKeys map[string]string
	users       *fakeUsers
	nonprofits  *fakeNonprofits
}

func (f *fakeDonations) DonationsByDonor(ctx context.Context, donorID string) ([]*types.Donation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Donation
	for _, d := range f.donations {
		if d.DonorID == donorID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDonations) CountDonations(ctx context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.donations), nil
}

func (f *fakeDonations) Record(ctx context.Context, donation *types.Donation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	f.donations = append(f.donations, donation)
	if f.users != nil {
		if u, ok := f.users.users[donation.DonorID]; ok {
			u.TotalDonatedCents += donation.AmountCents
		}
	}
	if f.nonprofits != nil {
		for _, n := range f.nonprofits.nonprofits {
			if n.ID == donation.NonprofitID {
				n.TotalDonationsReceivedCents += donation.NetAmountCents
			}
		}
	}
	return nil
}

func (f *fakeDonations) SetReceiptKey(ctx context.Context, donationID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.receiptKeys == nil {
		f.receiptKeys = make(map[string]string)
	}
	f.receiptKeys[donationID] = key
	return nil
}

type fakeReviews struct {
	mu      sync.Mutex
	reviews []*types.Review
	err     error
}

func (f *fakeReviews) Reviews(ctx context.Context) ([]*types.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reviews, nil
}

func (f *fakeReviews) filter(keep func(*types.Review) bool) ([]*types.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Review
	for _, r := range f.reviews {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviews) ReviewsByReviewer(ctx context.Context, reviewerID string) ([]*types.Review, error) {
	return f.filter(func(r *types.Review) bool { return r.ReviewerID == reviewerID })
}

func (f *fakeReviews) ReviewsByNonprofit(ctx context.Context, nonprofitID string) ([]*types.Review, error) {
	return f.filter(func(r *types.Review) bool { return r.NonprofitID == nonprofitID })
}

func (f *fakeReviews) Create(ctx context.Context, review *types.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.ReviewerID == review.ReviewerID && r.NonprofitID == review.NonprofitID {
			return errDuplicate
		}
	}
	review.CreatedAt = time.Now()
	f.reviews = append(f.reviews, review)
	return nil
}

type fakeRecurring struct {
	mu        sync.Mutex
	recurring []*types.RecurringDonation
	err       error
}

func (f *fakeRecurring) RecurringDonationsByDonor(ctx context.Context, donorID string) ([]*types.RecurringDonation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.RecurringDonation
	for _, r := range f.recurring {
		if r.DonorID == donorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecurring) Create(ctx context.Context, recurring *types.RecurringDonation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.recurring = append(f.recurring, recurring)
	return nil
}

func (f *fakeRecurring) UpdateStatus(ctx context.Context, recurringID, donorID string, status types.RecurringStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, r := range f.recurring {
		if r.ID == recurringID && r.DonorID == donorID {
			if !r.Status.CanTransitionTo(status) {
				return types.ErrInvalidTransition
			}
			r.Status = status
			return nil
		}
	}
	return types.ErrNotFound
}

type fakeApplications struct {
	applications  []*types.VolunteerApplication
	opportunities *fakeOpportunities
	err           error
}

func (f *fakeApplications) Submit(ctx context.Context, application *types.VolunteerApplication) error {
	if f.err != nil {
		return f.err
	}
	f.applications = append(f.applications, application)
	for _, o := range f.opportunities.opportunities {
		if o.ID == application.OpportunityID {
			o.VolunteersSignedUp++
		}
	}
	return nil
}

type fakeMessages struct {
	messages []*types.Message
	err      error
}

func (f *fakeMessages) MessagesForUser(ctx context.Context, userID string) ([]*types.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Message
	for _, m := range f.messages {
		if m.SenderID == userID || m.RecipientID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessages) Create(ctx context.Context, message *types.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message)
	return nil
}

type published struct {
	subject string
	payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
}

func (f *fakePublisher) Publish(ctx context.Context, subject string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, published{subject: subject, payload: payload})
	return nil
}

type fakeReceipts struct {
	err  error
	keys []string
}

func (f *fakeReceipts) SaveReceipt(ctx context.Context, donation *types.Donation, nonprofitName string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	key := "receipts/" + donation.DonorID + "/" + donation.ID + ".json"
	f.keys = append(f.keys, key)
	return key, nil
}

type fakeIdentity struct {
	names map[string]string
}

func (f *fakeIdentity) SyncName(ctx context.Context, userID, fullName string) error {
	if f.names == nil {
		f.names = make(map[string]string)
	}
	f.names[userID] = fullName
	return nil
}

// harness wires a Service to fresh fakes with a fixed clock.
type harness struct {
	svc           *Service
	users         *fakeUsers
	nonprofits    *fakeNonprofits
	opportunities *fakeOpportunities
	donations     *fakeDonations
	reviews       *fakeReviews
	recurring     *fakeRecurring
	applications  *fakeApplications
	messages      *fakeMessages
	events        *fakePublisher
	receipts      *fakeReceipts
	identity      *fakeIdentity
	now           time.Time
}
