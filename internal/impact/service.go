// Package impact is the application layer of Karma: it loads what each
// feature needs from the stores, hands snapshots to the pure scoring and
// listing packages, and performs writes with their side effects.
package impact

import (
	"context"
	"errors"
	"time"

	"karma/internal/events"
	"karma/internal/recommend"
	"karma/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrActionFailed is the only error a failed write surfaces to callers;
	// the cause is logged.
	ErrActionFailed = errors.New("action failed")
	ErrInvalidInput = errors.New("invalid input")
)

type UserStore interface {
	User(ctx context.Context, userID string) (*types.User, error)
	Create(ctx context.Context, user *types.User) error
	Update(ctx context.Context, userID string, update types.UserUpdate) (*types.User, error)
}

type NonprofitStore interface {
	Nonprofits(ctx context.Context) ([]*types.Nonprofit, error)
	Nonprofit(ctx context.Context, nonprofitID string) (*types.Nonprofit, error)
	Create(ctx context.Context, nonprofit *types.Nonprofit) error
}

type OpportunityStore interface {
	ActiveOpportunities(ctx context.Context) ([]*types.Opportunity, error)
	ActiveOpportunitiesByNonprofit(ctx context.Context, nonprofitID string) ([]*types.Opportunity, error)
	Opportunity(ctx context.Context, opportunityID string) (*types.Opportunity, error)
}

type DonationStore interface {
	DonationsByDonor(ctx context.Context, donorID string) ([]*types.Donation, error)
	CountDonations(ctx context.Context) (int, error)
	Record(ctx context.Context, donation *types.Donation) error
	SetReceiptKey(ctx context.Context, donationID, key string) error
}

type ReviewStore interface {
	Reviews(ctx context.Context) ([]*types.Review, error)
	ReviewsByReviewer(ctx context.Context, reviewerID string) ([]*types.Review, error)
	ReviewsByNonprofit(ctx context.Context, nonprofitID string) ([]*types.Review, error)
	Create(ctx context.Context, review *types.Review) error
}

type RecurringDonationStore interface {
	RecurringDonationsByDonor(ctx context.Context, donorID string) ([]*types.RecurringDonation, error)
	Create(ctx context.Context, recurring *types.RecurringDonation) error
	UpdateStatus(ctx context.Context, recurringID, donorID string, status types.RecurringStatus) error
}

type ApplicationStore interface {
	Submit(ctx context.Context, application *types.VolunteerApplication) error
}

type MessageStore interface {
	MessagesForUser(ctx context.Context, userID string) ([]*types.Message, error)
	Create(ctx context.Context, message *types.Message) error
}

type ReceiptSaver interface {
	SaveReceipt(ctx context.Context, donation *types.Donation, nonprofitName string) (string, error)
}

type NameSyncer interface {
	SyncName(ctx context.Context, userID, fullName string) error
}

type Stores struct {
	Users         UserStore
	Nonprofits    NonprofitStore
	Opportunities OpportunityStore
	Donations     DonationStore
	Reviews       ReviewStore
	Recurring     RecurringDonationStore
	Applications  ApplicationStore
	Messages      MessageStore
}

type Service struct {
	logger   logrus.FieldLogger
	stores   Stores
	events   events.Publisher
	receipts ReceiptSaver
	identity NameSyncer
	now      func() time.Time
	limit    int
}

type Option func(*Service)

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

func WithReceipts(r ReceiptSaver) Option {
	return func(s *Service) { s.receipts = r }
}

func WithIdentity(i NameSyncer) Option {
	return func(s *Service) { s.identity = i }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRecommendationLimit caps recommendation lists. Values below one keep
// the default.
func WithRecommendationLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

func New(logger logrus.FieldLogger, stores Stores, opts ...Option) *Service {
	s := &Service{
		logger: logger,
		stores: stores,
		events: events.Discard{},
		now:    time.Now,
		limit:  recommend.DefaultLimit,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// fetch runs fn on g. A failure is logged and leaves dst empty so the
// feature can still render with whatever else loaded.
func fetch[T any](ctx context.Context, s *Service, g *errgroup.Group, source string, dst *T, fn func(context.Context) (T, error)) {
	g.Go(func() error {
		v, err := fn(ctx)
		if err != nil {
			s.logger.WithError(err).WithField("source", source).Warn("fetch failed, continuing with empty input")
			var zero T
			v = zero
		}
		*dst = v
		return nil
	})
}

// actionFailed logs the cause of a failed write and hides it behind
// ErrActionFailed.
func (s *Service) actionFailed(err error, action string, fields logrus.Fields) error {
	s.logger.WithError(err).WithFields(fields).WithField("action", action).Error("action failed")
	return ErrActionFailed
}

func (s *Service) publish(ctx context.Context, subject string, payload any) {
	if err := s.events.Publish(ctx, subject, payload); err != nil {
		s.logger.WithError(err).WithField("subject", subject).Warn("failed to publish event")
	}
}
