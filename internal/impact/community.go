package impact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"karma/internal/events"
	"karma/internal/messaging"
	"karma/internal/utils"
	"karma/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type ReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

// SubmitReview records the user's review of a nonprofit. Each user reviews a
// nonprofit at most once; a second attempt fails like any other write.
func (s *Service) SubmitReview(ctx context.Context, user *types.User, nonprofitID string, req ReviewRequest) (*types.Review, error) {
	if req.Rating < types.MinRating || req.Rating > types.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, types.MinRating, types.MaxRating)
	}

	if _, err := s.nonprofit(ctx, nonprofitID); err != nil {
		return nil, err
	}

	review := &types.Review{
		ID:          utils.NanoID(),
		ReviewerID:  user.ID,
		NonprofitID: nonprofitID,
		Rating:      req.Rating,
		Comment:     trimmedOrNil(req.Comment),
	}

	if err := s.stores.Reviews.Create(ctx, review); err != nil {
		return nil, s.actionFailed(err, "submit review", logrus.Fields{"user_id": user.ID, "nonprofit_id": nonprofitID})
	}

	return review, nil
}

type ApplicationRequest struct {
	Message        *string  `json:"applicationMessage"`
	RelevantSkills []string `json:"relevantSkills"`
	Availability   *string  `json:"availability"`
	ContactPhone   *string  `json:"contactPhone"`
}

// Apply signs the user up for an active opportunity. The application starts
// out pending and takes one of the opportunity's spots straight away.
func (s *Service) Apply(ctx context.Context, user *types.User, opportunityID string, req ApplicationRequest) (*types.VolunteerApplication, error) {
	opportunity, err := s.stores.Opportunities.Opportunity(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load opportunity %s: %w", opportunityID, err)
	}

	if !opportunity.IsActive {
		return nil, fmt.Errorf("%w: opportunity is no longer active", ErrInvalidInput)
	}

	skills := req.RelevantSkills
	if skills == nil {
		skills = []string{}
	}

	application := &types.VolunteerApplication{
		ID:                 utils.NanoID(),
		VolunteerID:        user.ID,
		OpportunityID:      opportunity.ID,
		NonprofitID:        opportunity.NonprofitID,
		ApplicationMessage: trimmedOrNil(req.Message),
		RelevantSkills:     skills,
		Availability:       trimmedOrNil(req.Availability),
		ContactPhone:       trimmedOrNil(req.ContactPhone),
		Status:             types.ApplicationStatusPending,
	}

	if err := s.stores.Applications.Submit(ctx, application); err != nil {
		return nil, s.actionFailed(err, "submit application", logrus.Fields{"user_id": user.ID, "opportunity_id": opportunityID})
	}

	s.publish(ctx, events.SubjectApplicationSubmitted, application)

	return application, nil
}

// SendMessage writes to a nonprofit, addressed to its admin when it has one.
func (s *Service) SendMessage(ctx context.Context, user *types.User, nonprofitID, content string) (*types.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message is empty", ErrInvalidInput)
	}

	nonprofit, err := s.nonprofit(ctx, nonprofitID)
	if err != nil {
		return nil, err
	}

	message := &types.Message{
		ID:             utils.NanoID(),
		ConversationID: messaging.ConversationID(user.ID, nonprofitID),
		SenderID:       user.ID,
		RecipientID:    messaging.RecipientFor(nonprofit),
		NonprofitID:    nonprofitID,
		Content:        content,
		CreatedAt:      s.now(),
	}

	if err := s.stores.Messages.Create(ctx, message); err != nil {
		return nil, s.actionFailed(err, "send message", logrus.Fields{"user_id": user.ID, "nonprofit_id": nonprofitID})
	}

	s.publish(ctx, events.MessageSubject(nonprofitID), message)

	return message, nil
}

// Conversations groups the user's messages by nonprofit. startWith, when set,
// opens an empty conversation with that nonprofit.
func (s *Service) Conversations(ctx context.Context, user *types.User, startWith string) ([]*messaging.Conversation, error) {
	var (
		messages   []*types.Message
		nonprofits []*types.Nonprofit
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, s, g, "messages", &messages, func(ctx context.Context) ([]*types.Message, error) {
		return s.stores.Messages.MessagesForUser(ctx, user.ID)
	})
	fetch(gctx, s, g, "nonprofits", &nonprofits, s.stores.Nonprofits.Nonprofits)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return messaging.Group(user.ID, messages, nonprofits, startWith), nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
