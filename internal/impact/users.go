package impact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"karma/internal/utils"
	"karma/pkg/types"

	"github.com/sirupsen/logrus"
)

// CurrentUser loads the signed in user, creating their profile row the first
// time an identity is seen.
func (s *Service) CurrentUser(ctx context.Context, userID, email string) (*types.User, error) {
	user, err := s.stores.Users.User(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, types.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	user = &types.User{
		ID:                  userID,
		PreferredCategories: []string{},
		FavoriteNonprofits:  []string{},
	}
	if email = strings.TrimSpace(email); email != "" {
		user.Email = &email
	}

	if err := s.stores.Users.Create(ctx, user); err != nil {
		return nil, s.actionFailed(err, "create user", logrus.Fields{"user_id": userID})
	}

	return user, nil
}

// UpdateProfile applies the fields a user may edit directly. Role and
// nonprofit membership only change through onboarding.
func (s *Service) UpdateProfile(ctx context.Context, user *types.User, update types.UserUpdate) (*types.User, error) {
	update.UserType = nil
	update.NonprofitID = nil

	if err := validateCategories(update.PreferredCategories); err != nil {
		return nil, err
	}

	updated, err := s.stores.Users.Update(ctx, user.ID, update)
	if err != nil {
		return nil, s.actionFailed(err, "update profile", logrus.Fields{"user_id": user.ID})
	}

	if update.FullName != nil && utils.PtrString(user.FullName) != *update.FullName && s.identity != nil {
		if err := s.identity.SyncName(ctx, user.ID, *update.FullName); err != nil {
			s.logger.WithError(err).WithField("user_id", user.ID).Warn("failed to sync name to identity provider")
		}
	}

	return updated, nil
}

type VolunteerSetup struct {
	FullName            *string         `json:"fullName"`
	Phone               *string         `json:"phone"`
	Location            *types.Location `json:"location"`
	PreferredCategories []string        `json:"preferredCategories"`
}

func (s *Service) SetupVolunteer(ctx context.Context, user *types.User, setup VolunteerSetup) (*types.User, error) {
	if err := validateCategories(setup.PreferredCategories); err != nil {
		return nil, err
	}

	categories := setup.PreferredCategories
	if categories == nil {
		categories = []string{}
	}

	update := types.UserUpdate{
		FullName:            setup.FullName,
		Phone:               setup.Phone,
		Location:            setup.Location,
		PreferredCategories: categories,
		UserType:            utils.Ptr(types.UserTypeVolunteer),
		ProfileCompleted:    utils.Ptr(true),
	}

	updated, err := s.stores.Users.Update(ctx, user.ID, update)
	if err != nil {
		return nil, s.actionFailed(err, "setup volunteer", logrus.Fields{"user_id": user.ID})
	}

	return updated, nil
}

type NonprofitSetup struct {
	Name             string         `json:"name"`
	Category         types.Category `json:"category"`
	Description      string         `json:"description"`
	MissionStatement *string        `json:"missionStatement"`
	Website          *string        `json:"website"`
	ContactEmail     *string        `json:"contactEmail"`
	EIN              *string        `json:"ein"`
	Location         types.Location `json:"location"`
}

// SetupNonprofit registers the user's organisation and makes them its
// administrator.
func (s *Service) SetupNonprofit(ctx context.Context, user *types.User, setup NonprofitSetup) (*types.User, *types.Nonprofit, error) {
	name := strings.TrimSpace(setup.Name)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: nonprofit name is required", ErrInvalidInput)
	}
	if !setup.Category.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, setup.Category)
	}

	nonprofit := &types.Nonprofit{
		ID:               utils.NanoID(),
		Name:             name,
		Category:         setup.Category,
		Description:      strings.TrimSpace(setup.Description),
		MissionStatement: setup.MissionStatement,
		Website:          setup.Website,
		ContactEmail:     setup.ContactEmail,
		EIN:              setup.EIN,
		AdminUserID:      utils.StringPtr(user.ID),
		Location:         setup.Location,
	}

	if err := s.stores.Nonprofits.Create(ctx, nonprofit); err != nil {
		return nil, nil, s.actionFailed(err, "create nonprofit", logrus.Fields{"user_id": user.ID})
	}

	updated, err := s.stores.Users.Update(ctx, user.ID, types.UserUpdate{
		UserType:         utils.Ptr(types.UserTypeNonprofitAdmin),
		NonprofitID:      utils.StringPtr(nonprofit.ID),
		ProfileCompleted: utils.Ptr(true),
	})
	if err != nil {
		return nil, nil, s.actionFailed(err, "promote nonprofit admin", logrus.Fields{"user_id": user.ID, "nonprofit_id": nonprofit.ID})
	}

	return updated, nonprofit, nil
}

// ToggleFavorite adds or removes nonprofitID from the user's favourites and
// reports whether it is now a favourite.
func (s *Service) ToggleFavorite(ctx context.Context, user *types.User, nonprofitID string) (*types.User, bool, error) {
	if _, err := s.nonprofit(ctx, nonprofitID); err != nil {
		return nil, false, err
	}

	favorites := make([]string, 0, len(user.FavoriteNonprofits)+1)
	favorited := !user.IsFavorite(nonprofitID)
	for _, id := range user.FavoriteNonprofits {
		if id != nonprofitID {
			favorites = append(favorites, id)
		}
	}
	if favorited {
		favorites = append(favorites, nonprofitID)
	}

	updated, err := s.stores.Users.Update(ctx, user.ID, types.UserUpdate{FavoriteNonprofits: favorites})
	if err != nil {
		return nil, false, s.actionFailed(err, "toggle favorite", logrus.Fields{"user_id": user.ID, "nonprofit_id": nonprofitID})
	}

	return updated, favorited, nil
}

func validateCategories(categories []string) error {
	for _, c := range categories {
		if !types.Category(c).Valid() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, c)
		}
	}
	return nil
}
