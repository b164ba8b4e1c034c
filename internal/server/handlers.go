package server

import (
	"net/http"

	"karma/internal/impact"
	"karma/internal/listing"
	"karma/pkg/types"
)

// Browse queries take an optional lat/lng that overrides the user's saved
// location for distance sorting.
type nonprofitBrowseQuery struct {
	listing.NonprofitQuery
	Lat *float64 `form:"lat"`
	Lng *float64 `form:"lng"`
}

type opportunityBrowseQuery struct {
	listing.OpportunityQuery
	Lat *float64 `form:"lat"`
	Lng *float64 `form:"lng"`
}

func origin(lat, lng *float64) types.Location {
	return types.Location{Latitude: lat, Longitude: lng}
}

type conversationsQuery struct {
	Start string `form:"start"`
}

type statusRequest struct {
	Status types.RecurringStatus `json:"status"`
}

type messageRequest struct {
	Content string `json:"content"`
}

type favoriteResponse struct {
	Favorited bool        `json:"favorited"`
	User      *types.User `json:"user"`
}

type nonprofitSetupResponse struct {
	User      *types.User      `json:"user"`
	Nonprofit *types.Nonprofit `json:"nonprofit"`
}

// withUser adapts a handler that needs the signed in user.
func (s *Service) withUser(w http.ResponseWriter, r *http.Request, fn func(*types.User)) {
	user, err := s.userFromContext(r.Context())
	if err != nil {
		s.writeError(w, r, errUnauthorized)
		return
	}
	fn(user)
}

func (s *Service) respond(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, status, v)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) handleGetMe(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		s.writeJSON(w, http.StatusOK, user)
	})
}

func (s *Service) handlePatchMe(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		var update types.UserUpdate
		if err := decodeJSON(r, &update); err != nil {
			s.writeError(w, r, err)
			return
		}

		updated, err := s.impact.UpdateProfile(r.Context(), user, update)
		s.respond(w, r, http.StatusOK, updated, err)
	})
}

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		dashboard, err := s.impact.Dashboard(r.Context(), user)
		s.respond(w, r, http.StatusOK, dashboard, err)
	})
}

func (s *Service) handleAchievements(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		view, err := s.impact.Achievements(r.Context(), user)
		s.respond(w, r, http.StatusOK, view, err)
	})
}

func (s *Service) handleAlerts(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		alerts, err := s.impact.Alerts(r.Context(), user)
		s.respond(w, r, http.StatusOK, alerts, err)
	})
}

func (s *Service) handleNonprofitRecommendations(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		recs, err := s.impact.NonprofitRecommendations(r.Context(), user)
		s.respond(w, r, http.StatusOK, recs, err)
	})
}

func (s *Service) handleOpportunityRecommendations(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		recs, err := s.impact.OpportunityRecommendations(r.Context(), user)
		s.respond(w, r, http.StatusOK, recs, err)
	})
}

func (s *Service) handleBrowseNonprofits(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		var q nonprofitBrowseQuery
		if err := decoder.Decode(&q, r.URL.Query()); err != nil {
			s.writeError(w, r, invalidQuery(err))
			return
		}

		entries, err := s.impact.BrowseNonprofits(r.Context(), user, origin(q.Lat, q.Lng), q.NonprofitQuery)
		s.respond(w, r, http.StatusOK, entries, err)
	})
}

func (s *Service) handleNonprofitDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.impact.NonprofitDetail(r.Context(), r.PathValue("id"))
	s.respond(w, r, http.StatusOK, detail, err)
}

func (s *Service) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		updated, favorited, err := s.impact.ToggleFavorite(r.Context(), user, r.PathValue("id"))
		s.respond(w, r, http.StatusOK, favoriteResponse{Favorited: favorited, User: updated}, err)
	})
}

func (s *Service) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		var req impact.ReviewRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		review, err := s.impact.SubmitReview(r.Context(), user, r.PathValue("id"), req)
		s.respond(w, r, http.StatusCreated, review, err)
	})
}

func (s *Service) handleDonate(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		var req impact.DonationRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		result, err := s.impact.Donate(r.Context(), user, r.PathValue("id"), req)
		s.respond(w, r, http.StatusCreated, result, err)
	})
}

func (s *Service) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		var req messageRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		message, err := s.impact.SendMessage(r.Context(), user, r.PathValue("id"), req.Content)
		s.respond(w, r, http.StatusCreated, message, err)
	})
}

func (s *Service) handleBrowseOpportunities(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		var q opportunityBrowseQuery
		if err := decoder.Decode(&q, r.URL.Query()); err != nil {
			s.writeError(w, r, invalidQuery(err))
			return
		}

		entries, err := s.impact.BrowseOpportunities(r.Context(), user, origin(q.Lat, q.Lng), q.OpportunityQuery)
		s.respond(w, r, http.StatusOK, entries, err)
	})
}

func (s *Service) handleApply(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		var req impact.ApplicationRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		application, err := s.impact.Apply(r.Context(), user, r.PathValue("id"), req)
		s.respond(w, r, http.StatusCreated, application, err)
	})
}

func (s *Service) handleRecurringDonations(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		recurring, err := s.impact.RecurringDonations(r.Context(), user)
		s.respond(w, r, http.StatusOK, recurring, err)
	})
}

func (s *Service) handleRecurringStatus(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		var req statusRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		err := s.impact.ChangeRecurringStatus(r.Context(), user, r.PathValue("id"), req.Status)
		s.respond(w, r, http.StatusOK, req, err)
	})
}

func (s *Service) handleConversations(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		var q conversationsQuery
		if err := decoder.Decode(&q, r.URL.Query()); err != nil {
			s.writeError(w, r, invalidQuery(err))
			return
		}

		conversations, err := s.impact.Conversations(r.Context(), user, q.Start)
		s.respond(w, r, http.StatusOK, conversations, err)
	})
}

func (s *Service) handleSetupVolunteer(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		var req impact.VolunteerSetup
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		updated, err := s.impact.SetupVolunteer(r.Context(), user, req)
		s.respond(w, r, http.StatusOK, updated, err)
	})
}

func (s *Service) handleSetupNonprofit(w http.ResponseWriter, r *http.Request) {
	s.withUser(w, r, func(user *types.User) {
		var req impact.NonprofitSetup
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		updated, nonprofit, err := s.impact.SetupNonprofit(r.Context(), user, req)
		s.respond(w, r, http.StatusCreated, nonprofitSetupResponse{User: updated, Nonprofit: nonprofit}, err)
	})
}
