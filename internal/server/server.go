package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"karma/internal/impact"
	"karma/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

// KeySetProvider resolves the JSON Web Key Set that access tokens are
// verified against. *jwk.Cache satisfies it.
type KeySetProvider interface {
	Lookup(ctx context.Context, u string) (jwk.Set, error)
}

type Service struct {
	logger *logrus.Logger
	config *types.Config
	impact *impact.Service

	cookie *securecookie.SecureCookie

	jwks    KeySetProvider
	jwksURL string

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	impactService *impact.Service,
	jwks KeySetProvider,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cookie hash key: %w", err)
	}
	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cookie block key: %w", err)
	}
	if len(blockKey) == 0 {
		blockKey = nil
	}

	cookie := securecookie.New(hashKey, blockKey)
	cookie.MaxAge(config.SessionMaxAgeSec)

	s := &Service{
		logger: logger,
		config: config,
		impact: impactService,
		cookie: cookie,

		jwks:    jwks,
		jwksURL: jwksURL,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)
	// A trailing slash never matches a flow route, so the redirect wraps the mux.
	s.server.Handler = s.StripTrailingSlash(mux)

	return s, nil
}

func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.LoggingMiddleware)

	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, types.ErrNotFound)
	})

	r.HandleFunc("/api/health", s.handleHealth, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.Use(s.LoadUser)

		r.HandleFunc("/api/me", s.handleGetMe, http.MethodGet)
		r.HandleFunc("/api/me", s.handlePatchMe, http.MethodPatch)
		r.HandleFunc("/api/dashboard", s.handleDashboard, http.MethodGet)
		r.HandleFunc("/api/achievements", s.handleAchievements, http.MethodGet)
		r.HandleFunc("/api/alerts", s.handleAlerts, http.MethodGet)

		r.HandleFunc("/api/recommendations/nonprofits", s.handleNonprofitRecommendations, http.MethodGet)
		r.HandleFunc("/api/recommendations/opportunities", s.handleOpportunityRecommendations, http.MethodGet)

		r.HandleFunc("/api/nonprofits", s.handleBrowseNonprofits, http.MethodGet)
		r.HandleFunc("/api/nonprofits/:id", s.handleNonprofitDetail, http.MethodGet)
		r.HandleFunc("/api/nonprofits/:id/favorite", s.handleToggleFavorite, http.MethodPost)
		r.HandleFunc("/api/nonprofits/:id/reviews", s.handleSubmitReview, http.MethodPost)
		r.HandleFunc("/api/nonprofits/:id/donations", s.handleDonate, http.MethodPost)
		r.HandleFunc("/api/nonprofits/:id/messages", s.handleSendMessage, http.MethodPost)

		r.HandleFunc("/api/opportunities", s.handleBrowseOpportunities, http.MethodGet)
		r.HandleFunc("/api/opportunities/:id/applications", s.handleApply, http.MethodPost)

		r.HandleFunc("/api/recurring-donations", s.handleRecurringDonations, http.MethodGet)
		r.HandleFunc("/api/recurring-donations/:id/status", s.handleRecurringStatus, http.MethodPost)

		r.HandleFunc("/api/conversations", s.handleConversations, http.MethodGet)

		r.HandleFunc("/api/onboarding/volunteer", s.handleSetupVolunteer, http.MethodPost)
		r.HandleFunc("/api/onboarding/nonprofit", s.handleSetupNonprofit, http.MethodPost)
	})
}

func (s *Service) userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID, nil
}

func (s *Service) userFromContext(ctx context.Context) (*types.User, error) {
	user, ok := ctx.Value(contextKeyUser).(*types.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("user not found in context")
	}
	return user, nil
}
