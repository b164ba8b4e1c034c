package server

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyEmail  contextKey = "email"
	contextKeyUser   contextKey = "user"
)

var errUnauthorized = errors.New("unauthorized")

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAuth verifies the caller's access token and adds the subject and
// email to the context. The token comes from the Authorization header, or
// from the encrypted session cookie when there is no header.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken, err := s.accessToken(r)
		if err != nil {
			s.logger.WithError(err).Debug("no usable access token")
			s.writeError(w, r, errUnauthorized)
			return
		}

		set, err := s.jwks.Lookup(r.Context(), s.jwksURL)
		if err != nil {
			s.logger.WithError(err).Error("failed to fetch JWKS")
			s.writeError(w, r, errUnauthorized)
			return
		}

		token, err := jwt.Parse([]byte(accessToken), s.parseOptions(set)...)
		if err != nil {
			s.logger.WithError(err).Warn("failed to parse JWT")
			s.writeError(w, r, errUnauthorized)
			return
		}

		userID, ok := token.Subject()
		if !ok || userID == "" {
			s.logger.Error("no user ID in JWT subject claim")
			s.writeError(w, r, errUnauthorized)
			return
		}

		var email string
		if err := token.Get("email", &email); err != nil {
			s.logger.WithError(err).Debug("no email claim in JWT")
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, contextKeyUserID, userID)
		if email != "" {
			ctx = context.WithValue(ctx, contextKeyEmail, email)
		}

		s.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"email":   email,
		}).Debug("authenticated user")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) parseOptions(set jwk.Set) []jwt.ParseOption {
	options := []jwt.ParseOption{
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
		jwt.WithValidator(s.clientValidator()),
	}
	if s.config.CognitoIssuerURL != "" {
		options = append(options, jwt.WithIssuer(s.config.CognitoIssuerURL))
	}
	return options
}

// clientValidator accepts Cognito access tokens (client_id claim) and ID
// tokens (aud claim) issued to the configured app client. With no client
// configured any client is accepted.
func (s *Service) clientValidator() jwt.Validator {
	return jwt.ValidatorFunc(func(_ context.Context, token jwt.Token) error {
		clientID := s.config.CognitoClientID
		if clientID == "" {
			return nil
		}

		var claimed string
		if err := token.Get("client_id", &claimed); err == nil && claimed == clientID {
			return nil
		}

		audience, _ := token.Audience()
		if slices.Contains(audience, clientID) {
			return nil
		}

		return errors.New("token was not issued to this client")
	})
}

func (s *Service) accessToken(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", errors.New("malformed authorization header")
		}
		return strings.TrimSpace(token), nil
	}

	cookie, err := r.Cookie(s.config.CookieName)
	if err != nil {
		return "", err
	}

	var accessToken string
	if err := s.cookie.Decode(s.config.CookieName, cookie.Value, &accessToken); err != nil {
		return "", err
	}

	return accessToken, nil
}

// LoadUser resolves the authenticated subject to its profile, creating the
// profile on first sign in.
func (s *Service) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := s.userIDFromContext(ctx)
		if err != nil {
			s.writeError(w, r, errUnauthorized)
			return
		}
		email, _ := ctx.Value(contextKeyEmail).(string)

		user, err := s.impact.CurrentUser(ctx, userID, email)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, contextKeyUser, user)))
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}
