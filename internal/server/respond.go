package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"karma/internal/impact"
	"karma/pkg/types"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

// writeError maps domain errors to status codes. Anything unrecognised is
// logged and reported as a bare 500.
func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}
	s.writeJSON(w, status, errorResponse{Error: message})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, impact.ErrActionFailed):
		return http.StatusConflict, impact.ErrActionFailed.Error()
	case errors.Is(err, types.ErrInvalidTransition):
		return http.StatusConflict, types.ErrInvalidTransition.Error()
	case errors.Is(err, impact.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrUserNotFound):
		return http.StatusNotFound, "not found"
	}
	return http.StatusInternalServerError, "internal server error"
}

func decodeJSON(r *http.Request, dst any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", impact.ErrInvalidInput)
	}
	return nil
}

func invalidQuery(err error) error {
	return fmt.Errorf("%w: %v", impact.ErrInvalidInput, err)
}
