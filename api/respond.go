package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/cofoundry/server/internal/match"
	"github.com/cofoundry/server/pkg/models"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeEngineError maps the engine's error taxonomy onto HTTP responses.
// Ineligible and Conflict are expected outcomes the frontend handles
// gracefully, so they ship as success:false payloads on a 200 rather than
// as hard errors.
func writeEngineError(w http.ResponseWriter, err error) {
	var ineligible *match.IneligibleError
	switch {
	case errors.As(err, &ineligible):
		writeJSON(w, map[string]any{
			"success":            false,
			"error":              "Complete your profile to unlock co-founder matching",
			"tier_required":      ineligible.RequiredTier,
			"current_completion": ineligible.Percentage,
		}, http.StatusOK)
	case errors.Is(err, match.ErrConflict):
		writeJSON(w, map[string]any{"success": false, "error": "Connection request already sent"}, http.StatusOK)
	case errors.Is(err, match.ErrNotFound):
		writeJSON(w, map[string]any{"success": false, "error": "not found"}, http.StatusNotFound)
	case errors.Is(err, match.ErrInvalidInput):
		writeJSON(w, map[string]any{"success": false, "error": err.Error()}, http.StatusBadRequest)
	default:
		logger.Error("store failure", slog.Any("err", err))
		writeJSON(w, map[string]any{"success": false, "error": "temporarily unavailable, retry"}, http.StatusServiceUnavailable)
	}
}

// publicProfile strips credentials before a profile leaves the API.
func publicProfile(p models.Profile) models.Profile {
	p.PasswordHash = ""
	return p
}
