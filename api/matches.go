package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cofoundry/server/internal/config"
	"github.com/cofoundry/server/internal/match"
	"github.com/gorilla/mux"
)

type MatchesHandler struct {
	ranker   *match.Ranker
	ledger   *match.Ledger
	matching config.MatchingConfig
}

// NewMatchesHandler wires the matching engine behind the HTTP surface.
// matching supplies the operator-configured defaults for the min_score and
// limit query params; zero values fall back to the engine defaults.
func NewMatchesHandler(ranker *match.Ranker, ledger *match.Ledger, matching config.MatchingConfig) *MatchesHandler {
	if matching.MinScore < 0 {
		matching.MinScore = 0
	}
	if matching.ResultLimit <= 0 {
		matching.ResultLimit = match.DefaultResultLimit
	}
	return &MatchesHandler{ranker: ranker, ledger: ledger, matching: matching}
}

// parseIntParam is deliberately permissive: a missing or malformed numeric
// filter falls back to its default instead of failing the request.
func parseIntParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func parseUserID(r *http.Request, param string) (int64, bool) {
	if v := r.URL.Query().Get(param); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err == nil && id > 0 {
			return id, true
		}
		return 0, false
	}
	// fall back to the authenticated user
	if id, ok := r.Context().Value(CtxUserID).(int64); ok && id > 0 {
		return id, true
	}
	return 0, false
}

// GetMatches returns the ranked candidate list for a user. An incomplete
// profile yields the tier-gate payload, not an empty list.
func (h *MatchesHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r, "user_id")
	if !ok {
		writeJSON(w, map[string]any{"success": false, "error": "user_id is required"}, http.StatusBadRequest)
		return
	}

	minScore := parseIntParam(r, "min_score", h.matching.MinScore)
	limit := parseIntParam(r, "limit", h.matching.ResultLimit)

	matches, err := h.ranker.Rank(r.Context(), userID, minScore, limit)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	for i := range matches {
		matches[i].Profile = publicProfile(matches[i].Profile)
	}

	writeJSON(w, map[string]any{
		"success": true,
		"matches": matches,
		"total":   len(matches),
	}, http.StatusOK)
}

type createRequestPayload struct {
	RequesterID int64 `json:"requester_id"`
	RecipientID int64 `json:"recipient_id"`
}

// CreateRequest sends a connection request. A duplicate ordered pair comes
// back as success:false "already sent" rather than an error.
func (h *MatchesHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "invalid request"}, http.StatusBadRequest)
		return
	}
	if req.RequesterID <= 0 {
		if id, ok := r.Context().Value(CtxUserID).(int64); ok {
			req.RequesterID = id
		}
	}
	if req.RequesterID <= 0 || req.RecipientID <= 0 {
		writeJSON(w, map[string]any{"success": false, "error": "requester_id and recipient_id are required"}, http.StatusBadRequest)
		return
	}

	created, err := h.ledger.CreateRequest(r.Context(), req.RequesterID, req.RecipientID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, map[string]any{"success": true, "request": created}, http.StatusCreated)
}

// ListRequests returns the incoming (pending only) and sent (all statuses)
// request lists for a user.
func (h *MatchesHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r, "user_id")
	if !ok {
		writeJSON(w, map[string]any{"success": false, "error": "user_id is required"}, http.StatusBadRequest)
		return
	}

	lists, err := h.ledger.ListRequests(r.Context(), userID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"success":  true,
		"requests": lists.Incoming,
		"sent":     lists.Outgoing,
	}, http.StatusOK)
}

type respondPayload struct {
	Decision string `json:"decision"`
}

// Respond accepts or rejects a pending request. Responding to an
// already-settled request is a no-op success returning the settled state.
func (h *MatchesHandler) Respond(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	requestID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || requestID <= 0 {
		writeJSON(w, map[string]any{"success": false, "error": "invalid request id"}, http.StatusBadRequest)
		return
	}

	var req respondPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "invalid request"}, http.StatusBadRequest)
		return
	}

	updated, err := h.ledger.Respond(r.Context(), requestID, req.Decision)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, map[string]any{"success": true, "request": updated}, http.StatusOK)
}
