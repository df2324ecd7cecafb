package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"log/slog"

	"github.com/cofoundry/server/internal/copilot"
	"github.com/cofoundry/server/pkg/repository"
)

// ChatClient is the model backend the copilot handler talks to.
type ChatClient interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

type AIHandler struct {
	chat        ChatClient
	profileRepo repository.ProfileRepo
}

func NewAIHandler(chat ChatClient, pr repository.ProfileRepo) *AIHandler {
	return &AIHandler{chat: chat, profileRepo: pr}
}

type chatPayload struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// Chat proxies a founder question to the model, folding in profile context
// when the user is known. Model failures surface as 503 so the frontend
// can show a retry state.
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "invalid request"}, http.StatusBadRequest)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeJSON(w, map[string]any{"success": false, "error": "message is required"}, http.StatusBadRequest)
		return
	}
	if req.UserID <= 0 {
		if id, ok := r.Context().Value(CtxUserID).(int64); ok {
			req.UserID = id
		}
	}

	ctx := r.Context()

	profile, err := h.profileRepo.GetByID(ctx, req.UserID)
	if err != nil {
		// context is a nice-to-have; answer without it
		logger.Warn("copilot: profile lookup failed", slog.Any("err", err))
	}

	prompt, err := copilot.BuildPrompt(profile, req.Message)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "failed to build prompt"}, http.StatusInternalServerError)
		return
	}

	answer, err := h.chat.Ask(ctx, prompt)
	if err != nil {
		logger.Error("copilot: ask failed", slog.Any("err", err))
		writeJSON(w, map[string]any{"success": false, "error": "copilot unavailable, try again shortly"}, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, map[string]any{"success": true, "reply": answer}, http.StatusOK)
}
