package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/cofoundry/server/internal/match"
	"github.com/cofoundry/server/pkg/models"
	"github.com/cofoundry/server/pkg/repository"
)

type ConnectionsHandler struct {
	ledger         *match.Ledger
	connectionRepo repository.ConnectionRepo
	messageRepo    repository.MessageRepo
}

func NewConnectionsHandler(ledger *match.Ledger, cr repository.ConnectionRepo, mr repository.MessageRepo) *ConnectionsHandler {
	return &ConnectionsHandler{ledger: ledger, connectionRepo: cr, messageRepo: mr}
}

// ListConnections enumerates a user's accepted partners, deduplicated by
// partner id. Consumed by the messaging UI to list chat-eligible partners.
func (h *ConnectionsHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r, "user_id")
	if !ok {
		writeJSON(w, map[string]any{"success": false, "error": "user_id is required"}, http.StatusBadRequest)
		return
	}

	conns, err := h.ledger.ListConnections(r.Context(), userID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	for i := range conns {
		conns[i].Partner = publicProfile(conns[i].Partner)
	}

	writeJSON(w, map[string]any{"success": true, "connections": conns}, http.StatusOK)
}

// chatConnection loads a connection and verifies it is accepted; messaging
// only exists between accepted partners.
func (h *ConnectionsHandler) chatConnection(r *http.Request, connectionID int64) (*models.ConnectionRequest, string) {
	conn, err := h.connectionRepo.GetRequest(r.Context(), connectionID)
	if err != nil {
		return nil, "failed to load connection"
	}
	if conn == nil || conn.Status != models.StatusAccepted {
		return nil, "connection not found"
	}
	return conn, ""
}

func (h *ConnectionsHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	connStr := r.URL.Query().Get("connection_id")
	connectionID, err := strconv.ParseInt(connStr, 10, 64)
	if err != nil || connectionID <= 0 {
		writeJSON(w, map[string]any{"success": false, "error": "connection_id is required"}, http.StatusBadRequest)
		return
	}

	if _, errMsg := h.chatConnection(r, connectionID); errMsg != "" {
		writeJSON(w, map[string]any{"success": false, "error": errMsg}, http.StatusNotFound)
		return
	}

	msgs, err := h.messageRepo.ListByConnection(r.Context(), connectionID)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "failed to fetch messages"}, http.StatusServiceUnavailable)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	writeJSON(w, map[string]any{"success": true, "messages": msgs}, http.StatusOK)
}

type sendMessagePayload struct {
	ConnectionID int64  `json:"connection_id"`
	SenderID     int64  `json:"sender_id"`
	Content      string `json:"content"`
}

func (h *ConnectionsHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessagePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "invalid request"}, http.StatusBadRequest)
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.ConnectionID <= 0 || req.SenderID <= 0 || req.Content == "" {
		writeJSON(w, map[string]any{"success": false, "error": "connection_id, sender_id and content are required"}, http.StatusBadRequest)
		return
	}

	conn, errMsg := h.chatConnection(r, req.ConnectionID)
	if errMsg != "" {
		writeJSON(w, map[string]any{"success": false, "error": errMsg}, http.StatusNotFound)
		return
	}
	if req.SenderID != conn.RequesterID && req.SenderID != conn.RecipientID {
		writeJSON(w, map[string]any{"success": false, "error": "sender is not part of this connection"}, http.StatusForbidden)
		return
	}

	msg := &models.Message{ConnectionID: req.ConnectionID, SenderID: req.SenderID, Content: req.Content}
	id, err := h.messageRepo.CreateMessage(r.Context(), msg)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "failed to send message"}, http.StatusServiceUnavailable)
		return
	}
	msg.ID = id

	writeJSON(w, map[string]any{"success": true, "message": msg}, http.StatusCreated)
}
