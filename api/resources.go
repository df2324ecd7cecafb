package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cofoundry/server/pkg/models"
	"github.com/cofoundry/server/pkg/repository"
	"github.com/gorilla/mux"
)

type ResourcesHandler struct {
	resourceRepo repository.ResourceRepo
	profileRepo  repository.ProfileRepo
}

func NewResourcesHandler(rr repository.ResourceRepo, pr repository.ProfileRepo) *ResourcesHandler {
	return &ResourcesHandler{resourceRepo: rr, profileRepo: pr}
}

func (h *ResourcesHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.resourceRepo.ListResources(r.Context())
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "failed to fetch resources"}, http.StatusServiceUnavailable)
		return
	}
	if resources == nil {
		resources = []models.Resource{}
	}

	writeJSON(w, map[string]any{"success": true, "resources": resources}, http.StatusOK)
}

type completeResourcePayload struct {
	UserID int64 `json:"user_id"`
}

// CompleteResource records a completion and awards the resource's points
// exactly once; repeat completions succeed without a second award.
func (h *ResourcesHandler) CompleteResource(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	resourceID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || resourceID <= 0 {
		writeJSON(w, map[string]any{"success": false, "error": "invalid resource id"}, http.StatusBadRequest)
		return
	}

	var req completeResourcePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "invalid request"}, http.StatusBadRequest)
		return
	}
	if req.UserID <= 0 {
		if id, ok := r.Context().Value(CtxUserID).(int64); ok {
			req.UserID = id
		}
	}
	if req.UserID <= 0 {
		writeJSON(w, map[string]any{"success": false, "error": "user_id is required"}, http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	resource, err := h.resourceRepo.GetResource(ctx, resourceID)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "failed to load resource"}, http.StatusServiceUnavailable)
		return
	}
	if resource == nil {
		writeJSON(w, map[string]any{"success": false, "error": "resource not found"}, http.StatusNotFound)
		return
	}

	profile, err := h.profileRepo.GetByID(ctx, req.UserID)
	if err != nil || profile == nil {
		writeJSON(w, map[string]any{"success": false, "error": "User not found"}, http.StatusNotFound)
		return
	}

	first, err := h.resourceRepo.MarkCompleted(ctx, req.UserID, resourceID)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "failed to complete resource"}, http.StatusServiceUnavailable)
		return
	}

	total := profile.Points
	awarded := int64(0)
	if first {
		awarded = resource.Points
		total, err = h.profileRepo.AddPoints(ctx, req.UserID, awarded)
		if err != nil {
			writeJSON(w, map[string]any{"success": false, "error": "failed to award points"}, http.StatusServiceUnavailable)
			return
		}
	}

	writeJSON(w, map[string]any{"success": true, "points": total, "awarded": awarded}, http.StatusOK)
}
