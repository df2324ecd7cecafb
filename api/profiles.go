package api

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/cofoundry/server/internal/match"
	"github.com/cofoundry/server/pkg/models"
	"github.com/cofoundry/server/pkg/repository"
	"github.com/gorilla/mux"
	"github.com/qri-io/jsonschema"
)

//go:embed profile_schema.json
var profileSchemaJSON []byte

type ProfilesHandler struct {
	profileRepo repository.ProfileRepo
	schema      *jsonschema.Schema
}

// NewProfilesHandler compiles the embedded update schema once at startup.
func NewProfilesHandler(pr repository.ProfileRepo) (*ProfilesHandler, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(profileSchemaJSON, rs); err != nil {
		return nil, fmt.Errorf("parse profile schema: %w", err)
	}
	return &ProfilesHandler{profileRepo: pr, schema: rs}, nil
}

func profileID(r *http.Request) (int64, error) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid profile id %q", idStr)
	}
	return id, nil
}

func (h *ProfilesHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := profileID(r)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": err.Error()}, http.StatusBadRequest)
		return
	}

	p, err := h.profileRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "failed to load profile"}, http.StatusServiceUnavailable)
		return
	}
	if p == nil {
		writeJSON(w, map[string]any{"success": false, "error": "User not found"}, http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"user":    publicProfile(*p),
		"tiers": map[string]bool{
			"tier_1": p.Tier1Complete,
			"tier_2": p.Tier2Complete,
			"tier_3": p.Tier3Complete,
			"tier_4": p.Tier4Complete,
		},
	}, http.StatusOK)
}

// profileUpdate carries a partial (auto-save friendly) update. Every field
// is a pointer so an absent key leaves the stored value alone; the wizard
// sends whatever subset the founder just touched.
type profileUpdate struct {
	Name                    *string   `json:"name"`
	ProfessionalStatus      *string   `json:"professional_status"`
	City                    *string   `json:"city"`
	Country                 *string   `json:"country"`
	LinkedinURL             *string   `json:"linkedin_url"`
	Skills                  *[]string `json:"skills"`
	Bio                     *string   `json:"bio"`
	Stage                   *string   `json:"stage"`
	CanCommit20hrsWeek      *bool     `json:"can_commit_20hrs_week"`
	CanGoFulltime           *string   `json:"can_go_fulltime"`
	OkayWithZeroSalary      *bool     `json:"okay_with_zero_salary"`
	LookingFor              *string   `json:"looking_for"`
	RemotePreference        *string   `json:"remote_preference"`
	PrimarySkill            *string   `json:"primary_skill"`
	IndustryInterests       *[]string `json:"industry_interests"`
	CoreValues              *[]string `json:"core_values"`
	DecisionMakingStyle     *string   `json:"decision_making_style"`
	TrialProjectWilling     *bool     `json:"trial_project_willing"`
	WhyTenCofounder         *string   `json:"why_10_10_cofounder"`
	IntroVideoURL           *string   `json:"intro_video_url"`
	WillingToSignAgreements *bool     `json:"willing_to_sign_agreements"`
}

func (u *profileUpdate) apply(p *models.Profile) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&p.Name, u.Name)
	setStr(&p.ProfessionalStatus, u.ProfessionalStatus)
	setStr(&p.City, u.City)
	setStr(&p.Country, u.Country)
	setStr(&p.LinkedinURL, u.LinkedinURL)
	setStr(&p.Bio, u.Bio)
	setStr(&p.Stage, u.Stage)
	setStr(&p.CanGoFulltime, u.CanGoFulltime)
	setStr(&p.LookingFor, u.LookingFor)
	setStr(&p.RemotePreference, u.RemotePreference)
	setStr(&p.PrimarySkill, u.PrimarySkill)
	setStr(&p.DecisionMakingStyle, u.DecisionMakingStyle)
	setStr(&p.WhyTenCofounder, u.WhyTenCofounder)
	setStr(&p.IntroVideoURL, u.IntroVideoURL)

	if u.Skills != nil {
		p.Skills = *u.Skills
	}
	if u.IndustryInterests != nil {
		p.IndustryInterests = *u.IndustryInterests
	}
	if u.CoreValues != nil {
		p.CoreValues = *u.CoreValues
	}
	if u.CanCommit20hrsWeek != nil {
		p.CanCommit20hrsWeek = u.CanCommit20hrsWeek
	}
	if u.OkayWithZeroSalary != nil {
		p.OkayWithZeroSalary = u.OkayWithZeroSalary
	}
	if u.TrialProjectWilling != nil {
		p.TrialProjectWilling = u.TrialProjectWilling
	}
	if u.WillingToSignAgreements != nil {
		p.WillingToSignAgreements = u.WillingToSignAgreements
	}
}

// UpdateProfile accepts a partial profile update, validates it against the
// embedded JSON schema (which also rejects immutable fields like id and
// email via additionalProperties), applies it and recomputes the tier flags
// and completion percentage.
func (h *ProfilesHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := profileID(r)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": err.Error()}, http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "failed to read body"}, http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	keyErrs, err := h.schema.ValidateBytes(ctx, body)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "invalid json"}, http.StatusBadRequest)
		return
	}
	if len(keyErrs) > 0 {
		writeJSON(w, map[string]any{"success": false, "error": keyErrs[0].Error()}, http.StatusBadRequest)
		return
	}

	var update profileUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "invalid json"}, http.StatusBadRequest)
		return
	}

	p, err := h.profileRepo.GetByID(ctx, id)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "failed to load profile"}, http.StatusServiceUnavailable)
		return
	}
	if p == nil {
		writeJSON(w, map[string]any{"success": false, "error": "User not found"}, http.StatusNotFound)
		return
	}

	update.apply(p)
	match.DeriveTiers(p)

	if err := h.profileRepo.UpdateProfile(ctx, p); err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "failed to save profile"}, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, map[string]any{
		"success":                       true,
		"user":                          publicProfile(*p),
		"profile_completion_percentage": p.CompletionPercentage,
	}, http.StatusOK)
}
