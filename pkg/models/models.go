package models

// ConnectionRequest status values. Accepted and rejected are terminal.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Remote preference values as captured by the profile wizard.
const (
	RemoteSameCity    = "Same City"
	RemoteSameCountry = "Same Country"
	RemoteFullyRemote = "Fully Remote"
)

// Profile is one founder account plus everything the wizard has collected so
// far. Optional wizard fields stay zero/nil until the founder fills them in:
// tri-state answers are pointers so "unset" is distinct from "answered no",
// and set-valued fields are nil until provided.
type Profile struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`

	// Tier 2: basics
	ProfessionalStatus string   `json:"professional_status,omitempty" db:"professional_status"`
	City               string   `json:"city,omitempty" db:"city"`
	Country            string   `json:"country,omitempty" db:"country"`
	LinkedinURL        string   `json:"linkedin_url,omitempty" db:"linkedin_url"`
	Skills             []string `json:"skills,omitempty" db:"skills"`
	Bio                string   `json:"bio,omitempty" db:"bio"`
	Stage              string   `json:"stage,omitempty" db:"stage"`

	// Tier 3: matching profile
	CanCommit20hrsWeek  *bool    `json:"can_commit_20hrs_week,omitempty" db:"can_commit_20hrs_week"`
	CanGoFulltime       string   `json:"can_go_fulltime,omitempty" db:"can_go_fulltime"`
	OkayWithZeroSalary  *bool    `json:"okay_with_zero_salary,omitempty" db:"okay_with_zero_salary"`
	LookingFor          string   `json:"looking_for,omitempty" db:"looking_for"`
	RemotePreference    string   `json:"remote_preference,omitempty" db:"remote_preference"`
	PrimarySkill        string   `json:"primary_skill,omitempty" db:"primary_skill"`
	IndustryInterests   []string `json:"industry_interests,omitempty" db:"industry_interests"`
	CoreValues          []string `json:"core_values,omitempty" db:"core_values"`
	DecisionMakingStyle string   `json:"decision_making_style,omitempty" db:"decision_making_style"`

	// Tier 4: premium signals
	TrialProjectWilling     *bool  `json:"trial_project_willing,omitempty" db:"trial_project_willing"`
	WhyTenCofounder         string `json:"why_10_10_cofounder,omitempty" db:"why_10_10_cofounder"`
	IntroVideoURL           string `json:"intro_video_url,omitempty" db:"intro_video_url"`
	WillingToSignAgreements *bool  `json:"willing_to_sign_agreements,omitempty" db:"willing_to_sign_agreements"`

	Points               int64 `json:"points" db:"points"`
	Tier1Complete        bool  `json:"tier_1_complete" db:"tier_1_complete"`
	Tier2Complete        bool  `json:"tier_2_complete" db:"tier_2_complete"`
	Tier3Complete        bool  `json:"tier_3_complete" db:"tier_3_complete"`
	Tier4Complete        bool  `json:"tier_4_complete" db:"tier_4_complete"`
	CompletionPercentage int   `json:"profile_completion_percentage" db:"completion_percentage"`

	Created int64 `json:"created" db:"created"`
	Updated int64 `json:"updated" db:"updated"`
}

// ConnectionRequest is a directed edge from requester to recipient. The
// ordered pair (requester_id, recipient_id) is unique across all statuses;
// the record is created pending and transitions at most once.
type ConnectionRequest struct {
	ID          int64  `json:"id" db:"id"`
	RequesterID int64  `json:"requester_id" db:"requester_id"`
	RecipientID int64  `json:"recipient_id" db:"recipient_id"`
	Status      string `json:"status" db:"status"`
	Created     int64  `json:"created" db:"created"`
}

// Terminal reports whether the request has reached a final state.
func (c *ConnectionRequest) Terminal() bool {
	return c.Status == StatusAccepted || c.Status == StatusRejected
}

type Message struct {
	ID           int64  `json:"id" db:"id"`
	ConnectionID int64  `json:"connection_id" db:"connection_id"`
	SenderID     int64  `json:"sender_id" db:"sender_id"`
	Content      string `json:"content" db:"content"`
	Created      int64  `json:"created" db:"created"`
}

type Resource struct {
	ID       int64  `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Category string `json:"category,omitempty" db:"category"`
	URL      string `json:"url,omitempty" db:"url"`
	Points   int64  `json:"points" db:"points"`
	Created  int64  `json:"created" db:"created"`
}
