package match

import (
	"strings"

	"github.com/cofoundry/server/pkg/models"
)

// MatchingTier is the completion tier a founder must reach before the
// matching surface unlocks.
const MatchingTier = 3

// GateResult classifies a profile's readiness to use matching.
type GateResult struct {
	Eligible     bool
	Percentage   int
	RequiredTier int
}

// Gate derives eligibility and the current completion percentage for a
// profile. Pure read; it never mutates the profile.
func Gate(p *models.Profile) GateResult {
	return GateResult{
		Eligible:     p.Tier3Complete,
		Percentage:   Completion(p),
		RequiredTier: MatchingTier,
	}
}

// Field weights per tier. They sum to 100 so Completion maps directly to a
// percentage: tier 1 is the account itself (10), tier 2 fields carry the
// band up to 30, tier 3 up to 80, tier 4 up to 100. Filling a field only
// ever adds its weight, so the percentage never regresses on a partial
// update that leaves earlier fields intact.
const accountWeight = 10

// Completion recomputes the profile completion percentage from field
// presence. Idempotent: the same field values always yield the same value.
func Completion(p *models.Profile) int {
	pct := 0
	if p.Email != "" {
		pct += accountWeight
	}

	type field struct {
		set    bool
		weight int
	}

	fields := []field{
		// tier 2 (20 points)
		{p.ProfessionalStatus != "", 4},
		{p.City != "", 3},
		{p.LinkedinURL != "", 3},
		{len(p.Skills) > 0, 4},
		{p.Bio != "", 3},
		{p.Stage != "", 3},
		// tier 3 (50 points)
		{p.CanCommit20hrsWeek != nil, 6},
		{p.CanGoFulltime != "", 6},
		{p.OkayWithZeroSalary != nil, 5},
		{p.LookingFor != "", 6},
		{p.RemotePreference != "", 5},
		{p.PrimarySkill != "", 6},
		{len(p.IndustryInterests) > 0, 6},
		{len(p.CoreValues) > 0, 5},
		{p.DecisionMakingStyle != "", 5},
		// tier 4 (20 points)
		{p.TrialProjectWilling != nil, 5},
		{strings.TrimSpace(p.WhyTenCofounder) != "", 5},
		{p.IntroVideoURL != "", 5},
		{p.WillingToSignAgreements != nil, 5},
	}
	for _, f := range fields {
		if f.set {
			pct += f.weight
		}
	}

	return pct
}

// DeriveTiers recomputes the four tier flags and the completion percentage
// from field presence and writes them back onto the profile. Each tier
// requires the one below it, so tier N complete always implies tier N-1.
// Only the wizard's required fields gate a tier; optional fields (bio,
// intro video) count toward the percentage without blocking the tier.
func DeriveTiers(p *models.Profile) {
	p.Tier1Complete = p.Email != ""
	p.Tier2Complete = p.Tier1Complete &&
		p.ProfessionalStatus != "" &&
		p.City != "" &&
		p.LinkedinURL != "" &&
		p.Stage != ""
	p.Tier3Complete = p.Tier2Complete &&
		p.CanCommit20hrsWeek != nil &&
		p.OkayWithZeroSalary != nil &&
		p.LookingFor != "" &&
		p.RemotePreference != "" &&
		p.PrimarySkill != ""
	p.Tier4Complete = p.Tier3Complete &&
		p.TrialProjectWilling != nil &&
		strings.TrimSpace(p.WhyTenCofounder) != "" &&
		p.WillingToSignAgreements != nil
	p.CompletionPercentage = Completion(p)
}
