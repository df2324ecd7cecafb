package match

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cofoundry/server/pkg/models"
)

// Score bounds. The floor and ceiling are deliberate: no pair should ever
// read as 0% or 100% compatible.
const (
	ScoreFloor   = 40
	ScoreCeiling = 98
	maxJitter    = 5
)

// Category point caps. Attainable is constant across pairs so normalized
// scores are comparable.
const (
	lookingForPoints    = 20
	sharedSkillsCap     = 10
	commit20Points      = 10
	fulltimePoints      = 10
	zeroSalaryPoints    = 5
	sharedValuePoints   = 5
	sharedValuesCap     = 15
	decisionStylePoints = 10
	logisticsPoints     = 15
)

// JitterFunc supplies the small random perturbation added to a normalized
// score as a ranking tie-breaker. Isolating it keeps the rest of the scorer
// a pure, testable computation.
type JitterFunc func() int

// Scorer computes ordered-pair compatibility scores.
type Scorer struct {
	jitter JitterFunc
}

// NewScorer builds a Scorer. A nil jitter uses a uniform 0..4 perturbation;
// tests inject a fixed or zero jitter instead.
func NewScorer(jitter JitterFunc) *Scorer {
	if jitter == nil {
		jitter = func() int { return rand.Intn(maxJitter) }
	}
	return &Scorer{jitter: jitter}
}

// Score returns how good a co-founder candidate is for requester, as an
// integer in [ScoreFloor, ScoreCeiling]. Scoring a profile against itself
// is invalid.
func (s *Scorer) Score(requester, candidate *models.Profile) (int, error) {
	if requester.ID == candidate.ID {
		return 0, fmt.Errorf("%w: cannot score a profile against itself", ErrInvalidInput)
	}

	earned, attainable := rawScore(requester, candidate)
	score := int(math.Round(100*float64(earned)/float64(attainable))) + s.jitter()

	if score < ScoreFloor {
		score = ScoreFloor
	}
	if score > ScoreCeiling {
		score = ScoreCeiling
	}
	return score, nil
}

// rawScore is the deterministic core: a weighted-category sum with each
// category independently capped, returned alongside the attainable maximum.
func rawScore(a, b *models.Profile) (earned, attainable int) {
	// Role/skill complementarity. What a is looking for against the role
	// inferred from b's primary skill; "Any" always matches, and a literal
	// primary-skill match counts too.
	lookingFor := strings.TrimSpace(a.LookingFor)
	roleMatch := lookingFor != "" &&
		(strings.EqualFold(lookingFor, "Any") ||
			strings.EqualFold(lookingFor, string(InferRole(b.PrimarySkill))) ||
			strings.EqualFold(lookingFor, b.PrimarySkill))
	if roleMatch {
		earned += lookingForPoints
	}
	attainable += lookingForPoints

	// Shared skills get a small bonus only: the design rewards
	// complementary, not duplicate, skill sets.
	shared := intersectFold(a.Skills, b.Skills)
	earned += min(sharedSkillsCap, 2*shared)
	attainable += sharedSkillsCap

	// Commitment alignment. Tri-state answers only align when both sides
	// actually answered.
	if eqBool(a.CanCommit20hrsWeek, b.CanCommit20hrsWeek) {
		earned += commit20Points
	}
	attainable += commit20Points
	if a.CanGoFulltime != "" && a.CanGoFulltime == b.CanGoFulltime {
		earned += fulltimePoints
	}
	attainable += fulltimePoints
	if eqBool(a.OkayWithZeroSalary, b.OkayWithZeroSalary) {
		earned += zeroSalaryPoints
	}
	attainable += zeroSalaryPoints

	// Values and working style. Core values are policy-capped at 3 entries
	// but the cap here tolerates longer lists.
	sharedValues := intersectFold(a.CoreValues, b.CoreValues)
	earned += min(sharedValuesCap, sharedValuePoints*sharedValues)
	attainable += sharedValuesCap
	if a.DecisionMakingStyle != "" && a.DecisionMakingStyle == b.DecisionMakingStyle {
		earned += decisionStylePoints
	}
	attainable += decisionStylePoints

	// Logistics: full credit for same city, else full credit when both
	// prefer fully remote, else nothing.
	switch {
	case a.City != "" && strings.EqualFold(a.City, b.City):
		earned += logisticsPoints
	case a.RemotePreference == models.RemoteFullyRemote && b.RemotePreference == models.RemoteFullyRemote:
		earned += logisticsPoints
	}
	attainable += logisticsPoints

	return earned, attainable
}

func eqBool(a, b *bool) bool {
	return a != nil && b != nil && *a == *b
}

// intersectFold counts case-insensitive overlap between two string sets.
func intersectFold(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		seen[strings.ToLower(strings.TrimSpace(s))] = true
	}
	n := 0
	counted := make(map[string]bool, len(b))
	for _, s := range b {
		k := strings.ToLower(strings.TrimSpace(s))
		if seen[k] && !counted[k] {
			counted[k] = true
			n++
		}
	}
	return n
}
