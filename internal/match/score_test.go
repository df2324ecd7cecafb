package match_test

import (
	"errors"
	"testing"

	"github.com/cofoundry/server/internal/match"
	"github.com/cofoundry/server/pkg/models"
)

func boolPtr(b bool) *bool { return &b }

// noJitter makes the scorer fully deterministic.
func noJitter() int { return 0 }

func baseProfile(id int64) models.Profile {
	return models.Profile{
		ID:                 id,
		Name:               "Founder",
		Email:              "founder@example.com",
		City:               "Bangalore",
		Country:            "India",
		Stage:              "Ideation",
		LookingFor:         "Technical",
		PrimarySkill:       "Marketing",
		Skills:             []string{"Growth", "Content"},
		CoreValues:         []string{"Transparency", "Speed"},
		CanCommit20hrsWeek: boolPtr(true),
		CanGoFulltime:      "Within 3 months",
		OkayWithZeroSalary: boolPtr(true),
		RemotePreference:   models.RemoteSameCity,
	}
}

func TestScore_SelfMatchRejected(t *testing.T) {
	s := match.NewScorer(noJitter)
	p := baseProfile(1)
	if _, err := s.Score(&p, &p); !errors.Is(err, match.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self match, got %v", err)
	}
}

func TestScore_Bounds(t *testing.T) {
	s := match.NewScorer(nil) // real jitter

	empty := models.Profile{ID: 1, Email: "a@a.com"}
	full := baseProfile(2)
	perfect := baseProfile(3)
	perfect.PrimarySkill = "Engineering"
	perfect.LookingFor = "Business"

	pairs := [][2]*models.Profile{
		{&empty, &full},
		{&full, &empty},
		{&full, &perfect},
		{&perfect, &full},
	}
	for _, pair := range pairs {
		for range 20 {
			score, err := s.Score(pair[0], pair[1])
			if err != nil {
				t.Fatalf("Score error: %v", err)
			}
			if score < match.ScoreFloor || score > match.ScoreCeiling {
				t.Fatalf("score %d outside [%d, %d]", score, match.ScoreFloor, match.ScoreCeiling)
			}
		}
	}
}

func TestScore_MonotonicInSharedValues(t *testing.T) {
	s := match.NewScorer(noJitter)
	a := baseProfile(1)
	a.CoreValues = []string{"Transparency", "Speed", "Ownership"}

	prev := -1
	values := []string{"Transparency", "Speed", "Ownership"}
	for n := 0; n <= len(values); n++ {
		b := baseProfile(2)
		b.CoreValues = values[:n]
		score, err := s.Score(&a, &b)
		if err != nil {
			t.Fatalf("Score error: %v", err)
		}
		if score < prev {
			t.Fatalf("score decreased from %d to %d when adding shared value #%d", prev, score, n)
		}
		prev = score
	}
}

func TestScore_ComplementaryBeatsMismatch(t *testing.T) {
	s := match.NewScorer(noJitter)

	a := models.Profile{
		ID:                 1,
		LookingFor:         "Technical",
		City:               "Bangalore",
		CanCommit20hrsWeek: boolPtr(true),
	}
	b := models.Profile{
		ID:                 2,
		PrimarySkill:       "Engineering",
		City:               "Bangalore",
		CanCommit20hrsWeek: boolPtr(true),
	}
	c := models.Profile{
		ID:                 3,
		PrimarySkill:       "Sales",
		City:               "Delhi",
		CanCommit20hrsWeek: boolPtr(false),
	}

	scoreB, err := s.Score(&a, &b)
	if err != nil {
		t.Fatalf("Score(a, b): %v", err)
	}
	scoreC, err := s.Score(&a, &c)
	if err != nil {
		t.Fatalf("Score(a, c): %v", err)
	}
	if scoreB <= scoreC {
		t.Fatalf("expected complementary candidate to score higher: got B=%d C=%d", scoreB, scoreC)
	}
}

// alignedPair returns two profiles with enough baseline alignment that the
// scores under test land above the floor, so category differences stay
// visible after clamping.
func alignedPair() (models.Profile, models.Profile) {
	a := models.Profile{
		ID:                  1,
		City:                "Pune",
		DecisionMakingStyle: "Consensus",
		CanGoFulltime:       "Immediately",
	}
	b := a
	b.ID = 2
	return a, b
}

func TestScore_LookingForAnyMatchesEverything(t *testing.T) {
	s := match.NewScorer(noJitter)

	for _, skill := range []string{"Engineering", "Sales", "Design", "Astrology"} {
		a, b := alignedPair()
		a.LookingFor = "Any"
		b.PrimarySkill = skill
		withAny, err := s.Score(&a, &b)
		if err != nil {
			t.Fatalf("Score error: %v", err)
		}

		none := a
		none.LookingFor = ""
		without, err := s.Score(&none, &b)
		if err != nil {
			t.Fatalf("Score error: %v", err)
		}
		if withAny <= without {
			t.Fatalf("skill %q: expected Any to earn role points (any=%d none=%d)", skill, withAny, without)
		}
	}
}

func TestScore_UnansweredCommitmentDoesNotAlign(t *testing.T) {
	s := match.NewScorer(noJitter)

	// neither side answered the commitment questions
	a, b := alignedPair()
	unanswered, err := s.Score(&a, &b)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}

	a2, b2 := alignedPair()
	a2.CanCommit20hrsWeek = boolPtr(true)
	a2.OkayWithZeroSalary = boolPtr(true)
	b2.CanCommit20hrsWeek = boolPtr(true)
	b2.OkayWithZeroSalary = boolPtr(true)
	answered, err := s.Score(&a2, &b2)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}

	if answered <= unanswered {
		t.Fatalf("expected answered-and-aligned to beat both-unset: answered=%d unanswered=%d", answered, unanswered)
	}
}

func TestScore_SharedSkillsBonusIsCapped(t *testing.T) {
	s := match.NewScorer(noJitter)

	many := []string{"Go", "Python", "Rust", "SQL", "React", "Kubernetes", "Terraform", "AWS"}

	scoreWith := func(n int) int {
		a, b := alignedPair()
		a.Skills = many[:n]
		b.Skills = many[:n]
		score, err := s.Score(&a, &b)
		if err != nil {
			t.Fatalf("Score error: %v", err)
		}
		return score
	}

	four := scoreWith(4)
	five := scoreWith(5)
	capped := scoreWith(8)

	if five <= four {
		t.Fatalf("overlap below the cap must still score: 4 shared=%d, 5 shared=%d", four, five)
	}
	// five shared skills already hits the cap; more overlap adds nothing
	if capped != five {
		t.Fatalf("expected shared-skill bonus to cap: 8 shared=%d, 5 shared=%d", capped, five)
	}
}

func TestScore_LogisticsRemoteFallback(t *testing.T) {
	s := match.NewScorer(noJitter)

	a, b := alignedPair()
	a.City = "Pune"
	a.RemotePreference = models.RemoteFullyRemote
	b.City = "Berlin"
	b.RemotePreference = models.RemoteFullyRemote
	remote, err := s.Score(&a, &b)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}

	c := b
	c.ID = 3
	c.RemotePreference = models.RemoteSameCity
	noCredit, err := s.Score(&a, &c)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}

	if remote <= noCredit {
		t.Fatalf("expected both-remote to earn logistics credit: remote=%d none=%d", remote, noCredit)
	}
}

func TestInferRole(t *testing.T) {
	cases := []struct {
		skill string
		want  match.Role
	}{
		{"Engineering", match.RoleTechnical},
		{"AI/ML", match.RoleTechnical},
		{"Full Stack Development", match.RoleTechnical},
		{"backend", match.RoleTechnical},
		{"Marketing", match.RoleBusiness},
		{"Sales", match.RoleBusiness},
		{"Finance", match.RoleBusiness},
		{"Product Management", match.RoleProduct},
		{"UX Research", match.RoleProduct},
		{"Design", match.RoleProduct},
		{"Carpentry", match.RoleOther},
		{"", match.RoleOther},
	}
	for _, tc := range cases {
		if got := match.InferRole(tc.skill); got != tc.want {
			t.Errorf("InferRole(%q) = %q, want %q", tc.skill, got, tc.want)
		}
	}
}

func TestScore_FixedJitterShiftsScore(t *testing.T) {
	a := baseProfile(1)
	b := baseProfile(2)

	base, err := match.NewScorer(noJitter).Score(&a, &b)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	shifted, err := match.NewScorer(func() int { return 3 }).Score(&a, &b)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}

	if base < match.ScoreCeiling-3 && shifted != base+3 {
		t.Fatalf("expected jitter to shift score by 3: base=%d shifted=%d", base, shifted)
	}
}
