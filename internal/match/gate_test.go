package match_test

import (
	"testing"

	"github.com/cofoundry/server/internal/match"
	"github.com/cofoundry/server/pkg/models"
)

func tier3Profile() models.Profile {
	return models.Profile{
		Email:              "founder@example.com",
		ProfessionalStatus: "Working full-time",
		City:               "Bangalore",
		LinkedinURL:        "https://linkedin.com/in/founder",
		Stage:              "Ideation",
		CanCommit20hrsWeek: boolPtr(true),
		OkayWithZeroSalary: boolPtr(false),
		LookingFor:         "Technical",
		RemotePreference:   models.RemoteSameCountry,
		PrimarySkill:       "Marketing",
	}
}

func TestCompletion_EmptyAndFull(t *testing.T) {
	empty := &models.Profile{}
	if got := match.Completion(empty); got != 0 {
		t.Fatalf("Completion(empty) = %d, want 0", got)
	}

	full := tier3Profile()
	full.Skills = []string{"Growth"}
	full.Bio = "Second-time founder"
	full.CanGoFulltime = "Immediately"
	full.IndustryInterests = []string{"Fintech"}
	full.CoreValues = []string{"Transparency"}
	full.DecisionMakingStyle = "Data-driven"
	full.TrialProjectWilling = boolPtr(true)
	full.WhyTenCofounder = "Looking for a committed partner"
	full.IntroVideoURL = "https://example.com/intro.mp4"
	full.WillingToSignAgreements = boolPtr(true)
	if got := match.Completion(&full); got != 100 {
		t.Fatalf("Completion(full) = %d, want 100", got)
	}
}

func TestCompletion_FalseAnswerStillCounts(t *testing.T) {
	a := models.Profile{CanCommit20hrsWeek: boolPtr(true)}
	b := models.Profile{CanCommit20hrsWeek: boolPtr(false)}
	if match.Completion(&a) != match.Completion(&b) {
		t.Fatalf("a false answer should count the same as a true one")
	}
	unset := models.Profile{}
	if match.Completion(&b) <= match.Completion(&unset) {
		t.Fatalf("an answered question should count more than an unanswered one")
	}
}

func TestCompletion_NeverRegressesOnAddedFields(t *testing.T) {
	p := models.Profile{}
	prev := match.Completion(&p)

	steps := []func(*models.Profile){
		func(p *models.Profile) { p.Email = "a@b.com" },
		func(p *models.Profile) { p.ProfessionalStatus = "Student" },
		func(p *models.Profile) { p.City = "Pune" },
		func(p *models.Profile) { p.Skills = []string{"Go"} },
		func(p *models.Profile) { p.CanCommit20hrsWeek = boolPtr(false) },
		func(p *models.Profile) { p.LookingFor = "Business" },
		func(p *models.Profile) { p.WhyTenCofounder = "serious about this" },
	}
	for i, step := range steps {
		step(&p)
		got := match.Completion(&p)
		if got <= prev {
			t.Fatalf("step %d: completion did not increase (%d -> %d)", i, prev, got)
		}
		prev = got
	}
}

func TestDeriveTiers_Ordering(t *testing.T) {
	p := tier3Profile()
	match.DeriveTiers(&p)
	if !p.Tier1Complete || !p.Tier2Complete || !p.Tier3Complete {
		t.Fatalf("expected tiers 1-3 complete, got %v/%v/%v", p.Tier1Complete, p.Tier2Complete, p.Tier3Complete)
	}
	if p.Tier4Complete {
		t.Fatalf("tier 4 should not be complete without its fields")
	}

	// knocking out a tier-2 field must cascade
	p.City = ""
	match.DeriveTiers(&p)
	if p.Tier2Complete || p.Tier3Complete {
		t.Fatalf("missing city should break tier 2 and everything above")
	}
	if !p.Tier1Complete {
		t.Fatalf("tier 1 should survive a tier 2 gap")
	}
}

func TestDeriveTiers_Tier4(t *testing.T) {
	p := tier3Profile()
	p.TrialProjectWilling = boolPtr(false)
	p.WhyTenCofounder = "  want a technical partner  "
	p.WillingToSignAgreements = boolPtr(true)
	match.DeriveTiers(&p)
	if !p.Tier4Complete {
		t.Fatalf("expected tier 4 complete")
	}

	p.WhyTenCofounder = "   "
	match.DeriveTiers(&p)
	if p.Tier4Complete {
		t.Fatalf("whitespace-only answer should not satisfy tier 4")
	}
}

func TestDeriveTiers_OptionalFieldsDoNotGate(t *testing.T) {
	p := tier3Profile()
	p.Bio = ""
	p.IntroVideoURL = ""
	match.DeriveTiers(&p)
	if !p.Tier3Complete {
		t.Fatalf("optional fields must not gate tier 3")
	}
}

func TestGate(t *testing.T) {
	p := tier3Profile()
	match.DeriveTiers(&p)
	g := match.Gate(&p)
	if !g.Eligible {
		t.Fatalf("expected eligible")
	}
	if g.RequiredTier != match.MatchingTier {
		t.Fatalf("RequiredTier = %d, want %d", g.RequiredTier, match.MatchingTier)
	}
	if g.Percentage != p.CompletionPercentage {
		t.Fatalf("gate percentage %d != derived %d", g.Percentage, p.CompletionPercentage)
	}

	p.PrimarySkill = ""
	match.DeriveTiers(&p)
	g = match.Gate(&p)
	if g.Eligible {
		t.Fatalf("expected ineligible without primary skill")
	}
	if g.Percentage <= 0 {
		t.Fatalf("partial profile should still report progress, got %d", g.Percentage)
	}
}
