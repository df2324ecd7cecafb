package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	migrations "github.com/cofoundry/server/db"
	"github.com/cofoundry/server/internal/db"
	"github.com/cofoundry/server/internal/repository/sqlite"
	"github.com/cofoundry/server/pkg/models"
	"github.com/cofoundry/server/pkg/repository"
)

// setupRepo opens a per-test in-memory database and applies the embedded
// migrations. The DSN is derived from the test name so parallel tests never
// share a cache.
func setupRepo(t *testing.T) *sqlite.SQLiteRepo {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := db.New(ctx, dsn, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(ctx, conn, migrations.Migrations, migrations.SeedFiles); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sqlite.New(conn, nil)
}

func truePtr() *bool  { v := true; return &v }
func falsePtr() *bool { v := false; return &v }

func createProfile(t *testing.T, repo *sqlite.SQLiteRepo, email string, tier3 bool) int64 {
	t.Helper()
	p := &models.Profile{
		Name:          "Founder " + email,
		Email:         email,
		Tier1Complete: true,
		Tier3Complete: tier3,
	}
	id, err := repo.CreateProfile(context.Background(), p)
	if err != nil {
		t.Fatalf("create profile %s: %v", email, err)
	}
	return id
}

func TestProfileRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	in := &models.Profile{
		Name:                "Asha",
		Email:               "asha@example.com",
		PasswordHash:        "$2a$10$hash",
		ProfessionalStatus:  "Working full-time",
		City:                "Bangalore",
		Country:             "India",
		LinkedinURL:         "https://linkedin.com/in/asha",
		Skills:              []string{"Go", "Postgres"},
		Bio:                 "Infra person",
		Stage:               "Ideation",
		CanCommit20hrsWeek:  truePtr(),
		CanGoFulltime:       "Within 3 months",
		OkayWithZeroSalary:  falsePtr(),
		LookingFor:          "Business",
		RemotePreference:    models.RemoteFullyRemote,
		PrimarySkill:        "Engineering",
		IndustryInterests:   []string{"Fintech", "DevTools"},
		CoreValues:          []string{"Transparency"},
		DecisionMakingStyle: "Data-driven",
		TrialProjectWilling: truePtr(),
		WhyTenCofounder:     "shipped before",
		Tier1Complete:       true,
		Tier2Complete:       true,
		Tier3Complete:       true,
		CompletionPercentage: 85,
	}
	id, err := repo.CreateProfile(ctx, in)
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil")
	}
	if got.Email != in.Email || got.City != in.City || got.PrimarySkill != in.PrimarySkill {
		t.Fatalf("scalar fields lost: %+v", got)
	}
	if len(got.Skills) != 2 || got.Skills[0] != "Go" {
		t.Fatalf("skills lost: %v", got.Skills)
	}
	if got.CanCommit20hrsWeek == nil || !*got.CanCommit20hrsWeek {
		t.Fatalf("can_commit lost: %v", got.CanCommit20hrsWeek)
	}
	if got.OkayWithZeroSalary == nil || *got.OkayWithZeroSalary {
		t.Fatalf("false answer must round-trip as false, got %v", got.OkayWithZeroSalary)
	}
	if got.WillingToSignAgreements != nil {
		t.Fatalf("unanswered question must stay nil, got %v", got.WillingToSignAgreements)
	}
	if got.CompletionPercentage != 85 {
		t.Fatalf("completion = %d, want 85", got.CompletionPercentage)
	}
	if got.Created == 0 || got.Updated == 0 {
		t.Fatalf("timestamps not set: %d/%d", got.Created, got.Updated)
	}

	byEmail, err := repo.GetByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != id {
		t.Fatalf("GetByEmail mismatch: %+v", byEmail)
	}
}

func TestProfileMissingIsNilNil(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p, err := repo.GetByID(ctx, 12345)
	if err != nil || p != nil {
		t.Fatalf("GetByID(missing) = %v, %v; want nil, nil", p, err)
	}
	p, err = repo.GetByEmail(ctx, "nobody@example.com")
	if err != nil || p != nil {
		t.Fatalf("GetByEmail(missing) = %v, %v; want nil, nil", p, err)
	}
}

func TestCreateProfile_DuplicateEmail(t *testing.T) {
	repo := setupRepo(t)
	createProfile(t, repo, "dup@example.com", false)

	_, err := repo.CreateProfile(context.Background(), &models.Profile{Name: "Again", Email: "dup@example.com"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	id := createProfile(t, repo, "upd@example.com", false)

	p, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	p.City = "Mumbai"
	p.CoreValues = []string{"Speed", "Ownership"}
	p.TrialProjectWilling = falsePtr()
	if err := repo.UpdateProfile(ctx, p); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.City != "Mumbai" {
		t.Fatalf("city = %q", got.City)
	}
	if len(got.CoreValues) != 2 {
		t.Fatalf("core values = %v", got.CoreValues)
	}
	if got.TrialProjectWilling == nil || *got.TrialProjectWilling {
		t.Fatalf("trial answer = %v, want false", got.TrialProjectWilling)
	}
}

func TestListCandidates(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	me := createProfile(t, repo, "me@example.com", true)
	eligible := createProfile(t, repo, "ok@example.com", true)
	createProfile(t, repo, "partial@example.com", false)

	got, err := repo.ListCandidates(ctx, me, true, 10)
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(got) != 1 || got[0].ID != eligible {
		t.Fatalf("eligible-only = %+v, want only %d", got, eligible)
	}

	all, err := repo.ListCandidates(ctx, me, false, 10)
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered = %d rows, want 2", len(all))
	}

	limited, err := repo.ListCandidates(ctx, me, false, 1)
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit ignored: %d rows", len(limited))
	}
}

func TestConnectionRequests(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	a := createProfile(t, repo, "a@example.com", true)
	b := createProfile(t, repo, "b@example.com", true)
	c := createProfile(t, repo, "c@example.com", true)

	id, err := repo.CreateRequest(ctx, &models.ConnectionRequest{RequesterID: a, RecipientID: b, Status: models.StatusPending})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	// ordered-pair uniqueness
	_, err = repo.CreateRequest(ctx, &models.ConnectionRequest{RequesterID: a, RecipientID: b, Status: models.StatusPending})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	// reverse direction is a distinct pair
	if _, err := repo.CreateRequest(ctx, &models.ConnectionRequest{RequesterID: b, RecipientID: a, Status: models.StatusPending}); err != nil {
		t.Fatalf("reverse pair: %v", err)
	}
	if _, err := repo.CreateRequest(ctx, &models.ConnectionRequest{RequesterID: a, RecipientID: c, Status: models.StatusPending}); err != nil {
		t.Fatalf("CreateRequest a->c: %v", err)
	}

	req, err := repo.GetRequest(ctx, id)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if req == nil || req.Status != models.StatusPending || req.Created == 0 {
		t.Fatalf("GetRequest = %+v", req)
	}

	missing, err := repo.GetRequest(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("GetRequest(missing) = %v, %v; want nil, nil", missing, err)
	}

	incoming, err := repo.ListIncomingPending(ctx, b)
	if err != nil {
		t.Fatalf("ListIncomingPending: %v", err)
	}
	if len(incoming) != 1 || incoming[0].RequesterID != a {
		t.Fatalf("incoming = %+v", incoming)
	}

	outgoing, err := repo.ListOutgoing(ctx, a)
	if err != nil {
		t.Fatalf("ListOutgoing: %v", err)
	}
	if len(outgoing) != 2 {
		t.Fatalf("outgoing = %d rows, want 2", len(outgoing))
	}

	partners, err := repo.ListPartnerIDs(ctx, a)
	if err != nil {
		t.Fatalf("ListPartnerIDs: %v", err)
	}
	seen := map[int64]bool{}
	for _, id := range partners {
		seen[id] = true
	}
	if !seen[b] || !seen[c] {
		t.Fatalf("partners = %v, want both %d and %d", partners, b, c)
	}
}

func TestUpdateStatusIfPending(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	a := createProfile(t, repo, "a@example.com", true)
	b := createProfile(t, repo, "b@example.com", true)
	id, err := repo.CreateRequest(ctx, &models.ConnectionRequest{RequesterID: a, RecipientID: b, Status: models.StatusPending})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	swapped, err := repo.UpdateStatusIfPending(ctx, id, models.StatusAccepted)
	if err != nil {
		t.Fatalf("UpdateStatusIfPending: %v", err)
	}
	if !swapped {
		t.Fatal("expected swap on pending request")
	}

	// settled requests do not swap again
	swapped, err = repo.UpdateStatusIfPending(ctx, id, models.StatusRejected)
	if err != nil {
		t.Fatalf("UpdateStatusIfPending: %v", err)
	}
	if swapped {
		t.Fatal("swap must fail once the request is settled")
	}

	req, err := repo.GetRequest(ctx, id)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if req.Status != models.StatusAccepted {
		t.Fatalf("status = %q, want accepted to stick", req.Status)
	}

	accepted, err := repo.ListAccepted(ctx, b)
	if err != nil {
		t.Fatalf("ListAccepted: %v", err)
	}
	if len(accepted) != 1 || accepted[0].ID != id {
		t.Fatalf("accepted = %+v", accepted)
	}
}

func TestMessages(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	a := createProfile(t, repo, "a@example.com", true)
	b := createProfile(t, repo, "b@example.com", true)
	connID, err := repo.CreateRequest(ctx, &models.ConnectionRequest{RequesterID: a, RecipientID: b, Status: models.StatusPending})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if _, err := repo.UpdateStatusIfPending(ctx, connID, models.StatusAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}

	for i, body := range []string{"hey", "want to build together?"} {
		sender := a
		if i%2 == 1 {
			sender = b
		}
		if _, err := repo.CreateMessage(ctx, &models.Message{ConnectionID: connID, SenderID: sender, Content: body}); err != nil {
			t.Fatalf("CreateMessage %d: %v", i, err)
		}
	}

	msgs, err := repo.ListByConnection(ctx, connID)
	if err != nil {
		t.Fatalf("ListByConnection: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Content != "hey" || msgs[1].SenderID != b {
		t.Fatalf("wrong ordering or attribution: %+v", msgs)
	}
}

func TestResourcesSeededAndCompletion(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	resources, err := repo.ListResources(ctx)
	if err != nil {
		t.Fatalf("ListResources: %v", err)
	}
	if len(resources) == 0 {
		t.Fatal("expected seeded resources")
	}
	first := resources[0]
	if first.Title == "" || first.Points <= 0 {
		t.Fatalf("seeded resource looks wrong: %+v", first)
	}

	got, err := repo.GetResource(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetResource: %v", err)
	}
	if got == nil || got.Title != first.Title {
		t.Fatalf("GetResource = %+v", got)
	}

	missing, err := repo.GetResource(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("GetResource(missing) = %v, %v; want nil, nil", missing, err)
	}

	userID := createProfile(t, repo, "learner@example.com", false)

	firstTime, err := repo.MarkCompleted(ctx, userID, first.ID)
	if err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if !firstTime {
		t.Fatal("first completion should report true")
	}
	again, err := repo.MarkCompleted(ctx, userID, first.ID)
	if err != nil {
		t.Fatalf("MarkCompleted repeat: %v", err)
	}
	if again {
		t.Fatal("repeat completion should report false")
	}
}

func TestAddPoints(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	id := createProfile(t, repo, "points@example.com", false)

	total, err := repo.AddPoints(ctx, id, 10)
	if err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	if total != 10 {
		t.Fatalf("total = %d, want 10", total)
	}
	total, err = repo.AddPoints(ctx, id, 5)
	if err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	if total != 15 {
		t.Fatalf("total = %d, want 15", total)
	}

	if _, err := repo.AddPoints(ctx, 9999, 5); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}
