package match

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cofoundry/server/pkg/models"
	"github.com/cofoundry/server/pkg/repository"
)

// Ranking policy defaults. Callers passing out-of-range values get these
// instead of an error; the surface is deliberately permissive.
const (
	DefaultResultLimit   = 20
	MaxResultLimit       = 50
	DefaultCandidatePool = 50
)

// Match is one ranked candidate. ConnectionStatus is empty for every result
// today because candidates with an existing request in either direction are
// excluded before scoring; the field is part of the payload shape consumed
// by the frontend.
type Match struct {
	Profile          models.Profile `json:"profile"`
	Score            int            `json:"match_score"`
	ConnectionStatus string         `json:"connection_status,omitempty"`
}

// Ranker produces the ranked match list for a requester.
type Ranker struct {
	profiles    repository.ProfileRepo
	connections repository.ConnectionRepo
	scorer      *Scorer
	pool        int
	logger      *slog.Logger
}

// NewRanker wires a Ranker. pool bounds the candidate fetch; zero or
// negative uses DefaultCandidatePool.
func NewRanker(pr repository.ProfileRepo, cr repository.ConnectionRepo, scorer *Scorer, pool int, logger *slog.Logger) *Ranker {
	if pool <= 0 {
		pool = DefaultCandidatePool
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ranker{profiles: pr, connections: cr, scorer: scorer, pool: pool, logger: logger}
}

// Rank gates the requester, fetches a bounded tier-eligible candidate
// snapshot, drops anyone already linked to the requester by a request in
// either direction (any status), scores the rest, filters by minScore and
// returns the top results sorted descending by score.
func (r *Ranker) Rank(ctx context.Context, requesterID int64, minScore, limit int) ([]Match, error) {
	requester, err := r.profiles.GetByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: load requester: %v", ErrStoreUnavailable, err)
	}
	if requester == nil {
		return nil, fmt.Errorf("%w: profile %d", ErrNotFound, requesterID)
	}

	if g := Gate(requester); !g.Eligible {
		return nil, &IneligibleError{RequiredTier: g.RequiredTier, Percentage: g.Percentage}
	}

	if minScore < 0 {
		minScore = 0
	}
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	if limit > MaxResultLimit {
		limit = MaxResultLimit
	}

	// Pool is pre-filtered to tier-3-complete profiles in the store query
	// so ineligible candidates are never scored.
	candidates, err := r.profiles.ListCandidates(ctx, requesterID, true, r.pool)
	if err != nil {
		return nil, fmt.Errorf("%w: list candidates: %v", ErrStoreUnavailable, err)
	}

	partnerIDs, err := r.connections.ListPartnerIDs(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: list existing connections: %v", ErrStoreUnavailable, err)
	}
	contacted := make(map[int64]bool, len(partnerIDs))
	for _, id := range partnerIDs {
		contacted[id] = true
	}

	matches := make([]Match, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if contacted[c.ID] {
			continue
		}
		score, err := r.scorer.Score(requester, c)
		if err != nil {
			// self should have been excluded by the store query
			r.logger.Warn("skip candidate", "candidate_id", c.ID, "err", err)
			continue
		}
		if score < minScore {
			continue
		}
		matches = append(matches, Match{Profile: *c, Score: score})
	}

	// Jitter already breaks most ties; the id tie-break keeps output stable
	// for equal scores.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Profile.ID < matches[j].Profile.ID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
