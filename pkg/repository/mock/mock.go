package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/cofoundry/server/pkg/models"
	"github.com/cofoundry/server/pkg/repository"
)

// In-memory fakes for the match engine tests. FailWith makes every call on
// the store return that error, for exercising the store-unavailable paths.

type ProfileStore struct {
	mu       sync.Mutex
	nextID   int64
	profiles map[int64]*models.Profile
	FailWith error
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[int64]*models.Profile)}
}

// Add seeds a profile, assigning an id when it has none.
func (s *ProfileStore) Add(p models.Profile) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		s.nextID++
		p.ID = s.nextID
	} else if p.ID > s.nextID {
		s.nextID = p.ID
	}
	cp := p
	s.profiles[p.ID] = &cp
	return p.ID
}

func (s *ProfileStore) CreateProfile(ctx context.Context, p *models.Profile) (int64, error) {
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	return s.Add(*p), nil
}

func (s *ProfileStore) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *ProfileStore) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *ProfileStore) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.profiles[p.ID] = &cp
	return nil
}

func (s *ProfileStore) ListCandidates(ctx context.Context, excludeID int64, onlyEligible bool, limit int) ([]models.Profile, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Profile
	for _, p := range s.profiles {
		if p.ID == excludeID {
			continue
		}
		if onlyEligible && !p.Tier3Complete {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *ProfileStore) AddPoints(ctx context.Context, id int64, delta int64) (int64, error) {
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return 0, nil
	}
	p.Points += delta
	return p.Points, nil
}

type ConnectionStore struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*models.ConnectionRequest
	FailWith error
}

func NewConnectionStore() *ConnectionStore {
	return &ConnectionStore{requests: make(map[int64]*models.ConnectionRequest)}
}

func (s *ConnectionStore) CreateRequest(ctx context.Context, c *models.ConnectionRequest) (int64, error) {
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.requests {
		if existing.RequesterID == c.RequesterID && existing.RecipientID == c.RecipientID {
			return 0, repository.ErrDuplicate
		}
	}
	s.nextID++
	cp := *c
	cp.ID = s.nextID
	s.requests[cp.ID] = &cp
	return cp.ID, nil
}

func (s *ConnectionStore) GetRequest(ctx context.Context, id int64) (*models.ConnectionRequest, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *ConnectionStore) list(filter func(*models.ConnectionRequest) bool) []models.ConnectionRequest {
	var out []models.ConnectionRequest
	for _, c := range s.requests {
		if filter(c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *ConnectionStore) ListIncomingPending(ctx context.Context, userID int64) ([]models.ConnectionRequest, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(c *models.ConnectionRequest) bool {
		return c.RecipientID == userID && c.Status == models.StatusPending
	}), nil
}

func (s *ConnectionStore) ListOutgoing(ctx context.Context, userID int64) ([]models.ConnectionRequest, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(c *models.ConnectionRequest) bool {
		return c.RequesterID == userID
	}), nil
}

func (s *ConnectionStore) ListAccepted(ctx context.Context, userID int64) ([]models.ConnectionRequest, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(c *models.ConnectionRequest) bool {
		return c.Status == models.StatusAccepted && (c.RequesterID == userID || c.RecipientID == userID)
	}), nil
}

func (s *ConnectionStore) ListPartnerIDs(ctx context.Context, userID int64) ([]int64, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int64
	for _, c := range s.requests {
		switch userID {
		case c.RequesterID:
			out = append(out, c.RecipientID)
		case c.RecipientID:
			out = append(out, c.RequesterID)
		}
	}
	return out, nil
}

func (s *ConnectionStore) UpdateStatusIfPending(ctx context.Context, id int64, status string) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.requests[id]
	if !ok || c.Status != models.StatusPending {
		return false, nil
	}
	c.Status = status
	return true, nil
}
