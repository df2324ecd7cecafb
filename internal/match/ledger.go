package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cofoundry/server/pkg/models"
	"github.com/cofoundry/server/pkg/repository"
)

// Ledger owns the connection-request state machine:
// pending -> accepted | rejected, both terminal. Records are never deleted
// here and a rejected pair cannot be re-requested; the ordered-pair
// uniqueness spans all statuses.
type Ledger struct {
	profiles    repository.ProfileRepo
	connections repository.ConnectionRepo
	logger      *slog.Logger
}

func NewLedger(pr repository.ProfileRepo, cr repository.ConnectionRepo, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{profiles: pr, connections: cr, logger: logger}
}

// RequestLists is the two-sided projection for one user. Incoming is
// pending-only (resolved incoming requests are no longer actionable);
// outgoing keeps all statuses so the sender can see rejection outcomes.
type RequestLists struct {
	Incoming []models.ConnectionRequest `json:"incoming"`
	Outgoing []models.ConnectionRequest `json:"sent"`
}

// Connection is one accepted relationship viewed from a user, keyed by the
// partner rather than the edge direction.
type Connection struct {
	RequestID int64          `json:"id"`
	Status    string         `json:"status"`
	Partner   models.Profile `json:"partner"`
}

// CreateRequest inserts a pending request from requester to recipient.
// Self-pairs are invalid, both profiles must exist, and a duplicate ordered
// pair surfaces as ErrConflict ("already sent" is an expected outcome, not
// a failure). The reverse pair is deliberately not checked: mutual pending
// requests are a legitimate transient state resolved by whichever party
// responds first.
func (l *Ledger) CreateRequest(ctx context.Context, requesterID, recipientID int64) (*models.ConnectionRequest, error) {
	if requesterID == recipientID {
		return nil, fmt.Errorf("%w: cannot request a connection with yourself", ErrInvalidInput)
	}

	for _, id := range []int64{requesterID, recipientID} {
		p, err := l.profiles.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: load profile %d: %v", ErrStoreUnavailable, id, err)
		}
		if p == nil {
			return nil, fmt.Errorf("%w: profile %d", ErrNotFound, id)
		}
	}

	req := &models.ConnectionRequest{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.StatusPending,
	}
	id, err := l.connections.CreateRequest(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %d -> %d", ErrConflict, requesterID, recipientID)
		}
		return nil, fmt.Errorf("%w: create request: %v", ErrStoreUnavailable, err)
	}
	req.ID = id
	return req, nil
}

// ListRequests returns the incoming (pending) and outgoing (any status)
// requests for a user. Both slices are non-nil.
func (l *Ledger) ListRequests(ctx context.Context, userID int64) (*RequestLists, error) {
	incoming, err := l.connections.ListIncomingPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list incoming: %v", ErrStoreUnavailable, err)
	}
	outgoing, err := l.connections.ListOutgoing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list outgoing: %v", ErrStoreUnavailable, err)
	}
	if incoming == nil {
		incoming = []models.ConnectionRequest{}
	}
	if outgoing == nil {
		outgoing = []models.ConnectionRequest{}
	}
	return &RequestLists{Incoming: incoming, Outgoing: outgoing}, nil
}

// Respond transitions a pending request to accepted or rejected. The swap
// is a compare-and-swap conditioned on the pending status, so a second
// response (or a concurrent double-click) is a no-op success returning the
// already-terminal record.
func (l *Ledger) Respond(ctx context.Context, requestID int64, decision string) (*models.ConnectionRequest, error) {
	decision = strings.ToLower(strings.TrimSpace(decision))
	if decision != models.StatusAccepted && decision != models.StatusRejected {
		return nil, fmt.Errorf("%w: decision must be %q or %q", ErrInvalidInput, models.StatusAccepted, models.StatusRejected)
	}

	swapped, err := l.connections.UpdateStatusIfPending(ctx, requestID, decision)
	if err != nil {
		return nil, fmt.Errorf("%w: respond: %v", ErrStoreUnavailable, err)
	}

	req, err := l.connections.GetRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("%w: load request: %v", ErrStoreUnavailable, err)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: request %d", ErrNotFound, requestID)
	}
	if !swapped {
		l.logger.Info("respond on settled request", "request_id", requestID, "status", req.Status)
	}
	return req, nil
}

// ListConnections enumerates the accepted partners of a user, de-duplicated
// by partner id. Partners whose profile no longer resolves are skipped.
func (l *Ledger) ListConnections(ctx context.Context, userID int64) ([]Connection, error) {
	accepted, err := l.connections.ListAccepted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list accepted: %v", ErrStoreUnavailable, err)
	}

	out := make([]Connection, 0, len(accepted))
	seen := make(map[int64]bool, len(accepted))
	for _, req := range accepted {
		partnerID := req.RequesterID
		if partnerID == userID {
			partnerID = req.RecipientID
		}
		if seen[partnerID] {
			continue
		}
		partner, err := l.profiles.GetByID(ctx, partnerID)
		if err != nil {
			return nil, fmt.Errorf("%w: load partner %d: %v", ErrStoreUnavailable, partnerID, err)
		}
		if partner == nil {
			continue
		}
		seen[partnerID] = true
		out = append(out, Connection{RequestID: req.ID, Status: req.Status, Partner: *partner})
	}
	return out, nil
}
