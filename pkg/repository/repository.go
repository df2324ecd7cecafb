package repository

import (
	"context"
	"errors"

	"github.com/cofoundry/server/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// ErrDuplicate is returned by writes that violate a uniqueness constraint,
// e.g. inserting a second connection request for the same ordered pair. The
// constraint lives in the store so concurrent writers race safely.
var ErrDuplicate = errors.New("duplicate record")

type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *models.Profile) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error
	// ListCandidates returns up to limit profiles excluding excludeID.
	// With onlyEligible set, the pool is pre-filtered to tier-3-complete
	// profiles in the query itself.
	ListCandidates(ctx context.Context, excludeID int64, onlyEligible bool, limit int) ([]models.Profile, error)
	// AddPoints atomically adds delta to the profile's points and returns
	// the new total.
	AddPoints(ctx context.Context, id int64, delta int64) (int64, error)
}

type ConnectionRepo interface {
	// CreateRequest inserts a pending request and returns its id.
	// A second insert for the same ordered pair returns ErrDuplicate.
	CreateRequest(ctx context.Context, c *models.ConnectionRequest) (int64, error)
	GetRequest(ctx context.Context, id int64) (*models.ConnectionRequest, error)
	ListIncomingPending(ctx context.Context, userID int64) ([]models.ConnectionRequest, error)
	ListOutgoing(ctx context.Context, userID int64) ([]models.ConnectionRequest, error)
	// ListAccepted returns accepted requests where userID is requester or
	// recipient.
	ListAccepted(ctx context.Context, userID int64) ([]models.ConnectionRequest, error)
	// ListPartnerIDs returns the ids of every user connected to userID by a
	// request in either direction, any status.
	ListPartnerIDs(ctx context.Context, userID int64) ([]int64, error)
	// UpdateStatusIfPending transitions the request to status only when it
	// is still pending, reporting whether the swap happened.
	UpdateStatusIfPending(ctx context.Context, id int64, status string) (bool, error)
}

type MessageRepo interface {
	CreateMessage(ctx context.Context, m *models.Message) (int64, error)
	ListByConnection(ctx context.Context, connectionID int64) ([]models.Message, error)
}

type ResourceRepo interface {
	ListResources(ctx context.Context) ([]models.Resource, error)
	GetResource(ctx context.Context, id int64) (*models.Resource, error)
	// MarkCompleted records that profileID finished resourceID, reporting
	// false when a completion was already on record.
	MarkCompleted(ctx context.Context, profileID, resourceID int64) (bool, error)
}
