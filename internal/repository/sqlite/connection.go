package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cofoundry/server/pkg/models"
	"github.com/cofoundry/server/pkg/repository"
)

const connectionColumns = `id, requester_id, recipient_id, status, created`

func scanConnection(row rowScanner) (*models.ConnectionRequest, error) {
	var c models.ConnectionRequest
	if err := row.Scan(&c.ID, &c.RequesterID, &c.RecipientID, &c.Status, &c.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteRepo) CreateRequest(ctx context.Context, c *models.ConnectionRequest) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("connection request is nil")
	}

	c.Created = now()
	res, err := r.conn.Exec(ctx, `INSERT INTO connection_requests (requester_id, recipient_id, status, created) VALUES (?, ?, ?, ?)`,
		c.RequesterID, c.RecipientID, c.Status, c.Created)
	if err != nil {
		// the UNIQUE(requester_id, recipient_id) constraint is the single
		// arbiter for concurrent duplicate requests
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("pair %d -> %d: %w", c.RequesterID, c.RecipientID, repository.ErrDuplicate)
		}
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetRequest(ctx context.Context, id int64) (*models.ConnectionRequest, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+connectionColumns+` FROM connection_requests WHERE id = ?`, id)
	return scanConnection(row)
}

func (r *SQLiteRepo) ListIncomingPending(ctx context.Context, userID int64) ([]models.ConnectionRequest, error) {
	return r.listConnections(ctx, `SELECT `+connectionColumns+` FROM connection_requests WHERE recipient_id = ? AND status = ? ORDER BY created DESC`, userID, models.StatusPending)
}

func (r *SQLiteRepo) ListOutgoing(ctx context.Context, userID int64) ([]models.ConnectionRequest, error) {
	return r.listConnections(ctx, `SELECT `+connectionColumns+` FROM connection_requests WHERE requester_id = ? ORDER BY created DESC`, userID)
}

func (r *SQLiteRepo) ListAccepted(ctx context.Context, userID int64) ([]models.ConnectionRequest, error) {
	return r.listConnections(ctx, `SELECT `+connectionColumns+` FROM connection_requests WHERE (requester_id = ? OR recipient_id = ?) AND status = ?`, userID, userID, models.StatusAccepted)
}

func (r *SQLiteRepo) ListPartnerIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT CASE WHEN requester_id = ? THEN recipient_id ELSE requester_id END FROM connection_requests WHERE requester_id = ? OR recipient_id = ?`, userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateStatusIfPending(ctx context.Context, id int64, status string) (bool, error) {
	res, err := r.conn.Exec(ctx, `UPDATE connection_requests SET status = ? WHERE id = ? AND status = ?`, status, id, models.StatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLiteRepo) listConnections(ctx context.Context, query string, args ...any) ([]models.ConnectionRequest, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ConnectionRequest
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}
