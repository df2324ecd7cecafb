package sqlite

import (
	"context"
	"fmt"

	"github.com/cofoundry/server/pkg/models"
)

func (r *SQLiteRepo) CreateMessage(ctx context.Context, m *models.Message) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("message is nil")
	}

	m.Created = now()
	res, err := r.conn.Exec(ctx, `INSERT INTO messages (connection_id, sender_id, content, created) VALUES (?, ?, ?, ?)`,
		m.ConnectionID, m.SenderID, m.Content, m.Created)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) ListByConnection(ctx context.Context, connectionID int64) ([]models.Message, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, connection_id, sender_id, content, created FROM messages WHERE connection_id = ? ORDER BY created ASC, id ASC`, connectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConnectionID, &m.SenderID, &m.Content, &m.Created); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
