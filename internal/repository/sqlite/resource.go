package sqlite

import (
	"context"
	"database/sql"

	"github.com/cofoundry/server/pkg/models"
)

func (r *SQLiteRepo) ListResources(ctx context.Context) ([]models.Resource, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, title, category, url, points, created FROM resources ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Resource
	for rows.Next() {
		var res models.Resource
		var category, url sql.NullString
		if err := rows.Scan(&res.ID, &res.Title, &category, &url, &res.Points, &res.Created); err != nil {
			return nil, err
		}
		res.Category = category.String
		res.URL = url.String
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) GetResource(ctx context.Context, id int64) (*models.Resource, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, title, category, url, points, created FROM resources WHERE id = ?`, id)
	var res models.Resource
	var category, url sql.NullString
	if err := row.Scan(&res.ID, &res.Title, &category, &url, &res.Points, &res.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	res.Category = category.String
	res.URL = url.String
	return &res, nil
}

// MarkCompleted records a completion once per (profile, resource) pair.
// Duplicate completions are tolerated and reported as already done so the
// caller can skip the points award.
func (r *SQLiteRepo) MarkCompleted(ctx context.Context, profileID, resourceID int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `INSERT OR IGNORE INTO resource_completions (profile_id, resource_id, completed_at) VALUES (?, ?, ?)`,
		profileID, resourceID, now())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
