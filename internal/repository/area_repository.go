package repository

import (
	"context"
	"database/sql"

	"github.com/ivaldez/meeting-room-reservation/internal/model"
)

// AreaRepo reads the areas (departments) users belong to.  Areas are
// seeded out of band and never mutated by the service.
type AreaRepo struct {
	db *sql.DB
}

// NewAreaRepo returns an AreaRepo bound to the given database.
func NewAreaRepo(db *sql.DB) *AreaRepo { return &AreaRepo{db: db} }

// ListAll returns every area ordered by name.
func (r *AreaRepo) ListAll(ctx context.Context) ([]model.Area, error) {
	const q = `SELECT id, name FROM areas ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Area, 0)
	for rows.Next() {
		var a model.Area
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Exists reports whether an area with the given id is present.
func (r *AreaRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM areas WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
