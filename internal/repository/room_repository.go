package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ivaldez/meeting-room-reservation/internal/model"
)

// ErrRoomNotFound indicates that a room was not located in the DB.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo manages persistence for meeting rooms.  The equipment list
// is stored as a JSON array in a single column.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// Create inserts a new room and populates its generated ID.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC()
	}
	equipment, err := json.Marshal(room.Equipment)
	if err != nil {
		return err
	}
	const q = `INSERT INTO rooms (id, name, location, capacity, equipment, image_url, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, q, room.ID, room.Name, room.Location, room.Capacity, string(equipment), room.ImageURL, room.CreatedAt)
	return err
}

// GetByID returns one room.  ErrRoomNotFound is returned when the id
// is unknown.
func (r *RoomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	const q = `SELECT id, name, location, capacity, equipment, image_url, created_at FROM rooms WHERE id = ?`
	room, err := scanRoom(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// ListAll returns every room ordered by name for listing screens.
func (r *RoomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, name, location, capacity, equipment, image_url, created_at FROM rooms ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanRoom reads one rooms row, decoding the JSON equipment column.
func scanRoom(scan func(dest ...any) error) (*model.Room, error) {
	var room model.Room
	var location, imageURL, equipment sql.NullString
	if err := scan(&room.ID, &room.Name, &location, &room.Capacity, &equipment, &imageURL, &room.CreatedAt); err != nil {
		return nil, err
	}
	if location.Valid {
		l := location.String
		room.Location = &l
	}
	if imageURL.Valid {
		u := imageURL.String
		room.ImageURL = &u
	}
	room.Equipment = []string{}
	if equipment.Valid && equipment.String != "" {
		if err := json.Unmarshal([]byte(equipment.String), &room.Equipment); err != nil {
			return nil, err
		}
	}
	return &room, nil
}
