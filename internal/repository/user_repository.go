package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ivaldez/meeting-room-reservation/internal/model"
	"github.com/ivaldez/meeting-room-reservation/internal/utils"
)

// UserRepo persists application users.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// ErrEmailExists is returned by Create when the email is already
// registered.
var ErrEmailExists = errors.New("email already exists")

// Create hashes the password, inserts the user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, fullName, email, password, role, areaID string, cost int) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, full_name, email, password_hash, role, area_id) VALUES (?,?,?,?,?,?)",
		id, fullName, email, hash, role, areaID)
	if err != nil {
		// MySQL duplicate-key error code for the unique email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return "", ErrEmailExists
		}
		return "", err
	}
	return id, nil
}

const userColumns = `id, full_name, email, password_hash, role, area_id, created_at`

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	var areaID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &areaID, &u.CreatedAt)
	if areaID.Valid {
		a := areaID.String
		u.AreaID = &a
	}
	return u, err
}

// UserName pairs a user id with its display name for report filter
// dropdowns.
type UserName struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// ListNames returns every user's id and full name ordered by name.
func (r *UserRepo) ListNames(ctx context.Context) ([]UserName, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, full_name FROM users ORDER BY full_name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]UserName, 0)
	for rows.Next() {
		var n UserName
		if err := rows.Scan(&n.ID, &n.FullName); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
