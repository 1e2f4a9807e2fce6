package model

import "time"

// Role names stored in users.role.  USER may request bookings,
// COORDINATOR decides on requests for their area, ADMIN additionally
// manages rooms and reports.
const (
	RoleAdmin       = "ADMIN"
	RoleCoordinator = "COORDINATOR"
	RoleUser        = "USER"
)

// User represents an application user record as stored in the `users`
// table.  Handlers define separate response types with JSON tags; this
// struct is used by the repository layer.
//
// Fields:
//  ID           – primary key (UUID).
//  FullName     – display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – ADMIN, COORDINATOR or USER.
//  AreaID       – department the user belongs to (nullable).
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           string    // users.id (UUID)
	FullName     string    // users.full_name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	AreaID       *string   // users.area_id (nullable)
	CreatedAt    time.Time // users.created_at
}

// Area is a department users belong to.  Coordinators review the
// pending bookings of their own area.
type Area struct {
	ID   string // areas.id (UUID)
	Name string // areas.name
}

// RefreshToken models an entry in the `refresh_tokens` table.  The
// plain token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    string     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
