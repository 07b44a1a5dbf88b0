package model

import "time"

// User is an application account as stored in the `users` table.
// The booking engine itself only ever sees the numeric ID; these
// records belong to the identity adapter.
//
// Fields:
//  ID           - primary key identifier.
//  Username     - unique login name.
//  Email        - unique email address.
//  PasswordHash - bcrypt hash of the password.
//  IsActive     - whether the account may log in.
//  CreatedAt    - timestamp of creation.
//  UpdatedAt    - timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken is a row in `refresh_tokens`. Only the SHA-256 hash of
// the raw token is stored; RevokedAt is nil while the token is live.
//
// Fields:
//  ID        - primary key identifier.
//  UserID    - owner of the token.
//  TokenHash - SHA-256 hex digest of the raw token.
//  ExpiresAt - expiration timestamp.
//  RevokedAt - revocation timestamp, nil if still active.
//  CreatedAt - timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
