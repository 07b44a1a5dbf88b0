package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aakankshas938-hue/hotel-booking/internal/model"
	"github.com/aakankshas938-hue/hotel-booking/internal/utils"
)

// UserRepo persists application accounts. Accounts log in by username;
// the email is kept for contact purposes and is unique as well.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create hashes the password and inserts the account, returning its
// ID. Duplicate usernames or emails surface as ErrUsernameExists
// (MySQL error 1062, duplicate key).
func (r *UserRepo) Create(ctx context.Context, username, email, password string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, email, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const userColumns = `id, username, email, password_hash, is_active, created_at, updated_at`

// GetByUsername fetches an account by its login name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? LIMIT 1`,
		strings.TrimSpace(username)).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches an account by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Authenticate verifies the username/password pair and returns the
// account. Unknown usernames, wrong passwords and disabled accounts
// all return sql.ErrNoRows so the handler reports one uniform
// "invalid credentials".
func (r *UserRepo) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, err
	}
	if !u.IsActive {
		return model.User{}, sql.ErrNoRows
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}
