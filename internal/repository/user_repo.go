package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"mealmatcher/internal/models"
)

// ErrDuplicateEmail is returned when the users.email UNIQUE constraint
// rejects an insert or update.
var ErrDuplicateEmail = errors.New("email already in use")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (email, name, password_hash, dietary_prefs, created_at) VALUES (?, ?, ?, '', ?)`

	selectUserByEmailSQL = `SELECT id, email, name, password_hash, dietary_prefs, created_at FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, email, name, password_hash, dietary_prefs, created_at FROM users WHERE id = ?`
	selectIDByEmailSQL   = `SELECT id FROM users WHERE email = ?`

	updateUserSQL = `UPDATE users SET email = ?, name = ?, dietary_prefs = ?, password_hash = ? WHERE id = ?`
)

// isUniqueViolation reports whether err is SQLite's UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user and returns its ID. The duplicate-email check is
// left to the database's UNIQUE constraint so concurrent registrations with
// the same address cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, email, name, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, email, name, passwordHash, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user %q: %w", email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", email, err)
	}
	return int(lastID), nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email), email)
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByIDSQL, id), fmt.Sprintf("id=%d", id))
}

// GetIDByEmail resolves an email to its numeric user id. Returns 0 if no row.
func (r *UserRepository) GetIDByEmail(ctx context.Context, email string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, selectIDByEmailSQL, email).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("select user id for %q: %w", email, err)
	}
	return id, nil
}

// Update overwrites the mutable profile columns. Callers pass the already
// merged values; "skip empty fields" policy lives in the service layer.
func (r *UserRepository) Update(ctx context.Context, id int, email, name, dietaryPrefs, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, updateUserSQL, email, name, dietaryPrefs, passwordHash, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}

func (r *UserRepository) scanOne(row *sql.Row, key string) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.DietaryPrefs, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %s: %w", key, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
