package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
)

// UserRepository handles database operations for users.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with a hashed password.
func (r *UserRepository) Create(ctx context.Context, email, username, passwordHash, displayName string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, username, password_hash, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, username, display_name, avatar, bio, created_at
	`, email, username, passwordHash, displayName).Scan(
		&user.ID, &user.Email, &user.Username, &user.DisplayName,
		&user.Avatar, &user.Bio, &user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("email or username taken: %w", models.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetByID returns a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

// GetByIdentifier looks a user up by email or username.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	return r.get(ctx, `WHERE email = $1 OR username = $1`, identifier)
}

func (r *UserRepository) get(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, username, display_name, avatar, bio, created_at
		FROM users `+where, arg).Scan(
		&user.ID, &user.Email, &user.Username, &user.DisplayName,
		&user.Avatar, &user.Bio, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Credentials returns the user ID and password hash for an email.
func (r *UserRepository) Credentials(ctx context.Context, email string) (int, string, error) {
	var id int
	var hash string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM users WHERE email = $1
	`, email).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", fmt.Errorf("user: %w", models.ErrNotFound)
		}
		return 0, "", fmt.Errorf("failed to get credentials: %w", err)
	}
	return id, hash, nil
}

// Exists reports whether a user ID is registered.
func (r *UserRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}
