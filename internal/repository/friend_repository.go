package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
)

// FriendRepository handles database operations for friendship relations. It
// owns symmetry resolution: accepted friendships are stored in both
// directions, and ID lookups deduplicate across them.
type FriendRepository struct {
	db *sql.DB
}

// NewFriendRepository creates a new FriendRepository.
func NewFriendRepository(db *sql.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// Create inserts a pending friend request.
func (r *FriendRepository) Create(ctx context.Context, userID, friendID int) (*models.Friend, error) {
	var rel models.Friend
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO friends (user_id, friend_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, friend_id, status, created_at
	`, userID, friendID, models.FriendStatusPending).Scan(
		&rel.ID, &rel.UserID, &rel.FriendID, &rel.Status, &rel.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}
	return &rel, nil
}

// Relation returns the directed relation from userID to friendID, if any.
func (r *FriendRepository) Relation(ctx context.Context, userID, friendID int) (*models.Friend, error) {
	var rel models.Friend
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, friend_id, status, created_at
		FROM friends WHERE user_id = $1 AND friend_id = $2
	`, userID, friendID).Scan(&rel.ID, &rel.UserID, &rel.FriendID, &rel.Status, &rel.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("friend relation: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get friend relation: %w", err)
	}
	return &rel, nil
}

// ByID returns a relation by its row ID.
func (r *FriendRepository) ByID(ctx context.Context, id int) (*models.Friend, error) {
	var rel models.Friend
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, friend_id, status, created_at
		FROM friends WHERE id = $1
	`, id).Scan(&rel.ID, &rel.UserID, &rel.FriendID, &rel.Status, &rel.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("friend relation: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get friend relation: %w", err)
	}
	return &rel, nil
}

// Accept marks the relation accepted and upserts the reciprocal row so the
// friendship exists in both directions.
func (r *FriendRepository) Accept(ctx context.Context, rel *models.Friend) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE friends SET status = $2 WHERE id = $1
	`, rel.ID, models.FriendStatusAccepted); err != nil {
		return fmt.Errorf("failed to accept friend request: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO friends (user_id, friend_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, friend_id) DO UPDATE SET status = EXCLUDED.status
	`, rel.FriendID, rel.UserID, models.FriendStatusAccepted); err != nil {
		return fmt.Errorf("failed to upsert reciprocal relation: %w", err)
	}

	return tx.Commit()
}

// Remove deletes the friendship in both directions.
func (r *FriendRepository) Remove(ctx context.Context, userID, friendID int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM friends
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
	`, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}

// AcceptedFriendIDs returns the resolved, symmetric set of accepted friend
// IDs for a user.
func (r *FriendRepository) AcceptedFriendIDs(ctx context.Context, userID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT CASE WHEN user_id = $1 THEN friend_id ELSE user_id END
		FROM friends
		WHERE status = $2 AND (user_id = $1 OR friend_id = $1)
	`, userID, models.FriendStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("accepted friend IDs query failed: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan friend ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AcceptedRelations returns the user's accepted friends with profile info,
// newest friendship first. TasteMatch fields are filled in by the service.
func (r *FriendRepository) AcceptedRelations(ctx context.Context, userID int) ([]models.FriendSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT ON (u.id) f.id, u.id,
			COALESCE(NULLIF(u.display_name, ''), u.username), u.username, u.avatar,
			f.created_at
		FROM friends f
		JOIN users u ON u.id = CASE WHEN f.user_id = $1 THEN f.friend_id ELSE f.user_id END
		WHERE f.status = $2 AND (f.user_id = $1 OR f.friend_id = $1)
		ORDER BY u.id, f.created_at DESC
	`, userID, models.FriendStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("accepted relations query failed: %w", err)
	}
	defer rows.Close()

	friends := make([]models.FriendSummary, 0)
	for rows.Next() {
		var f models.FriendSummary
		var createdAt sql.NullTime
		if err := rows.Scan(&f.RelationID, &f.ID, &f.Name, &f.Username, &f.Avatar, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend row: %w", err)
		}
		f.Status = models.FriendStatusAccepted
		friends = append(friends, f)
	}
	return friends, rows.Err()
}

// Pending returns incoming friend requests awaiting the user's decision,
// newest first.
func (r *FriendRepository) Pending(ctx context.Context, userID int) ([]models.PendingRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT f.id, u.id, COALESCE(NULLIF(u.display_name, ''), u.username),
			u.username, u.avatar, f.status, f.created_at
		FROM friends f
		JOIN users u ON u.id = f.user_id
		WHERE f.friend_id = $1 AND f.status = $2
		ORDER BY f.created_at DESC
	`, userID, models.FriendStatusPending)
	if err != nil {
		return nil, fmt.Errorf("pending requests query failed: %w", err)
	}
	defer rows.Close()

	requests := make([]models.PendingRequest, 0)
	for rows.Next() {
		var req models.PendingRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.Name, &req.Username,
			&req.Avatar, &req.Status, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// CountAccepted returns how many accepted friends the user has.
func (r *FriendRepository) CountAccepted(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT CASE WHEN user_id = $1 THEN friend_id ELSE user_id END)
		FROM friends
		WHERE status = $2 AND (user_id = $1 OR friend_id = $1)
	`, userID, models.FriendStatusAccepted).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count friends: %w", err)
	}
	return count, nil
}
