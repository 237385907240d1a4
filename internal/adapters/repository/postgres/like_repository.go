package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
)

type likeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) ports.LikeRepository {
	return &likeRepository{
		db: db,
	}
}

func (r *likeRepository) GetByUserAndPoll(ctx context.Context, userID, pollID string) (*domain.LikeAction, error) {
	query := `
		SELECT id, poll_id, user_id, created_at
		FROM like_actions
		WHERE user_id = $1 AND poll_id = $2
	`
	var like domain.LikeAction
	err := r.db.QueryRowContext(ctx, query, userID, pollID).Scan(
		&like.ID, &like.PollID, &like.UserID, &like.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get like action: %w", err)
	}
	return &like, nil
}

// Add inserts the like action and bumps the poll counter atomically.
func (r *likeRepository) Add(ctx context.Context, like *domain.LikeAction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO like_actions (id, poll_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, insert, like.ID, like.PollID, like.UserID, like.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert like action: %w", err)
	}
	if err := adjustLikes(ctx, tx, like.PollID, 1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Remove deletes the like action and drops the poll counter atomically.
func (r *likeRepository) Remove(ctx context.Context, like *domain.LikeAction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM like_actions WHERE id = $1`, like.ID); err != nil {
		return fmt.Errorf("failed to delete like action: %w", err)
	}
	if err := adjustLikes(ctx, tx, like.PollID, -1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func adjustLikes(ctx context.Context, tx *sql.Tx, pollID string, delta int) error {
	query := `UPDATE polls SET likes = likes + $1 WHERE id = $2`
	if _, err := tx.ExecContext(ctx, query, delta, pollID); err != nil {
		return fmt.Errorf("failed to update like counter: %w", err)
	}
	return nil
}
