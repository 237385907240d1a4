package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) GetByUserAndPoll(ctx context.Context, userID, pollID string) (*domain.VoteAction, error) {
	query := `
		SELECT id, poll_id, option_id, user_id, created_at
		FROM vote_actions
		WHERE user_id = $1 AND poll_id = $2
	`
	var vote domain.VoteAction
	err := r.db.QueryRowContext(ctx, query, userID, pollID).Scan(
		&vote.ID, &vote.PollID, &vote.OptionID, &vote.UserID, &vote.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote action: %w", err)
	}
	return &vote, nil
}

// Cast inserts the vote action and bumps the option counter atomically.
func (r *voteRepository) Cast(ctx context.Context, vote *domain.VoteAction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO vote_actions (id, poll_id, option_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, insert, vote.ID, vote.PollID, vote.OptionID, vote.UserID, vote.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert vote action: %w", err)
	}

	if err := adjustVotes(ctx, tx, vote.OptionID, 1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Retract deletes the vote action and drops the option counter atomically.
func (r *voteRepository) Retract(ctx context.Context, vote *domain.VoteAction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteVoteAction(ctx, tx, vote.ID); err != nil {
		return err
	}
	if err := adjustVotes(ctx, tx, vote.OptionID, -1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Switch moves a vote between options of the same poll: the old action and
// counter decrement, and the new action and counter increment, commit as one
// unit so no interleaving can observe zero or two active votes.
func (r *voteRepository) Switch(ctx context.Context, old *domain.VoteAction, vote *domain.VoteAction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteVoteAction(ctx, tx, old.ID); err != nil {
		return err
	}
	if err := adjustVotes(ctx, tx, old.OptionID, -1); err != nil {
		return err
	}

	insert := `
		INSERT INTO vote_actions (id, poll_id, option_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, insert, vote.ID, vote.PollID, vote.OptionID, vote.UserID, vote.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert vote action: %w", err)
	}
	if err := adjustVotes(ctx, tx, vote.OptionID, 1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func deleteVoteAction(ctx context.Context, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM vote_actions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete vote action: %w", err)
	}
	return nil
}

func adjustVotes(ctx context.Context, tx *sql.Tx, optionID string, delta int) error {
	query := `UPDATE poll_options SET votes = votes + $1 WHERE id = $2`
	if _, err := tx.ExecContext(ctx, query, delta, optionID); err != nil {
		return fmt.Errorf("failed to update vote counter: %w", err)
	}
	return nil
}
