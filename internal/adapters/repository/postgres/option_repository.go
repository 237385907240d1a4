package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
)

type optionRepository struct {
	db *sql.DB
}

func NewOptionRepository(db *sql.DB) ports.OptionRepository {
	return &optionRepository{
		db: db,
	}
}

func (r *optionRepository) Create(ctx context.Context, option *domain.PollOption) error {
	query := `
		INSERT INTO poll_options (id, poll_id, text, votes, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, option.ID, option.PollID, option.Text, option.Votes, option.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert option: %w", err)
	}
	return nil
}

func (r *optionRepository) GetByID(ctx context.Context, id string) (*domain.PollOption, error) {
	query := `
		SELECT id, poll_id, text, votes, created_at
		FROM poll_options
		WHERE id = $1
	`
	var option domain.PollOption
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&option.ID, &option.PollID, &option.Text, &option.Votes, &option.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get option: %w", err)
	}
	return &option, nil
}

func (r *optionRepository) ListByPoll(ctx context.Context, pollID string) ([]domain.PollOption, error) {
	query := `
		SELECT id, poll_id, text, votes, created_at
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	defer rows.Close()

	var options []domain.PollOption
	for rows.Next() {
		var option domain.PollOption
		if err := rows.Scan(&option.ID, &option.PollID, &option.Text, &option.Votes, &option.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, option)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}
