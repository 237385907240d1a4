package ports

import (
	"context"

	"github.com/quickpoll/api/internal/core/domain"
)

// VoteRepository persists vote actions together with the cached option
// counters. Cast, Retract and Switch each run as a single transaction so the
// action record and the counter move together or not at all.
type VoteRepository interface {
	GetByUserAndPoll(ctx context.Context, userID, pollID string) (*domain.VoteAction, error)
	Cast(ctx context.Context, vote *domain.VoteAction) error
	Retract(ctx context.Context, vote *domain.VoteAction) error
	Switch(ctx context.Context, old *domain.VoteAction, vote *domain.VoteAction) error
}

type VoteService interface {
	Toggle(ctx context.Context, userID, pollID, optionID string) (*domain.PollOption, error)
}
