package ports

import (
	"context"

	"github.com/quickpoll/api/internal/core/domain"
)

type PollRepository interface {
	Create(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id string) (*domain.Poll, error)
	ListAll(ctx context.Context, limit int) ([]*domain.Poll, error)
}

type OptionRepository interface {
	Create(ctx context.Context, option *domain.PollOption) error
	GetByID(ctx context.Context, id string) (*domain.PollOption, error)
	ListByPoll(ctx context.Context, pollID string) ([]domain.PollOption, error)
}

type PollService interface {
	Create(ctx context.Context, creatorID, text string) (*domain.Poll, error)
	Get(ctx context.Context, id string) (*domain.Poll, error)
	ListAll(ctx context.Context) ([]*domain.Poll, error)
	AddOption(ctx context.Context, userID, pollID, text string) (*domain.PollOption, error)
}
