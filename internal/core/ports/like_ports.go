package ports

import (
	"context"

	"github.com/quickpoll/api/internal/core/domain"
)

// LikeRepository persists like actions together with the cached poll like
// counter. Add and Remove each run as a single transaction.
type LikeRepository interface {
	GetByUserAndPoll(ctx context.Context, userID, pollID string) (*domain.LikeAction, error)
	Add(ctx context.Context, like *domain.LikeAction) error
	Remove(ctx context.Context, like *domain.LikeAction) error
}

type LikeService interface {
	Toggle(ctx context.Context, userID, pollID string) (*domain.Poll, error)
}
