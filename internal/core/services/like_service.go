package services

import (
	"context"
	"fmt"
	"time"

	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
)

type likeService struct {
	pollRepo    ports.PollRepository
	likeRepo    ports.LikeRepository
	broadcaster ports.Broadcaster
}

func NewLikeService(pollRepo ports.PollRepository, likeRepo ports.LikeRepository, broadcaster ports.Broadcaster) ports.LikeService {
	return &likeService{
		pollRepo:    pollRepo,
		likeRepo:    likeRepo,
		broadcaster: broadcaster,
	}
}

// Toggle flips the like state for the (user, poll) pair: a second like from
// the same user removes the first. The action record and the cached like
// counter move in the same transaction.
func (s *likeService) Toggle(ctx context.Context, userID, pollID string) (*domain.Poll, error) {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	existing, err := s.likeRepo.GetByUserAndPoll(ctx, userID, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing like: %w", err)
	}

	if existing != nil {
		if err := s.likeRepo.Remove(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to remove like: %w", err)
		}
	} else {
		like := &domain.LikeAction{
			ID:        domain.NewID(),
			PollID:    pollID,
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.likeRepo.Add(ctx, like); err != nil {
			return nil, fmt.Errorf("failed to add like: %w", err)
		}
	}

	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Publish(domain.Event{Type: domain.EventPollLiked, Poll: poll})

	return poll, nil
}
