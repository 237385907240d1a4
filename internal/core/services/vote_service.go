package services

import (
	"context"
	"fmt"
	"time"

	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
)

type voteService struct {
	pollRepo    ports.PollRepository
	optionRepo  ports.OptionRepository
	voteRepo    ports.VoteRepository
	broadcaster ports.Broadcaster
}

func NewVoteService(pollRepo ports.PollRepository, optionRepo ports.OptionRepository, voteRepo ports.VoteRepository, broadcaster ports.Broadcaster) ports.VoteService {
	return &voteService{
		pollRepo:    pollRepo,
		optionRepo:  optionRepo,
		voteRepo:    voteRepo,
		broadcaster: broadcaster,
	}
}

// Toggle applies one transition of the per-(user, poll) vote state machine:
//
//   - no active vote         -> vote for the target option
//   - voted for the target   -> un-vote (toggle off)
//   - voted for another      -> switch the vote to the target
//
// Each transition commits the action record and the affected counters in one
// transaction, so at most one vote action ever exists per (user, poll) pair.
func (s *voteService) Toggle(ctx context.Context, userID, pollID, optionID string) (*domain.PollOption, error) {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	option, err := s.optionRepo.GetByID(ctx, optionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get option: %w", err)
	}
	if option == nil {
		return nil, domain.ErrOptionNotFound
	}
	if option.PollID != pollID {
		return nil, domain.ErrOptionMismatch
	}

	existing, err := s.voteRepo.GetByUserAndPoll(ctx, userID, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}

	var previousOptionID string
	switch {
	case existing == nil:
		vote := &domain.VoteAction{
			ID:        domain.NewID(),
			PollID:    pollID,
			OptionID:  optionID,
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.voteRepo.Cast(ctx, vote); err != nil {
			return nil, fmt.Errorf("failed to cast vote: %w", err)
		}

	case existing.OptionID == optionID:
		if err := s.voteRepo.Retract(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to retract vote: %w", err)
		}

	default:
		previousOptionID = existing.OptionID
		vote := &domain.VoteAction{
			ID:        domain.NewID(),
			PollID:    pollID,
			OptionID:  optionID,
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.voteRepo.Switch(ctx, existing, vote); err != nil {
			return nil, fmt.Errorf("failed to switch vote: %w", err)
		}
	}

	target, err := s.optionRepo.GetByID(ctx, optionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get option: %w", err)
	}
	if target == nil {
		return nil, domain.ErrOptionNotFound
	}

	changed := []domain.PollOption{*target}
	if previousOptionID != "" {
		if previous, err := s.optionRepo.GetByID(ctx, previousOptionID); err == nil && previous != nil {
			changed = append(changed, *previous)
		}
	}
	s.broadcaster.Publish(domain.Event{Type: domain.EventOptionVoted, PollID: pollID, Options: changed})

	return target, nil
}
