package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
)

type pollService struct {
	pollRepo    ports.PollRepository
	optionRepo  ports.OptionRepository
	broadcaster ports.Broadcaster
}

func NewPollService(pollRepo ports.PollRepository, optionRepo ports.OptionRepository, broadcaster ports.Broadcaster) ports.PollService {
	return &pollService{
		pollRepo:    pollRepo,
		optionRepo:  optionRepo,
		broadcaster: broadcaster,
	}
}

func (s *pollService) Create(ctx context.Context, creatorID, text string) (*domain.Poll, error) {
	length := utf8.RuneCountInString(text)
	if length < 3 || length > 300 {
		return nil, fmt.Errorf("%w: poll text must be between 3 and 300 characters", domain.ErrValidation)
	}

	poll := &domain.Poll{
		ID:        domain.NewID(),
		Text:      text,
		CreatorID: creatorID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.pollRepo.Create(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	s.broadcaster.Publish(domain.Event{Type: domain.EventPollCreated, Poll: poll})

	return poll, nil
}

func (s *pollService) Get(ctx context.Context, id string) (*domain.Poll, error) {
	poll, err := s.pollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	options, err := s.optionRepo.ListByPoll(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list poll options: %w", err)
	}
	poll.Options = options

	return poll, nil
}

func (s *pollService) ListAll(ctx context.Context) ([]*domain.Poll, error) {
	return s.pollRepo.ListAll(ctx, 100)
}

func (s *pollService) AddOption(ctx context.Context, userID, pollID, text string) (*domain.PollOption, error) {
	length := utf8.RuneCountInString(text)
	if length < 1 || length > 100 {
		return nil, fmt.Errorf("%w: option text must be between 1 and 100 characters", domain.ErrValidation)
	}

	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.CreatorID != userID {
		return nil, domain.ErrNotCreator
	}

	option := &domain.PollOption{
		ID:        domain.NewID(),
		PollID:    pollID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.optionRepo.Create(ctx, option); err != nil {
		return nil, fmt.Errorf("failed to create poll option: %w", err)
	}

	s.broadcaster.Publish(domain.Event{Type: domain.EventOptionCreated, PollID: pollID, Option: option})

	return option, nil
}
