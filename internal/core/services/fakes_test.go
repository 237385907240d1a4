package services

import (
	"context"
	"sort"

	"github.com/quickpoll/api/internal/core/domain"
)

// memStore is an in-memory stand-in for the postgres repositories. It
// mirrors their contract: vote/like transitions move the action record and
// the cached counter together, and lookups return copies.
type memStore struct {
	users   map[string]*domain.User
	polls   map[string]*domain.Poll
	options map[string]*domain.PollOption
	votes   map[string]*domain.VoteAction // keyed by userID + "/" + pollID
	likes   map[string]*domain.LikeAction
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[string]*domain.User),
		polls:   make(map[string]*domain.Poll),
		options: make(map[string]*domain.PollOption),
		votes:   make(map[string]*domain.VoteAction),
		likes:   make(map[string]*domain.LikeAction),
	}
}

func pairKey(userID, pollID string) string {
	return userID + "/" + pollID
}

// UserRepository

func (s *memStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (s *memStore) Create(_ context.Context, user *domain.User) error {
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

// PollRepository (Create shadows UserRepository.Create, so the poll fake is
// a separate view over the same store)

type memPollRepo struct{ *memStore }

func (r memPollRepo) Create(_ context.Context, poll *domain.Poll) error {
	copied := *poll
	r.polls[poll.ID] = &copied
	return nil
}

func (r memPollRepo) GetByID(_ context.Context, id string) (*domain.Poll, error) {
	if p, ok := r.polls[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, domain.ErrPollNotFound
}

func (r memPollRepo) ListAll(_ context.Context, limit int) ([]*domain.Poll, error) {
	var polls []*domain.Poll
	for _, p := range r.polls {
		copied := *p
		polls = append(polls, &copied)
	}
	sort.Slice(polls, func(i, j int) bool { return polls[i].ID < polls[j].ID })
	if len(polls) > limit {
		polls = polls[:limit]
	}
	return polls, nil
}

// OptionRepository

type memOptionRepo struct{ *memStore }

func (r memOptionRepo) Create(_ context.Context, option *domain.PollOption) error {
	copied := *option
	r.options[option.ID] = &copied
	return nil
}

func (r memOptionRepo) GetByID(_ context.Context, id string) (*domain.PollOption, error) {
	if o, ok := r.options[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, nil
}

func (r memOptionRepo) ListByPoll(_ context.Context, pollID string) ([]domain.PollOption, error) {
	var options []domain.PollOption
	for _, o := range r.options {
		if o.PollID == pollID {
			options = append(options, *o)
		}
	}
	sort.Slice(options, func(i, j int) bool { return options[i].ID < options[j].ID })
	return options, nil
}

// VoteRepository

type memVoteRepo struct{ *memStore }

func (r memVoteRepo) GetByUserAndPoll(_ context.Context, userID, pollID string) (*domain.VoteAction, error) {
	if v, ok := r.votes[pairKey(userID, pollID)]; ok {
		copied := *v
		return &copied, nil
	}
	return nil, nil
}

func (r memVoteRepo) Cast(_ context.Context, vote *domain.VoteAction) error {
	copied := *vote
	r.votes[pairKey(vote.UserID, vote.PollID)] = &copied
	r.options[vote.OptionID].Votes++
	return nil
}

func (r memVoteRepo) Retract(_ context.Context, vote *domain.VoteAction) error {
	delete(r.votes, pairKey(vote.UserID, vote.PollID))
	r.options[vote.OptionID].Votes--
	return nil
}

func (r memVoteRepo) Switch(_ context.Context, old *domain.VoteAction, vote *domain.VoteAction) error {
	delete(r.votes, pairKey(old.UserID, old.PollID))
	r.options[old.OptionID].Votes--
	copied := *vote
	r.votes[pairKey(vote.UserID, vote.PollID)] = &copied
	r.options[vote.OptionID].Votes++
	return nil
}

// LikeRepository

type memLikeRepo struct{ *memStore }

func (r memLikeRepo) GetByUserAndPoll(_ context.Context, userID, pollID string) (*domain.LikeAction, error) {
	if l, ok := r.likes[pairKey(userID, pollID)]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, nil
}

func (r memLikeRepo) Add(_ context.Context, like *domain.LikeAction) error {
	copied := *like
	r.likes[pairKey(like.UserID, like.PollID)] = &copied
	r.polls[like.PollID].Likes++
	return nil
}

func (r memLikeRepo) Remove(_ context.Context, like *domain.LikeAction) error {
	delete(r.likes, pairKey(like.UserID, like.PollID))
	r.polls[like.PollID].Likes--
	return nil
}

// Broadcaster

type recordingBroadcaster struct {
	events []domain.Event
}

func (b *recordingBroadcaster) Publish(event domain.Event) {
	b.events = append(b.events, event)
}

// fixtures

func seedPoll(store *memStore, creatorID string, optionTexts ...string) *domain.Poll {
	poll := &domain.Poll{ID: domain.NewID(), Text: "favorite option?", CreatorID: creatorID}
	store.polls[poll.ID] = poll
	for _, text := range optionTexts {
		option := &domain.PollOption{ID: domain.NewID(), PollID: poll.ID, Text: text}
		store.options[option.ID] = option
		poll.Options = append(poll.Options, *option)
	}
	return poll
}
