package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickpoll/api/internal/core/domain"
)

func newPollFixture() (*memStore, *recordingBroadcaster, *pollService) {
	store := newMemStore()
	b := &recordingBroadcaster{}
	svc := NewPollService(memPollRepo{store}, memOptionRepo{store}, b).(*pollService)
	return store, b, svc
}

func TestCreatePoll(t *testing.T) {
	store, b, svc := newPollFixture()
	creatorID := domain.NewID()

	poll, err := svc.Create(context.Background(), creatorID, "tabs or spaces?")
	require.NoError(t, err)

	assert.Len(t, poll.ID, 24)
	assert.Equal(t, creatorID, poll.CreatorID)
	assert.Equal(t, int64(0), poll.Likes)
	assert.Contains(t, store.polls, poll.ID)

	require.Len(t, b.events, 1)
	assert.Equal(t, domain.EventPollCreated, b.events[0].Type)
}

func TestCreatePollTextBounds(t *testing.T) {
	_, _, svc := newPollFixture()

	_, err := svc.Create(context.Background(), domain.NewID(), "ab")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), domain.NewID(), strings.Repeat("x", 301))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetPollIncludesOptions(t *testing.T) {
	store, _, svc := newPollFixture()
	seeded := seedPoll(store, domain.NewID(), "Go", "Rust")

	poll, err := svc.Get(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Len(t, poll.Options, 2)

	_, err = svc.Get(context.Background(), domain.NewID())
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestAddOptionCreatorOnly(t *testing.T) {
	store, b, svc := newPollFixture()
	creatorID := domain.NewID()
	poll := seedPoll(store, creatorID)

	option, err := svc.AddOption(context.Background(), creatorID, poll.ID, "Go")
	require.NoError(t, err)
	assert.Equal(t, poll.ID, option.PollID)
	assert.Equal(t, int64(0), option.Votes)

	_, err = svc.AddOption(context.Background(), domain.NewID(), poll.ID, "Rust")
	assert.ErrorIs(t, err, domain.ErrNotCreator)

	// Only the successful creation was broadcast.
	require.Len(t, b.events, 1)
	assert.Equal(t, domain.EventOptionCreated, b.events[0].Type)
}

func TestAddOptionValidation(t *testing.T) {
	store, _, svc := newPollFixture()
	creatorID := domain.NewID()
	poll := seedPoll(store, creatorID)

	_, err := svc.AddOption(context.Background(), creatorID, poll.ID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddOption(context.Background(), creatorID, poll.ID, strings.Repeat("x", 101))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddOption(context.Background(), creatorID, domain.NewID(), "Go")
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}
