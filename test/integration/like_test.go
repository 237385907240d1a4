package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickpoll/api/internal/core/domain"
)

func toggleLike(t *testing.T, app *TestApp, token, pollID string) (*http.Response, domain.Poll) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/polls/"+pollID+"/like", token, nil)
	var poll domain.Poll
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&poll))
	}
	resp.Body.Close()
	return resp, poll
}

func likeActionCount(t *testing.T, app *TestApp, pollID string) int {
	t.Helper()
	var count int
	err := app.DB.QueryRow("SELECT COUNT(*) FROM like_actions WHERE poll_id = $1", pollID).Scan(&count)
	require.NoError(t, err)
	return count
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	token, _ := registerUser(t, app)
	poll := createPoll(t, app, token, "tabs or spaces?")

	resp, liked := toggleLike(t, app, token, poll.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), liked.Likes)
	assert.Equal(t, 1, likeActionCount(t, app, poll.ID))

	resp, unliked := toggleLike(t, app, token, poll.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(0), unliked.Likes)
	assert.Equal(t, 0, likeActionCount(t, app, poll.ID))
}

func TestLikesAccumulateAcrossUsers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	creatorToken, _ := registerUser(t, app)
	otherToken, _ := registerUser(t, app)
	poll := createPoll(t, app, creatorToken, "tabs or spaces?")

	resp, _ := toggleLike(t, app, creatorToken, poll.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, liked := toggleLike(t, app, otherToken, poll.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, int64(2), liked.Likes)
	assert.Equal(t, 2, likeActionCount(t, app, poll.ID))
}

func TestLikeErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	token, _ := registerUser(t, app)

	resp, _ := toggleLike(t, app, token, domain.NewID())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/polls/not-a-valid-id/like", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
