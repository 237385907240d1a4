package integration

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickpoll/api/internal/core/domain"
)

func dialWS(t *testing.T, app *TestApp) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(app.Server.URL, "http://", "ws://", 1) + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) domain.Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var event domain.Event
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestWebsocketReceivesBroadcasts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	conn := dialWS(t, app)
	defer conn.Close()

	token, _ := registerUser(t, app)
	poll := createPoll(t, app, token, "tabs or spaces?")

	event := readEvent(t, conn)
	assert.Equal(t, domain.EventPollCreated, event.Type)
	require.NotNil(t, event.Poll)
	assert.Equal(t, poll.ID, event.Poll.ID)

	resp, _ := toggleLike(t, app, token, poll.ID)
	require.Equal(t, 200, resp.StatusCode)

	event = readEvent(t, conn)
	assert.Equal(t, domain.EventPollLiked, event.Type)
	require.NotNil(t, event.Poll)
	assert.Equal(t, int64(1), event.Poll.Likes)
}

func TestWebsocketMultipleSubscribers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	first := dialWS(t, app)
	defer first.Close()
	second := dialWS(t, app)
	defer second.Close()

	token, _ := registerUser(t, app)
	createPoll(t, app, token, "does everyone hear this?")

	for _, conn := range []*websocket.Conn{first, second} {
		event := readEvent(t, conn)
		assert.Equal(t, domain.EventPollCreated, event.Type)
	}
}

func TestWebsocketDisconnectEvictsConnection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	conn := dialWS(t, app)
	require.Eventually(t, func() bool { return app.Hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return app.Hub.Len() == 0 }, time.Second, 10*time.Millisecond)
}
