package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avvvet/match-services/internal/comm"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHubPublish(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	a, b := dial(t, srv), dial(t, srv)
	defer a.Close()
	defer b.Close()
	require.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 10*time.Millisecond)

	ev, err := comm.NewEvent(comm.PlayerRegistered, comm.PlayerData{ID: "p1", NickName: "Ana"})
	require.NoError(t, err)
	require.NoError(t, hub.Publish(ev))

	for _, c := range []*websocket.Conn{a, b} {
		c.SetReadDeadline(time.Now().Add(time.Second))
		var got comm.Event
		require.NoError(t, c.ReadJSON(&got))
		assert.Equal(t, comm.PlayerRegistered, got.Type)

		var data comm.PlayerData
		require.NoError(t, json.Unmarshal(got.Data, &data))
		assert.Equal(t, "Ana", data.NickName)
	}
}

func TestHubForgetsClosedClients(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	c := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	c.Close()
	require.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 10*time.Millisecond)
	assert.NoError(t, hub.Publish(comm.Event{Type: comm.GameDeleted}))
}

func TestHubPublishDoesNotWaitForSlowClients(t *testing.T) {
	hub := NewHub()
	// nothing drains this client, as if its socket had stalled
	slow := newClient("slow", nil)
	hub.connMap.Store(slow.id, slow)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i <= sendBufferSize; i++ {
			assert.NoError(t, hub.Publish(comm.Event{Type: comm.GameUpdated}))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a client that does not read")
	}

	assert.Zero(t, hub.Count())
	assert.Len(t, slow.send, sendBufferSize)
	assert.True(t, slow.closed)

	// publishing after the client is gone is a no-op
	assert.True(t, slow.trySend(comm.Event{Type: comm.GameDeleted}))
}
