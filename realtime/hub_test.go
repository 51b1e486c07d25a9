package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"transit-dashboard/model"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls atomic.Int64
	err   error
}

func (s *countingSource) RealTimeStats(context.Context) (*model.RealTimeStats, error) {
	n := s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &model.RealTimeStats{Users: &model.UserStats{Total: model.Int64(n)}}, nil
}

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_InitialPushAndBroadcast(t *testing.T) {
	src := &countingSource{}
	h := NewHub(src, time.Hour, time.Second)
	conn := dial(t, h)

	first := readMessage(t, conn)
	assert.Equal(t, MessageTypeStats, first.Type)
	assert.Equal(t, int64(1), *first.Data.Users.Total)
	assert.Equal(t, 1, h.ClientCount())

	h.Broadcast(&model.RealTimeStats{Users: &model.UserStats{Total: model.Int64(42)}})
	second := readMessage(t, conn)
	assert.Equal(t, int64(42), *second.Data.Users.Total)
}

func TestHub_RunTicksAndStops(t *testing.T) {
	src := &countingSource{}
	h := NewHub(src, 20*time.Millisecond, time.Second)
	conn := dial(t, h)
	readMessage(t, conn)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	ticked := readMessage(t, conn)
	assert.GreaterOrEqual(t, *ticked.Data.Users.Total, int64(2))

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Zero(t, h.ClientCount())

	// the hub closes the connection on shutdown
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	h := NewHub(&countingSource{}, time.Hour, time.Second)
	conn := dial(t, h)
	readMessage(t, conn)
	require.Equal(t, 1, h.ClientCount())

	conn.Close()
	assert.Eventually(t, func() bool { return h.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_DropsSlowClients(t *testing.T) {
	h := NewHub(&countingSource{}, time.Hour, time.Second)
	slow := &client{remote: "slow", send: make(chan []byte, 1)}
	fast := &client{remote: "fast", send: make(chan []byte, 1)}
	h.clients[slow] = struct{}{}
	h.clients[fast] = struct{}{}
	slow.send <- []byte("pending")

	h.Broadcast(&model.RealTimeStats{})

	assert.Equal(t, 1, h.ClientCount())
	assert.Contains(t, h.clients, fast)
	assert.Len(t, fast.send, 1)

	<-slow.send
	_, open := <-slow.send
	assert.False(t, open)
}

func TestHub_FailedFetchSkipsInitialPush(t *testing.T) {
	h := NewHub(&countingSource{err: errors.New("db down")}, time.Hour, time.Second)
	conn := dial(t, h)

	assert.Eventually(t, func() bool { return h.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
