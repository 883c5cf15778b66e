package ws

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newHubServer upgrades every request and hands the connection to the
// hub as user-1. served is closed once ServeClient has returned.
func newHubServer(t *testing.T, hub *Hub) (*httptest.Server, chan struct{}) {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	served := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.ServeClient(conn, "user-1")
		close(served)
	}))
	return srv, served
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHubDeliversToOwner(t *testing.T) {
	hub := NewHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv, _ := newHubServer(t, hub)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	// wait until the register message has been processed
	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectionCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 1, hub.ConnectionCount())

	hub.Push(models.Notification{
		ID:       "n1",
		UserID:   "user-1",
		Title:    "Application Approved",
		Severity: models.SeveritySuccess,
	})

	// notifications addressed to someone else never reach this client
	hub.Push(models.Notification{ID: "n2", UserID: "user-2", Title: "Other"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope struct {
		Type string              `json:"type"`
		Data models.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(frame, &envelope))
	require.Equal(t, "notification", envelope.Type)
	require.Equal(t, "n1", envelope.Data.ID)
	require.Equal(t, "Application Approved", envelope.Data.Title)
}

func TestServeClientAfterShutdownReturns(t *testing.T) {
	hub := NewHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	cancel()
	select {
	case <-hub.done:
	case <-time.After(time.Second):
		t.Fatal("hub did not shut down")
	}

	srv, served := newHubServer(t, hub)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	// the handler must not hang on a hub that no longer drains register
	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("ServeClient blocked after hub shutdown")
	}
	require.Equal(t, 0, hub.ConnectionCount())
}
