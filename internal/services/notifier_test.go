package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
)

type capture struct {
	mu       sync.Mutex
	payloads []webhookPayload
}

func (c *capture) handler(w http.ResponseWriter, r *http.Request) {
	var p webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	c.mu.Lock()
	c.payloads = append(c.payloads, p)
	c.mu.Unlock()
	w.WriteHeader(http.StatusAccepted)
}

func (c *capture) wait(t *testing.T, n int) []webhookPayload {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		got := len(c.payloads)
		c.mu.Unlock()
		if got >= n {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.payloads, n)
	return append([]webhookPayload(nil), c.payloads...)
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNotifierDeliversPerEnabledChannel(t *testing.T) {
	c := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(c.handler))
	defer srv.Close()

	settings := models.NotificationSettings{
		EmailNotifications: true,
		SMSNotifications:   true,
		ApplicationUpdates: true,
		Announcements:      true,
	}
	n := NewNotifier(srv.URL, func() models.NotificationSettings { return settings }, discardLogger())

	n.Notify(models.Notification{
		UserID:        "user-1",
		Title:         "Application Approved",
		Message:       "Your Birth Certificate application (APP-2026-001) has been approved!",
		Severity:      models.SeveritySuccess,
		ApplicationID: "APP-2026-001",
	})

	payloads := c.wait(t, 2)
	channels := map[string]bool{}
	for _, p := range payloads {
		channels[p.Channel] = true
		require.Equal(t, "user-1", p.UserID)
		require.Equal(t, "APP-2026-001", p.ApplicationID)
	}
	require.True(t, channels["email"])
	require.True(t, channels["sms"])
}

func TestNotifierHonorsApplicationUpdatesToggle(t *testing.T) {
	c := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(c.handler))
	defer srv.Close()

	settings := models.NotificationSettings{
		EmailNotifications: true,
		ApplicationUpdates: false,
	}
	n := NewNotifier(srv.URL, func() models.NotificationSettings { return settings }, discardLogger())

	n.Notify(models.Notification{
		UserID:        "user-1",
		Title:         "Application Submitted",
		ApplicationID: "APP-2026-001",
	})

	// announcement-style notifications still go out
	n.Notify(models.Notification{
		UserID: "user-1",
		Title:  "New Announcement",
	})

	payloads := c.wait(t, 1)
	require.Equal(t, "New Announcement", payloads[0].Title)
}

func TestNotifierSkipsWithoutWebhookURL(t *testing.T) {
	n := NewNotifier("", models.DefaultNotificationSettings, discardLogger())

	// must not panic or block
	n.Notify(models.Notification{UserID: "user-1", Title: "Application Submitted"})
}
