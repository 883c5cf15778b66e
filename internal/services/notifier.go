// internal/services/notifier.go
package services

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
)

// Notifier forwards notifications to an external email/SMS gateway via
// a webhook. Delivery is fire-and-forget: the store never waits on it
// and failures are only logged.
type Notifier struct {
	client     *resty.Client
	webhookURL string
	settings   func() models.NotificationSettings
	log        logrus.FieldLogger
}

type webhookPayload struct {
	Channel       string          `json:"channel"` // email or sms
	UserID        string          `json:"user_id"`
	Title         string          `json:"title"`
	Message       string          `json:"message"`
	Severity      models.Severity `json:"severity"`
	ApplicationID string          `json:"application_id,omitempty"`
}

func NewNotifier(webhookURL string, settings func() models.NotificationSettings, log logrus.FieldLogger) *Notifier {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(0) // nothing is retried anywhere in this system

	return &Notifier{
		client:     client,
		webhookURL: webhookURL,
		settings:   settings,
		log:        log,
	}
}

// Notify dispatches the notification on every channel the current
// settings allow. Safe to register as a store listener.
func (n *Notifier) Notify(notif models.Notification) {
	if n.webhookURL == "" {
		return
	}

	settings := n.settings()
	if notif.ApplicationID != "" && !settings.ApplicationUpdates {
		return
	}

	var channels []string
	if settings.EmailNotifications {
		channels = append(channels, "email")
	}
	if settings.SMSNotifications {
		channels = append(channels, "sms")
	}

	for _, channel := range channels {
		payload := webhookPayload{
			Channel:       channel,
			UserID:        notif.UserID,
			Title:         notif.Title,
			Message:       notif.Message,
			Severity:      notif.Severity,
			ApplicationID: notif.ApplicationID,
		}

		go func() {
			resp, err := n.client.R().
				SetHeader("Content-Type", "application/json").
				SetBody(payload).
				Post(n.webhookURL)
			if err != nil {
				n.log.WithError(err).WithField("channel", payload.Channel).Warn("Failed to deliver notification webhook")
				return
			}
			if resp.IsError() {
				n.log.WithFields(logrus.Fields{
					"channel": payload.Channel,
					"status":  resp.StatusCode(),
				}).Warn("Notification webhook rejected")
			}
		}()
	}
}
