// internal/store/notifications.go
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/storage"
)

// appendNotificationLocked creates a notification at the front of the
// collection. Callers hold the store mutex and are responsible for
// persisting and publishing.
func (s *Store) appendNotificationLocked(userID, title, message string, severity models.Severity, applicationID string) models.Notification {
	notif := &models.Notification{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         title,
		Message:       message,
		Severity:      severity,
		ApplicationID: applicationID,
		CreatedAt:     s.now(),
	}
	s.notifications = append([]*models.Notification{notif}, s.notifications...)
	return *notif
}

// AddNotification records an ad hoc notification for a user. The same
// primitive backs submission and status-change notices internally.
func (s *Store) AddNotification(ctx context.Context, userID, title, message string, severity models.Severity, applicationID string) models.Notification {
	if !severity.IsValid() {
		severity = models.SeverityInfo
	}

	s.mu.Lock()
	notif := s.appendNotificationLocked(userID, title, message, severity, applicationID)
	s.persistLocked(ctx, storage.KeyNotifications)
	s.mu.Unlock()

	s.publish(notif)
	return notif
}

// NotificationsByUser returns the user's notifications, most recent
// first.
func (s *Store) NotificationsByUser(userID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out
}

func (s *Store) UnreadCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count
}

// MarkNotificationRead flips the read flag of one notification. The
// notification must belong to userID; anyone else gets ErrNotFound, so
// ids do not leak across users.
func (s *Store) MarkNotificationRead(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.ID == id && n.UserID == userID {
			if !n.Read {
				n.Read = true
				s.persistLocked(ctx, storage.KeyNotifications)
			}
			return nil
		}
	}
	return ErrNotFound
}

// MarkAllNotificationsRead marks every unread notification of the user
// as read and returns how many were updated. Notifications of other
// users are untouched.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			updated++
		}
	}
	if updated > 0 {
		s.persistLocked(ctx, storage.KeyNotifications)
	}
	return updated
}

func (s *Store) Settings() models.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings shallow-merges the patch into the settings record and
// returns the result.
func (s *Store) UpdateSettings(ctx context.Context, patch models.NotificationSettingsPatch) models.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = patch.Apply(s.settings)
	s.persistLocked(ctx, storage.KeyNotificationSettings)
	return s.settings
}
