// internal/models/notification.go
package models

import "time"

// Severity tags a notification for presentation purposes.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// Notification is a user-facing event record. Immutable once created
// except for the read flag.
type Notification struct {
	ID            string    `json:"id" bson:"_id"`
	UserID        string    `json:"user_id" bson:"user_id"`
	Title         string    `json:"title" bson:"title"`
	Message       string    `json:"message" bson:"message"`
	Severity      Severity  `json:"severity" bson:"severity"`
	Read          bool      `json:"read" bson:"read"`
	ApplicationID string    `json:"application_id,omitempty" bson:"application_id,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// NotificationSettings holds the per-installation delivery toggles.
type NotificationSettings struct {
	EmailNotifications bool `json:"email_notifications" bson:"email_notifications"`
	SMSNotifications   bool `json:"sms_notifications" bson:"sms_notifications"`
	ApplicationUpdates bool `json:"application_updates" bson:"application_updates"`
	Announcements      bool `json:"announcements" bson:"announcements"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		EmailNotifications: true,
		SMSNotifications:   false,
		ApplicationUpdates: true,
		Announcements:      true,
	}
}

// NotificationSettingsPatch is a partial settings update; nil fields
// are left unchanged (shallow merge).
type NotificationSettingsPatch struct {
	EmailNotifications *bool `json:"email_notifications,omitempty"`
	SMSNotifications   *bool `json:"sms_notifications,omitempty"`
	ApplicationUpdates *bool `json:"application_updates,omitempty"`
	Announcements      *bool `json:"announcements,omitempty"`
}

// Apply merges the patch into the settings record.
func (p NotificationSettingsPatch) Apply(s NotificationSettings) NotificationSettings {
	if p.EmailNotifications != nil {
		s.EmailNotifications = *p.EmailNotifications
	}
	if p.SMSNotifications != nil {
		s.SMSNotifications = *p.SMSNotifications
	}
	if p.ApplicationUpdates != nil {
		s.ApplicationUpdates = *p.ApplicationUpdates
	}
	if p.Announcements != nil {
		s.Announcements = *p.Announcements
	}
	return s
}
