// internal/storage/storage.go
package storage

import (
	"context"
	"errors"
)

// Snapshot keys. Every collection is serialized as one JSON blob and
// fully rewritten on each mutation; there is no delta persistence.
const (
	KeyApplications         = "applications"
	KeyComplaints           = "complaints"
	KeyNotifications        = "notifications"
	KeyNotificationSettings = "notification_settings"
	KeyRegisteredUsers      = "registered_users"
	KeyAnnouncements        = "announcements"
)

var ErrKeyNotFound = errors.New("snapshot key not found")

// Snapshots reads and writes whole JSON blobs by key. Implementations
// back the store with a file directory, Redis, or MongoDB.
type Snapshots interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
