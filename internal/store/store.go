// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/storage"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email is already registered")
)

// Store is the single source of truth for applications, complaints,
// notifications, announcements and registered users. All mutations are
// serialized behind one mutex and followed by a full snapshot write of
// the affected collection; readers get copies of the committed state.
type Store struct {
	mu        sync.Mutex
	log       logrus.FieldLogger
	snapshots storage.Snapshots
	now       func() time.Time

	applications  []*models.Application // most-recent-first
	complaints    []*models.Complaint   // most-recent-first
	notifications []*models.Notification
	announcements []*models.Announcement
	settings      models.NotificationSettings
	users         map[string]*models.User // keyed by lowercase email

	appSeq     int
	appSeqYear int
	cmpSeq     int
	cmpSeqYear int

	appsSnapshotFound bool

	listeners []func(models.Notification)
}

func New(snapshots storage.Snapshots, log logrus.FieldLogger) *Store {
	return &Store{
		log:       log,
		snapshots: snapshots,
		now:       time.Now,
		settings:  models.DefaultNotificationSettings(),
		users:     make(map[string]*models.User),
	}
}

// Load reads every snapshot into memory. Absent keys are fine on a
// fresh installation; anything else is a startup failure.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := loadSnapshot(ctx, s.snapshots, storage.KeyApplications, &s.applications)
	if err != nil {
		return err
	}
	s.appsSnapshotFound = found

	if _, err := loadSnapshot(ctx, s.snapshots, storage.KeyComplaints, &s.complaints); err != nil {
		return err
	}
	if _, err := loadSnapshot(ctx, s.snapshots, storage.KeyNotifications, &s.notifications); err != nil {
		return err
	}
	if _, err := loadSnapshot(ctx, s.snapshots, storage.KeyAnnouncements, &s.announcements); err != nil {
		return err
	}
	if _, err := loadSnapshot(ctx, s.snapshots, storage.KeyNotificationSettings, &s.settings); err != nil {
		return err
	}

	var users map[string]*models.User
	if found, err := loadSnapshot(ctx, s.snapshots, storage.KeyRegisteredUsers, &users); err != nil {
		return err
	} else if found {
		s.users = users
	}

	s.recountSequencesLocked()
	return nil
}

func loadSnapshot[T any](ctx context.Context, snapshots storage.Snapshots, key string, dst *T) (bool, error) {
	data, err := snapshots.Load(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// Subscribe registers a listener invoked for every created
// notification, after the mutation has been committed. Listeners must
// not call back into the store.
func (s *Store) Subscribe(fn func(models.Notification)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) publish(notifications ...models.Notification) {
	s.mu.Lock()
	listeners := make([]func(models.Notification), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, n := range notifications {
		for _, fn := range listeners {
			fn(n)
		}
	}
}

// persistLocked serializes the collection behind key and writes it as a
// whole. A persistence failure is logged and swallowed: the in-memory
// state stays authoritative for the session.
func (s *Store) persistLocked(ctx context.Context, keys ...string) {
	for _, key := range keys {
		var payload any
		switch key {
		case storage.KeyApplications:
			payload = s.applications
		case storage.KeyComplaints:
			payload = s.complaints
		case storage.KeyNotifications:
			payload = s.notifications
		case storage.KeyAnnouncements:
			payload = s.announcements
		case storage.KeyNotificationSettings:
			payload = s.settings
		case storage.KeyRegisteredUsers:
			payload = s.users
		default:
			s.log.WithField("key", key).Warn("Unknown snapshot key, skipping persist")
			continue
		}

		data, err := json.Marshal(payload)
		if err != nil {
			s.log.WithError(err).WithField("key", key).Warn("Failed to encode snapshot")
			continue
		}
		if err := s.snapshots.Save(ctx, key, data); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("Failed to write snapshot, keeping in-memory state")
		}
	}
}

// recountSequencesLocked recovers the running id counters from the
// loaded collections so newly issued ids keep increasing.
func (s *Store) recountSequencesLocked() {
	year := s.now().Year()
	s.appSeqYear, s.appSeq = year, 0
	s.cmpSeqYear, s.cmpSeq = year, 0

	for _, app := range s.applications {
		if n, ok := parseSequentialID(app.ID, "APP", year); ok && n > s.appSeq {
			s.appSeq = n
		}
	}
	for _, c := range s.complaints {
		if n, ok := parseSequentialID(c.ID, "CMP", year); ok && n > s.cmpSeq {
			s.cmpSeq = n
		}
	}
}

// parseSequentialID extracts NNN from ids shaped like PREFIX-YEAR-NNN.
func parseSequentialID(id, prefix string, year int) (int, bool) {
	var gotYear, seq int
	pattern := prefix + "-%d-%d"
	if _, err := fmt.Sscanf(id, pattern, &gotYear, &seq); err != nil {
		return 0, false
	}
	if gotYear != year {
		return 0, false
	}
	return seq, true
}

func (s *Store) nextApplicationIDLocked(now time.Time) string {
	if now.Year() != s.appSeqYear {
		s.appSeqYear = now.Year()
		s.appSeq = 0
	}
	s.appSeq++
	return fmt.Sprintf("APP-%d-%03d", s.appSeqYear, s.appSeq)
}

func (s *Store) nextComplaintIDLocked(now time.Time) string {
	if now.Year() != s.cmpSeqYear {
		s.cmpSeqYear = now.Year()
		s.cmpSeq = 0
	}
	s.cmpSeq++
	return fmt.Sprintf("CMP-%d-%03d", s.cmpSeqYear, s.cmpSeq)
}
