// internal/store/announcements.go
package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/storage"
)

// CreateAnnouncement stores a municipal notice. Publishing fans out an
// info notification to every registered user while the announcements
// toggle is on.
func (s *Store) CreateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	if !a.Status.IsValid() {
		a.Status = models.AnnouncementStatusDraft
	}

	s.mu.Lock()
	now := s.now()

	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now

	var published []models.Notification
	if a.IsPublished() {
		a.PublishedAt = &now
		published = s.announceLocked(a)
	}

	copied := a
	s.announcements = append([]*models.Announcement{&copied}, s.announcements...)

	keys := []string{storage.KeyAnnouncements}
	if len(published) > 0 {
		keys = append(keys, storage.KeyNotifications)
	}
	s.persistLocked(ctx, keys...)
	s.mu.Unlock()

	s.publish(published...)
	return a, nil
}

// UpdateAnnouncement replaces the editable fields of a notice. A draft
// transitioning to published gets a publication timestamp and triggers
// the fan-out.
func (s *Store) UpdateAnnouncement(ctx context.Context, updated models.Announcement) error {
	if !updated.Status.IsValid() {
		return fmt.Errorf("invalid announcement status %q", updated.Status)
	}

	s.mu.Lock()
	var existing *models.Announcement
	for _, a := range s.announcements {
		if a.ID == updated.ID {
			existing = a
			break
		}
	}
	if existing == nil {
		s.mu.Unlock()
		return ErrNotFound
	}

	now := s.now()
	wasPublished := existing.IsPublished()

	existing.Title = updated.Title
	existing.TitleNe = updated.TitleNe
	existing.Content = updated.Content
	existing.ContentNe = updated.ContentNe
	existing.Category = updated.Category
	existing.Priority = updated.Priority
	existing.Status = updated.Status
	existing.UpdatedAt = now

	var published []models.Notification
	if existing.IsPublished() && !wasPublished {
		if existing.PublishedAt == nil {
			existing.PublishedAt = &now
		}
		published = s.announceLocked(*existing)
	}

	keys := []string{storage.KeyAnnouncements}
	if len(published) > 0 {
		keys = append(keys, storage.KeyNotifications)
	}
	s.persistLocked(ctx, keys...)
	s.mu.Unlock()

	s.publish(published...)
	return nil
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.announcements {
		if a.ID == id {
			s.announcements = append(s.announcements[:i], s.announcements[i+1:]...)
			s.persistLocked(ctx, storage.KeyAnnouncements)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) announceLocked(a models.Announcement) []models.Notification {
	if !s.settings.Announcements {
		return nil
	}

	userIDs := s.userIDsLocked()
	sort.Strings(userIDs) // deterministic fan-out order
	out := make([]models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		out = append(out, s.appendNotificationLocked(
			userID, "New Announcement", a.Title, models.SeverityInfo, "",
		))
	}
	return out
}

// Announcements returns every notice, including drafts.
func (s *Store) Announcements() []models.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		out = append(out, *a)
	}
	return out
}

// PublishedAnnouncements returns the notices visible to citizens.
func (s *Store) PublishedAnnouncements() []models.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Announcement
	for _, a := range s.announcements {
		if a.IsPublished() {
			out = append(out, *a)
		}
	}
	return out
}

func (s *Store) AnnouncementByID(id string) (models.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.announcements {
		if a.ID == id {
			return *a, nil
		}
	}
	return models.Announcement{}, ErrNotFound
}
