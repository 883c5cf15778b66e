// internal/store/complaints.go
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/storage"
)

// SubmitComplaint registers a citizen grievance and notifies the
// complainant.
func (s *Store) SubmitComplaint(
	ctx context.Context,
	userID, userName, title, category, description, location string,
) (models.Complaint, error) {
	if !models.IsComplaintCategory(category) {
		return models.Complaint{}, fmt.Errorf("unknown complaint category %q", category)
	}

	s.mu.Lock()
	now := s.now()

	complaint := &models.Complaint{
		ID:          s.nextComplaintIDLocked(now),
		UserID:      userID,
		UserName:    userName,
		Title:       title,
		Category:    category,
		Description: description,
		Location:    location,
		Status:      models.ComplaintStatusPending,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	s.complaints = append([]*models.Complaint{complaint}, s.complaints...)

	notif := s.appendNotificationLocked(
		userID,
		"Complaint Submitted",
		fmt.Sprintf("Your complaint has been registered. You can track its status here. ID: %s", complaint.ID),
		models.SeverityInfo,
		complaint.ID,
	)

	s.persistLocked(ctx, storage.KeyComplaints, storage.KeyNotifications)
	result := complaint.Clone()
	s.mu.Unlock()

	s.publish(notif)
	return result, nil
}

// UpdateComplaintStatus transitions a complaint, optionally recording
// an official comment, and notifies the complainant.
func (s *Store) UpdateComplaintStatus(
	ctx context.Context,
	id string,
	status models.ComplaintStatus,
	comment, actorName string,
) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid complaint status %q", status)
	}

	s.mu.Lock()
	complaint := s.findComplaintLocked(id)
	if complaint == nil {
		s.mu.Unlock()
		return ErrNotFound
	}

	now := s.now()
	complaint.Status = status
	complaint.UpdatedAt = now

	if comment != "" && actorName != "" {
		complaint.Comments = append(complaint.Comments, models.ApplicationComment{
			ID:         uuid.NewString(),
			AuthorID:   "admin",
			AuthorName: actorName,
			Text:       comment,
			CreatedAt:  now,
		})
	}

	title, severity := complaintStatusNotice(status)
	message := fmt.Sprintf("Your complaint %s is now %s.", complaint.ID, status)
	if comment != "" {
		message += " Comment: " + comment
	}
	notif := s.appendNotificationLocked(complaint.UserID, title, message, severity, complaint.ID)

	s.persistLocked(ctx, storage.KeyComplaints, storage.KeyNotifications)
	s.mu.Unlock()

	s.publish(notif)
	return nil
}

func complaintStatusNotice(status models.ComplaintStatus) (string, models.Severity) {
	switch status {
	case models.ComplaintStatusResolved:
		return "Complaint Resolved", models.SeveritySuccess
	case models.ComplaintStatusRejected:
		return "Complaint Rejected", models.SeverityError
	default:
		return "Complaint Status Updated", models.SeverityInfo
	}
}

// Complaints returns every complaint, most recent first.
func (s *Store) Complaints() []models.Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Complaint, 0, len(s.complaints))
	for _, c := range s.complaints {
		out = append(out, c.Clone())
	}
	return out
}

func (s *Store) ComplaintsByUser(userID string) []models.Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Complaint
	for _, c := range s.complaints {
		if c.UserID == userID {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (s *Store) ComplaintByID(id string) (models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findComplaintLocked(id)
	if c == nil {
		return models.Complaint{}, ErrNotFound
	}
	return c.Clone(), nil
}

func (s *Store) findComplaintLocked(id string) *models.Complaint {
	for _, c := range s.complaints {
		if c.ID == id {
			return c
		}
	}
	return nil
}
