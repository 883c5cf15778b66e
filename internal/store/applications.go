// internal/store/applications.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/storage"
)

// SubmitApplication creates a new application in status pending,
// assigns the next sequential id and notifies the submitting user.
func (s *Store) SubmitApplication(
	ctx context.Context,
	userID, userName, userEmail string,
	certType models.CertificateType,
	data map[string]string,
	documents []models.ApplicationDocument,
) (models.Application, error) {
	if !certType.IsValid() {
		return models.Application{}, fmt.Errorf("unknown certificate type %q", certType)
	}
	if err := models.ValidateApplicationData(certType, data); err != nil {
		return models.Application{}, err
	}

	s.mu.Lock()
	now := s.now()

	app := &models.Application{
		ID:          s.nextApplicationIDLocked(now),
		UserID:      userID,
		UserName:    userName,
		UserEmail:   userEmail,
		Type:        certType,
		Status:      models.ApplicationStatusPending,
		Data:        data,
		Documents:   documents,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	s.applications = append([]*models.Application{app}, s.applications...)

	notif := s.appendNotificationLocked(
		userID,
		"Application Submitted",
		fmt.Sprintf("Your %s application has been submitted successfully. ID: %s", certType.DisplayName(), app.ID),
		models.SeverityInfo,
		app.ID,
	)

	s.persistLocked(ctx, storage.KeyApplications, storage.KeyNotifications)
	result := app.Clone()
	s.mu.Unlock()

	s.publish(notif)
	return result, nil
}

// UpdateApplicationStatus transitions an application to the given
// status. When both comment and actorName are supplied the comment is
// recorded against the synthetic admin author. The owner is always
// notified; severity follows the new status.
func (s *Store) UpdateApplicationStatus(
	ctx context.Context,
	id string,
	status models.ApplicationStatus,
	comment, actorName string,
) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid application status %q", status)
	}

	s.mu.Lock()
	app := s.findApplicationLocked(id)
	if app == nil {
		s.mu.Unlock()
		return ErrNotFound
	}

	now := s.now()
	app.Status = status
	app.UpdatedAt = now

	if comment != "" && actorName != "" {
		app.Comments = append(app.Comments, models.ApplicationComment{
			ID:         uuid.NewString(),
			AuthorID:   "admin",
			AuthorName: actorName,
			Text:       comment,
			CreatedAt:  now,
		})
	}

	title, severity := applicationStatusNotice(status)
	message := fmt.Sprintf("Your %s application (%s) is now %s.", app.Type.DisplayName(), app.ID, status)
	if comment != "" {
		message += " Comment: " + comment
	}
	notif := s.appendNotificationLocked(app.UserID, title, message, severity, app.ID)

	s.persistLocked(ctx, storage.KeyApplications, storage.KeyNotifications)
	s.mu.Unlock()

	s.publish(notif)
	return nil
}

func applicationStatusNotice(status models.ApplicationStatus) (string, models.Severity) {
	switch status {
	case models.ApplicationStatusApproved:
		return "Application Approved", models.SeveritySuccess
	case models.ApplicationStatusRejected:
		return "Application Rejected", models.SeverityError
	default:
		return "Application Status Updated", models.SeverityInfo
	}
}

// AddApplicationComment appends a comment and bumps updatedAt.
func (s *Store) AddApplicationComment(ctx context.Context, applicationID, userID, userName, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app := s.findApplicationLocked(applicationID)
	if app == nil {
		return ErrNotFound
	}

	now := s.now()
	app.Comments = append(app.Comments, models.ApplicationComment{
		ID:         uuid.NewString(),
		AuthorID:   userID,
		AuthorName: userName,
		Text:       text,
		CreatedAt:  now,
	})
	app.UpdatedAt = now

	s.persistLocked(ctx, storage.KeyApplications)
	return nil
}

// AutoApproveStale transitions every pending application older than
// threshold to approved and notifies its owner. Idempotent: an
// application approved once never re-fires.
func (s *Store) AutoApproveStale(ctx context.Context, threshold time.Duration) int {
	s.mu.Lock()
	now := s.now()

	var approved []models.Notification
	for _, app := range s.applications {
		if !app.IsPending() || now.Sub(app.SubmittedAt) < threshold {
			continue
		}
		app.Status = models.ApplicationStatusApproved
		app.UpdatedAt = now
		approved = append(approved, s.appendNotificationLocked(
			app.UserID,
			"Application Approved",
			fmt.Sprintf("Your %s application (%s) has been approved!", app.Type.DisplayName(), app.ID),
			models.SeveritySuccess,
			app.ID,
		))
	}

	if len(approved) > 0 {
		s.persistLocked(ctx, storage.KeyApplications, storage.KeyNotifications)
	}
	s.mu.Unlock()

	s.publish(approved...)
	return len(approved)
}

// Applications returns every application, most recent first.
func (s *Store) Applications() []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Application, 0, len(s.applications))
	for _, app := range s.applications {
		out = append(out, app.Clone())
	}
	return out
}

// ApplicationsByUser returns the user's applications, preserving the
// most-recent-first order of the full collection.
func (s *Store) ApplicationsByUser(userID string) []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Application
	for _, app := range s.applications {
		if app.UserID == userID {
			out = append(out, app.Clone())
		}
	}
	return out
}

func (s *Store) ApplicationByID(id string) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app := s.findApplicationLocked(id)
	if app == nil {
		return models.Application{}, ErrNotFound
	}
	return app.Clone(), nil
}

func (s *Store) findApplicationLocked(id string) *models.Application {
	for _, app := range s.applications {
		if app.ID == id {
			return app
		}
	}
	return nil
}
