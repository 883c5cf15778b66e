// internal/store/seed.go
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/storage"
)

type demoAccount struct {
	name     string
	email    string
	password string
	role     models.UserRole
}

var demoAccounts = []demoAccount{
	{"Demo Citizen", "demo.citizen@likhugaupalika.gov.np", "Demo1234", models.RoleCitizen},
	{"Admin User", "admin@likhugaupalika.gov.np", "Admin1234", models.RoleAdmin},
	{"Staff User", "staff@likhugaupalika.gov.np", "Staff1234", models.RoleStaff},
}

// SeedDemoData populates a fresh installation with the demo dataset:
// three accounts, a handful of applications and complaints in various
// lifecycle states, and a few published announcements. It is a no-op
// when an applications snapshot was found at load time.
func (s *Store) SeedDemoData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.appsSnapshotFound {
		return nil
	}

	now := s.now()

	for i, acc := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}
		s.users[strings.ToLower(acc.email)] = &models.User{
			ID:           fmt.Sprintf("%d", i+1),
			Name:         acc.name,
			Email:        acc.email,
			PasswordHash: string(hash),
			Role:         acc.role,
			CreatedAt:    now,
		}
	}

	citizen := s.users[strings.ToLower(demoAccounts[0].email)]
	s.seedApplicationsLocked(now, citizen)
	s.seedComplaintsLocked(now, citizen)
	s.seedAnnouncementsLocked(now)

	s.persistLocked(ctx,
		storage.KeyRegisteredUsers,
		storage.KeyApplications,
		storage.KeyComplaints,
		storage.KeyAnnouncements,
		storage.KeyNotificationSettings,
	)
	s.log.WithFields(logrus.Fields{
		"users":         len(s.users),
		"applications":  len(s.applications),
		"complaints":    len(s.complaints),
		"announcements": len(s.announcements),
	}).Info("Seeded demo dataset")
	return nil
}

func (s *Store) seedApplicationsLocked(now time.Time, owner *models.User) {
	type demoApp struct {
		certType models.CertificateType
		status   models.ApplicationStatus
		age      time.Duration
		data     map[string]string
	}

	// Oldest first so prepending yields most-recent-first order.
	apps := []demoApp{
		{models.CertificateResidency, models.ApplicationStatusApproved, 26 * time.Hour, map[string]string{
			"applicantName":  "Krishna Lal Maharjan",
			"currentAddress": "Ward 4, Likhu Gaupalika",
			"residingSince":  "2015-04-14",
			"purpose":        "Bank",
			"contactNumber":  "9841000004",
		}},
		{models.CertificateDeath, models.ApplicationStatusApproved, 24 * time.Hour, map[string]string{
			"deceasedName":      "Gita Devi Shrestha",
			"dateOfDeath":       "2025-01-02",
			"placeOfDeath":      "District Hospital",
			"causeOfDeath":      "Natural causes",
			"applicantRelation": "Daughter",
			"address":           "Ward 2, Likhu Gaupalika",
		}},
		{models.CertificateCitizenship, models.ApplicationStatusInProgress, 6 * time.Hour, map[string]string{
			"applicantName":    "Hari Bahadur Tamang",
			"dateOfBirth":      "2007-03-21",
			"fatherName":       "Dil Bahadur Tamang",
			"motherName":       "Maya Tamang",
			"permanentAddress": "Ward 5, Likhu Gaupalika",
			"reason":           "First citizenship certificate",
		}},
		{models.CertificateMarriage, models.ApplicationStatusApproved, 4 * time.Hour, map[string]string{
			"groomName":     "Suresh KC",
			"brideName":     "Sita Kumari KC",
			"marriageDate":  "2025-01-05",
			"marriagePlace": "Likhu Gaupalika Ward Office",
			"witness1":      "Ram Prasad Sharma",
			"witness2":      "Hari Bahadur Tamang",
		}},
		{models.CertificateBirth, models.ApplicationStatusPending, 2 * time.Hour, map[string]string{
			"childName":    "Aarav Sharma",
			"dateOfBirth":  "2025-01-06",
			"placeOfBirth": "District Hospital",
			"fatherName":   "Ram Prasad Sharma",
			"motherName":   "Sunita Sharma",
			"address":      "Ward 3, Likhu Gaupalika",
		}},
	}

	for _, d := range apps {
		submitted := now.Add(-d.age)
		app := &models.Application{
			ID:          s.nextApplicationIDLocked(now),
			UserID:      owner.ID,
			UserName:    owner.Name,
			UserEmail:   owner.Email,
			Type:        d.certType,
			Status:      d.status,
			Data:        d.data,
			SubmittedAt: submitted,
			UpdatedAt:   submitted,
		}
		if d.status != models.ApplicationStatusPending {
			app.UpdatedAt = submitted.Add(time.Hour)
		}
		s.applications = append([]*models.Application{app}, s.applications...)
	}
}

func (s *Store) seedComplaintsLocked(now time.Time, owner *models.User) {
	type demoComplaint struct {
		title    string
		category string
		location string
		status   models.ComplaintStatus
		age      time.Duration
	}

	complaints := []demoComplaint{
		{"Street light not working", "Electricity", "Ward 1", models.ComplaintStatusResolved, 72 * time.Hour},
		{"Water supply issue", "Water Supply", "Ward 2", models.ComplaintStatusPending, 48 * time.Hour},
		{"Road repair needed in Ward 3", "Infrastructure", "Ward 3", models.ComplaintStatusInProgress, 24 * time.Hour},
	}

	for _, d := range complaints {
		submitted := now.Add(-d.age)
		complaint := &models.Complaint{
			ID:          s.nextComplaintIDLocked(now),
			UserID:      owner.ID,
			UserName:    owner.Name,
			Title:       d.title,
			Category:    d.category,
			Description: d.title,
			Location:    d.location,
			Status:      d.status,
			SubmittedAt: submitted,
			UpdatedAt:   submitted,
		}
		s.complaints = append([]*models.Complaint{complaint}, s.complaints...)
	}
}

func (s *Store) seedAnnouncementsLocked(now time.Time) {
	type demoAnnouncement struct {
		title    string
		titleNe  string
		category string
		age      time.Duration
	}

	announcements := []demoAnnouncement{
		{"Scholarship Applications Open", "छात्रवृत्ति आवेदन खुला", "education", 10 * 24 * time.Hour},
		{"Road Construction Project Update", "सडक निर्माण परियोजना अपडेट", "infrastructure", 8 * 24 * time.Hour},
		{"Property Tax Payment Deadline Extended", "सम्पत्ति कर भुक्तानी म्याद थपियो", "finance", 6 * 24 * time.Hour},
		{"New Health Camp Schedule Released", "नयाँ स्वास्थ्य शिविर तालिका जारी", "health", 3 * 24 * time.Hour},
	}

	for _, d := range announcements {
		created := now.Add(-d.age)
		published := created
		a := &models.Announcement{
			ID:          uuid.NewString(),
			Title:       d.title,
			TitleNe:     d.titleNe,
			Content:     d.title + ". Visit the municipality office for details.",
			Category:    d.category,
			Priority:    models.AnnouncementPriorityMedium,
			Status:      models.AnnouncementStatusPublished,
			Author:      "Admin User",
			CreatedAt:   created,
			UpdatedAt:   created,
			PublishedAt: &published,
		}
		s.announcements = append([]*models.Announcement{a}, s.announcements...)
	}
}
