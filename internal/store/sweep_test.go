package store

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/storage"
)

type SweepSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
	clock time.Time
}

func (s *SweepSuite) SetupTest() {
	log := logrus.New()
	log.SetOutput(io.Discard)

	s.store = New(storage.NewMemory(), log)
	s.ctx = context.Background()

	s.clock = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	s.store.now = func() time.Time { return s.clock }
	s.Require().NoError(s.store.Load(s.ctx))
}

func TestSweepSuite(t *testing.T) {
	suite.Run(t, new(SweepSuite))
}

func (s *SweepSuite) submit(userID string) models.Application {
	app, err := s.store.SubmitApplication(s.ctx, userID, "Test User", userID+"@example.com", models.CertificateBirth, birthData(), nil)
	s.Require().NoError(err)
	return app
}

func (s *SweepSuite) TestAutoApproveStale() {
	old := s.submit("alice")
	s.clock = s.clock.Add(30 * time.Second)
	fresh := s.submit("bob")

	s.Run("young applications are untouched", func() {
		s.Equal(0, s.store.AutoApproveStale(s.ctx, time.Minute))
	})

	s.Run("crossing the threshold approves", func() {
		s.clock = s.clock.Add(31 * time.Second) // old is now 61s, fresh 31s

		s.Equal(1, s.store.AutoApproveStale(s.ctx, time.Minute))

		got, err := s.store.ApplicationByID(old.ID)
		s.Require().NoError(err)
		s.Equal(models.ApplicationStatusApproved, got.Status)
		s.True(got.UpdatedAt.After(got.SubmittedAt))

		still, err := s.store.ApplicationByID(fresh.ID)
		s.Require().NoError(err)
		s.Equal(models.ApplicationStatusPending, still.Status)
	})

	s.Run("exactly one success notification", func() {
		notifs := s.store.NotificationsByUser("alice")
		s.Require().Len(notifs, 2) // submit + auto approval
		s.Equal("Application Approved", notifs[0].Title)
		s.Equal(models.SeveritySuccess, notifs[0].Severity)
		s.Contains(notifs[0].Message, old.ID)
	})

	s.Run("sweep is idempotent", func() {
		s.Equal(0, s.store.AutoApproveStale(s.ctx, time.Minute))
		s.Len(s.store.NotificationsByUser("alice"), 2)
	})

	s.Run("remaining application approves once it ages", func() {
		s.clock = s.clock.Add(time.Minute)
		s.Equal(1, s.store.AutoApproveStale(s.ctx, time.Minute))
		s.Equal(0, s.store.AutoApproveStale(s.ctx, time.Minute))
	})
}

func (s *SweepSuite) TestRejectedAndApprovedAreFinal() {
	app := s.submit("alice")
	s.Require().NoError(s.store.UpdateApplicationStatus(s.ctx, app.ID, models.ApplicationStatusRejected, "incomplete", "Admin User"))

	s.clock = s.clock.Add(time.Hour)
	s.Equal(0, s.store.AutoApproveStale(s.ctx, time.Minute))

	got, err := s.store.ApplicationByID(app.ID)
	s.Require().NoError(err)
	s.Equal(models.ApplicationStatusRejected, got.Status)
}

func (s *SweepSuite) TestSweeperRunStopsOnCancel() {
	sweeper := NewSweeper(s.store, 5*time.Millisecond, time.Minute, s.store.log)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("sweeper did not stop on context cancellation")
	}
}
