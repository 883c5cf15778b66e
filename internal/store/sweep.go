// internal/store/sweep.go
package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Sweeper drives the automatic pending-to-approved transition. It is
// the only time-driven mutation in the system and shares the store
// mutex with admin-initiated updates, so the two can never race on the
// same application record.
type Sweeper struct {
	store     *Store
	interval  time.Duration
	threshold time.Duration
	log       logrus.FieldLogger
}

func NewSweeper(store *Store, interval, threshold time.Duration, log logrus.FieldLogger) *Sweeper {
	return &Sweeper{
		store:     store,
		interval:  interval,
		threshold: threshold,
		log:       log,
	}
}

// Run ticks until the context is cancelled. Cancellation is tied to
// the process lifecycle by the caller.
func (w *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.WithFields(logrus.Fields{
		"interval":  w.interval,
		"threshold": w.threshold,
	}).Info("Auto-approval sweeper started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Auto-approval sweeper stopped")
			return
		case <-ticker.C:
			if n := w.store.AutoApproveStale(ctx, w.threshold); n > 0 {
				w.log.WithField("approved", n).Info("Auto-approved stale pending applications")
			}
		}
	}
}
