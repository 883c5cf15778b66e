// internal/store/stats.go
package store

// DashboardStats are the derived counters shown on the admin dashboard.
type DashboardStats struct {
	TotalApplications int `json:"total_applications"`
	PendingReview     int `json:"pending_review"`
	ApprovedToday     int `json:"approved_today"`
	ActiveComplaints  int `json:"active_complaints"`
}

// Stats computes the dashboard counters from the committed state.
func (s *Store) Stats() DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stats := DashboardStats{TotalApplications: len(s.applications)}

	for _, app := range s.applications {
		switch {
		case app.IsPending():
			stats.PendingReview++
		case app.IsApproved():
			y1, m1, d1 := app.UpdatedAt.Date()
			y2, m2, d2 := now.Date()
			if y1 == y2 && m1 == m2 && d1 == d2 {
				stats.ApprovedToday++
			}
		}
	}

	for _, c := range s.complaints {
		if c.IsActive() {
			stats.ActiveComplaints++
		}
	}

	return stats
}
