// internal/handlers/stats.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BijayDhakal25/citizen-compass-app/internal/store"
)

type StatsHandler struct {
	store *store.Store
}

func NewStatsHandler(store *store.Store) *StatsHandler {
	return &StatsHandler{store: store}
}

// Dashboard returns the admin overview counters.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.store.Stats()})
}
