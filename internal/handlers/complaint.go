// internal/handlers/complaint.go

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/store"
)

type ComplaintHandler struct {
	store *store.Store
}

type SubmitComplaintRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=200"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"required,min=10,max=5000"`
	Location    string `json:"location,omitempty"`
}

type UpdateComplaintStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment,omitempty"`
}

func NewComplaintHandler(store *store.Store) *ComplaintHandler {
	return &ComplaintHandler{store: store}
}

// Submit registers a grievance for the current user.
func (h *ComplaintHandler) Submit(c *gin.Context) {
	var req SubmitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	complaint, err := h.store.SubmitComplaint(
		c.Request.Context(),
		c.GetString("user_id"),
		c.GetString("user_name"),
		req.Title,
		req.Category,
		req.Description,
		req.Location,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid complaint",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"complaint": complaint})
}

// ListMine returns the current user's complaints.
func (h *ComplaintHandler) ListMine(c *gin.Context) {
	complaints := h.store.ComplaintsByUser(c.GetString("user_id"))
	c.JSON(http.StatusOK, gin.H{
		"complaints": complaints,
		"total":      len(complaints),
	})
}

// Get returns one complaint. Citizens can only read their own.
func (h *ComplaintHandler) Get(c *gin.Context) {
	complaint, err := h.store.ComplaintByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Complaint not found",
		})
		return
	}

	role := models.UserRole(c.GetString("role"))
	if !role.CanReview() && complaint.UserID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaint": complaint})
}

// ListAll returns every complaint for the review dashboard.
func (h *ComplaintHandler) ListAll(c *gin.Context) {
	complaints := h.store.Complaints()

	if status := c.Query("status"); status != "" {
		filtered := make([]models.Complaint, 0, len(complaints))
		for _, cm := range complaints {
			if cm.Status == models.ComplaintStatus(status) {
				filtered = append(filtered, cm)
			}
		}
		complaints = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"complaints": complaints,
		"total":      len(complaints),
	})
}

// UpdateStatus transitions a complaint through its lifecycle.
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	var req UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	err := h.store.UpdateComplaintStatus(
		c.Request.Context(),
		c.Param("id"),
		models.ComplaintStatus(req.Status),
		req.Comment,
		c.GetString("user_name"),
	)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Complaint not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid status update",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Complaint status updated"})
}

// Categories returns the accepted complaint categories.
func (h *ComplaintHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.ComplaintCategories})
}
