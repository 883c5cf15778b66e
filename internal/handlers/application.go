// internal/handlers/application.go

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/store"
)

type ApplicationHandler struct {
	store *store.Store
}

type SubmitApplicationRequest struct {
	Type      string                       `json:"type" binding:"required"`
	Data      map[string]string            `json:"data" binding:"required"`
	Documents []models.ApplicationDocument `json:"documents,omitempty"`
}

type UpdateApplicationStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment,omitempty"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

func NewApplicationHandler(store *store.Store) *ApplicationHandler {
	return &ApplicationHandler{store: store}
}

// Submit files a new certificate application for the current user.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	app, err := h.store.SubmitApplication(
		c.Request.Context(),
		c.GetString("user_id"),
		c.GetString("user_name"),
		c.GetString("user_email"),
		models.CertificateType(req.Type),
		req.Data,
		req.Documents,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid application",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"application": app})
}

// ListMine returns the current user's applications, newest first.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps := h.store.ApplicationsByUser(c.GetString("user_id"))
	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        len(apps),
	})
}

// Get returns one application. Citizens can only read their own.
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.store.ApplicationByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Application not found",
		})
		return
	}

	role := models.UserRole(c.GetString("role"))
	if !role.CanReview() && app.UserID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": app})
}

// ListAll returns every application for the review dashboard.
func (h *ApplicationHandler) ListAll(c *gin.Context) {
	apps := h.store.Applications()

	if status := c.Query("status"); status != "" {
		filtered := make([]models.Application, 0, len(apps))
		for _, app := range apps {
			if app.Status == models.ApplicationStatus(status) {
				filtered = append(filtered, app)
			}
		}
		apps = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        len(apps),
	})
}

// UpdateStatus moves an application through its review lifecycle.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	err := h.store.UpdateApplicationStatus(
		c.Request.Context(),
		c.Param("id"),
		models.ApplicationStatus(req.Status),
		req.Comment,
		c.GetString("user_name"),
	)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Application not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid status update",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application status updated"})
}

// AddComment records an official remark on an application.
func (h *ApplicationHandler) AddComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	err := h.store.AddApplicationComment(
		c.Request.Context(),
		c.Param("id"),
		c.GetString("user_id"),
		c.GetString("user_name"),
		req.Text,
	)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Application not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error adding comment",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment added"})
}

// Schemas exposes the per-certificate field definitions so clients can
// render submission forms.
func (h *ApplicationHandler) Schemas(c *gin.Context) {
	certTypes := models.AllCertificateTypes()
	types := make([]gin.H, 0, len(certTypes))
	for _, t := range certTypes {
		types = append(types, gin.H{
			"type":   t,
			"name":   t.DisplayName(),
			"fields": models.CertificateSchemas[t],
		})
	}

	c.JSON(http.StatusOK, gin.H{"certificate_types": types})
}
