// internal/handlers/announcement.go

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/store"
)

type AnnouncementHandler struct {
	store *store.Store
}

type AnnouncementRequest struct {
	Title     string `json:"title" binding:"required,min=3,max=200"`
	TitleNe   string `json:"title_ne,omitempty"`
	Content   string `json:"content" binding:"required,min=10"`
	ContentNe string `json:"content_ne,omitempty"`
	Category  string `json:"category,omitempty"`
	Priority  string `json:"priority,omitempty"`
	Status    string `json:"status,omitempty"`
}

func NewAnnouncementHandler(store *store.Store) *AnnouncementHandler {
	return &AnnouncementHandler{store: store}
}

// ListPublished returns the notices visible to everyone.
func (h *AnnouncementHandler) ListPublished(c *gin.Context) {
	announcements := h.store.PublishedAnnouncements()
	c.JSON(http.StatusOK, gin.H{
		"announcements": announcements,
		"total":         len(announcements),
	})
}

// ListAll returns every notice including drafts, for the admin panel.
func (h *AnnouncementHandler) ListAll(c *gin.Context) {
	announcements := h.store.Announcements()
	c.JSON(http.StatusOK, gin.H{
		"announcements": announcements,
		"total":         len(announcements),
	})
}

// Get returns one published notice by id.
func (h *AnnouncementHandler) Get(c *gin.Context) {
	a, err := h.store.AnnouncementByID(c.Param("id"))
	if err != nil || !a.IsPublished() {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Announcement not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcement": a})
}

// Create stores a notice. Status "published" notifies all users.
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	a, err := h.store.CreateAnnouncement(c.Request.Context(), models.Announcement{
		Title:     req.Title,
		TitleNe:   req.TitleNe,
		Content:   req.Content,
		ContentNe: req.ContentNe,
		Category:  req.Category,
		Priority:  models.AnnouncementPriority(req.Priority),
		Status:    models.AnnouncementStatus(req.Status),
		Author:    c.GetString("user_name"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error creating announcement",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"announcement": a})
}

// Update edits a notice. A draft moving to published triggers the
// notification fan-out.
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	err := h.store.UpdateAnnouncement(c.Request.Context(), models.Announcement{
		ID:        c.Param("id"),
		Title:     req.Title,
		TitleNe:   req.TitleNe,
		Content:   req.Content,
		ContentNe: req.ContentNe,
		Category:  req.Category,
		Priority:  models.AnnouncementPriority(req.Priority),
		Status:    models.AnnouncementStatus(req.Status),
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Announcement not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid announcement",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement updated"})
}

// Delete removes a notice.
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteAnnouncement(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Announcement not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}
