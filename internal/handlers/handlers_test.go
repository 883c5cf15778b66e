package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/BijayDhakal25/citizen-compass-app/internal/middleware"
	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/storage"
	"github.com/BijayDhakal25/citizen-compass-app/internal/store"
	"github.com/BijayDhakal25/citizen-compass-app/pkg/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	st := store.New(storage.NewMemory(), log)
	require.NoError(t, st.Load(context.Background()))

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	authHandler := NewAuthHandler(st, jwtManager)
	applicationHandler := NewApplicationHandler(st)
	complaintHandler := NewComplaintHandler(st)
	notificationHandler := NewNotificationHandler(st)
	announcementHandler := NewAnnouncementHandler(st)
	statsHandler := NewStatsHandler(st)

	g := gin.New()
	api := g.Group("/api/v1")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/announcements", announcementHandler.ListPublished)
	api.GET("/certificate-types", applicationHandler.Schemas)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtManager))
	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/applications", applicationHandler.Submit)
	protected.GET("/applications", applicationHandler.ListMine)
	protected.GET("/applications/:id", applicationHandler.Get)
	protected.POST("/complaints", complaintHandler.Submit)
	protected.GET("/notifications", notificationHandler.List)
	protected.PUT("/notifications/:id/read", notificationHandler.MarkRead)
	protected.PUT("/notifications/read-all", notificationHandler.MarkAllRead)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager))
	admin.Use(middleware.RequireRole(models.RoleStaff))
	admin.GET("/applications", applicationHandler.ListAll)
	admin.PUT("/applications/:id/status", applicationHandler.UpdateStatus)
	admin.GET("/stats", statsHandler.Dashboard)

	return g, st, jwtManager
}

func doJSON(g *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	g.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, g *gin.Engine, name, email string) string {
	t.Helper()

	w := doJSON(g, http.MethodPost, "/api/v1/auth/register", "", `{
		"name": "`+name+`",
		"email": "`+email+`",
		"password": "Secret1234"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Empty(t, resp.User.PasswordHash)
	return resp.Token
}

func staffToken(t *testing.T, st *store.Store, jwtManager *auth.JWTManager) string {
	t.Helper()

	staff := models.User{
		ID:        "staff-1",
		Name:      "Staff User",
		Email:     "staff@example.com",
		Role:      models.RoleStaff,
		CreatedAt: time.Now(),
	}
	require.NoError(t, st.CreateUser(context.Background(), staff))

	token, err := jwtManager.GenerateToken(staff)
	require.NoError(t, err)
	return token
}

func TestAuthFlow(t *testing.T) {
	g, _, _ := newTestRouter(t)

	token := registerAndLogin(t, g, "Alice Citizen", "alice@example.com")

	// duplicate registration is rejected
	w := doJSON(g, http.MethodPost, "/api/v1/auth/register", "", `{
		"name": "Alice Again",
		"email": "alice@example.com",
		"password": "Secret1234"
	}`)
	require.Equal(t, http.StatusConflict, w.Code)

	// login with the right password
	w = doJSON(g, http.MethodPost, "/api/v1/auth/login", "", `{
		"email": "alice@example.com",
		"password": "Secret1234"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	// wrong password
	w = doJSON(g, http.MethodPost, "/api/v1/auth/login", "", `{
		"email": "alice@example.com",
		"password": "WrongPass1"
	}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// token works against a protected route
	w = doJSON(g, http.MethodGet, "/api/v1/auth/me", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	// missing token is rejected
	w = doJSON(g, http.MethodGet, "/api/v1/auth/me", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApplicationLifecycle(t *testing.T) {
	g, st, jwtManager := newTestRouter(t)
	citizen := registerAndLogin(t, g, "Alice Citizen", "alice@example.com")
	staff := staffToken(t, st, jwtManager)

	// submit
	w := doJSON(g, http.MethodPost, "/api/v1/applications", citizen, `{
		"type": "birth",
		"data": {
			"childName": "Aarav Sharma",
			"dateOfBirth": "2026-01-15",
			"placeOfBirth": "Ward 3",
			"fatherName": "Ramesh Sharma",
			"motherName": "Sita Sharma",
			"address": "Ward 3, Likhu Gaupalika"
		}
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Application models.Application `json:"application"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	appID := created.Application.ID
	require.Regexp(t, `^APP-\d{4}-\d{3}$`, appID)
	require.Equal(t, models.ApplicationStatusPending, created.Application.Status)

	// incomplete data is rejected
	w = doJSON(g, http.MethodPost, "/api/v1/applications", citizen, `{
		"type": "birth",
		"data": {"childName": "Aarav Sharma"}
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// the citizen sees their application
	w = doJSON(g, http.MethodGet, "/api/v1/applications", citizen, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), appID)

	// citizens cannot hit admin routes
	w = doJSON(g, http.MethodPut, "/api/v1/admin/applications/"+appID+"/status", citizen, `{"status": "approved"}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	// staff approves with a comment
	w = doJSON(g, http.MethodPut, "/api/v1/admin/applications/"+appID+"/status", staff, `{
		"status": "approved",
		"comment": "All documents verified"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	// unknown id maps to 404
	w = doJSON(g, http.MethodPut, "/api/v1/admin/applications/APP-2099-999/status", staff, `{"status": "approved"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	// the owner can read the approved application
	w = doJSON(g, http.MethodGet, "/api/v1/applications/"+appID, citizen, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"approved"`)
	require.Contains(t, w.Body.String(), "All documents verified")

	// another citizen cannot
	other := registerAndLogin(t, g, "Bob Citizen", "bob@example.com")
	w = doJSON(g, http.MethodGet, "/api/v1/applications/"+appID, other, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	// notifications accumulated for the owner
	w = doJSON(g, http.MethodGet, "/api/v1/notifications", citizen, "")
	require.Equal(t, http.StatusOK, w.Code)
	var notifResp struct {
		Notifications []models.Notification `json:"notifications"`
		Unread        int                   `json:"unread"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifResp))
	require.Len(t, notifResp.Notifications, 2)
	require.Equal(t, 2, notifResp.Unread)
	require.Equal(t, "Application Approved", notifResp.Notifications[0].Title)

	// marking one of them read works for the owner only
	notifID := notifResp.Notifications[0].ID
	w = doJSON(g, http.MethodPut, "/api/v1/notifications/"+notifID+"/read", other, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(g, http.MethodPut, "/api/v1/notifications/"+notifID+"/read", citizen, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(g, http.MethodPut, "/api/v1/notifications/read-all", citizen, "")
	require.Equal(t, http.StatusOK, w.Code)

	// dashboard counters reflect the lifecycle
	w = doJSON(g, http.MethodGet, "/api/v1/admin/stats", staff, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"total_applications":1`)
}

func TestComplaintValidation(t *testing.T) {
	g, _, _ := newTestRouter(t)
	citizen := registerAndLogin(t, g, "Alice Citizen", "alice@example.com")

	w := doJSON(g, http.MethodPost, "/api/v1/complaints", citizen, `{
		"title": "Broken street light",
		"category": "Infrastructure",
		"description": "The light at the main chowk has been out for a week.",
		"location": "Ward 3"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Regexp(t, `CMP-\d{4}-\d{3}`, w.Body.String())

	w = doJSON(g, http.MethodPost, "/api/v1/complaints", citizen, `{
		"title": "Bad weather",
		"category": "Weather",
		"description": "It has been raining for a week straight."
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicRoutes(t *testing.T) {
	g, st, _ := newTestRouter(t)

	_, err := st.CreateAnnouncement(context.Background(), models.Announcement{
		Title:   "Office hours",
		Content: "The ward office opens at 10 on Sundays.",
		Status:  models.AnnouncementStatusPublished,
	})
	require.NoError(t, err)

	w := doJSON(g, http.MethodGet, "/api/v1/announcements", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Office hours")

	w = doJSON(g, http.MethodGet, "/api/v1/certificate-types", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Birth Certificate")
	require.Contains(t, w.Body.String(), "childName")
}
