// internal/handlers/websocket.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/BijayDhakal25/citizen-compass-app/internal/ws"
	"github.com/BijayDhakal25/citizen-compass-app/pkg/auth"
)

type WebSocketHandler struct {
	hub        *ws.Hub
	jwtManager *auth.JWTManager
	log        logrus.FieldLogger

	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, jwtManager *auth.JWTManager, log logrus.FieldLogger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:        hub,
		jwtManager: jwtManager,
		log:        log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browsers cannot set Authorization headers on websocket
			// upgrades, so the token travels as a query parameter and
			// origins are checked by the CORS layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Connect authenticates via the token query parameter and attaches the
// connection to the notification hub.
func (h *WebSocketHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Missing token",
		})
		return
	}

	claims, err := h.jwtManager.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid token",
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Error("Websocket upgrade failed")
		return
	}

	h.hub.ServeClient(conn, claims.UserID)
}
