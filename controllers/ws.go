package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/dinarex/exchange-backend/services"
	"github.com/dinarex/exchange-backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origin in production
		return true
	},
}

// Notifications upgrades the connection and registers the caller as a
// live notification observer. Must run behind Authenticate.
func (h *Handler) Notifications(c *gin.Context) {
	user := currentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("[ws] upgrade failed for user %d: %v", user.ID, err)
		return
	}

	h.Hub.Register(services.NewClient(user.ID, conn, h.Hub))
}
