package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/mikeandholly/wedding-api/utils"
)

// WSHandler pushes record-change signals to connected clients so guest
// and admin pages re-render on remote change without polling.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 64 * 1024
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleDisconnect(func(s *melody.Session) {
		utils.Logger.Debug("Live-update client disconnected")
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.Logger.WithError(err).Warn("WebSocket error")
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request to a live-update socket.
func (h *WSHandler) HandleWS(c *gin.Context) {
	if err := h.M.HandleRequest(c.Writer, c.Request); err != nil {
		utils.Logger.WithError(err).Warn("Failed to upgrade websocket")
	}
}

// BroadcastChange signals that a document changed. Payload carries just
// enough for clients to refetch: collection, action, and document id.
func (h *WSHandler) BroadcastChange(collection, action, id string) {
	msg, err := json.Marshal(gin.H{
		"collection": collection,
		"action":     action,
		"id":         id,
	})
	if err != nil {
		return
	}
	if err := h.M.Broadcast(msg); err != nil {
		utils.Logger.WithError(err).Warn("Failed to broadcast change signal")
	}
}
