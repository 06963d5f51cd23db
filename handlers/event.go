package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikeandholly/wedding-api/middleware"
	"github.com/mikeandholly/wedding-api/models"
	"github.com/mikeandholly/wedding-api/rules"
	"github.com/mikeandholly/wedding-api/services"
)

type EventHandler struct {
	Events *services.EventService
	Guests *services.GuestService
	Rules  *rules.Engine
	WS     *WSHandler
}

// ListEvents returns every event. Any authenticated identity may read.
func (h *EventHandler) ListEvents(c *gin.Context) {
	if !h.Rules.CanReadEvent(middleware.GetIdentity(c)) {
		writeForbidden(c)
		return
	}
	events, err := h.Events.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent returns a single event.
func (h *EventHandler) GetEvent(c *gin.Context) {
	if !h.Rules.CanReadEvent(middleware.GetIdentity(c)) {
		writeForbidden(c)
		return
	}
	ev, err := h.Events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

// CreateEvent adds an event. Admin only.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	if !h.Rules.CanWriteEvent(middleware.GetIdentity(c)) {
		writeForbidden(c)
		return
	}

	var ev models.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Events.Create(c.Request.Context(), &ev)
	if err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("events", "created", id)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateEvent applies a strict partial update. Admin only.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	if !h.Rules.CanWriteEvent(middleware.GetIdentity(c)) {
		writeForbidden(c)
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable request body"})
		return
	}
	update, err := models.ParseEventUpdate(raw)
	if err != nil {
		writeError(c, err)
		return
	}

	id := c.Param("id")
	if err := h.Events.Update(c.Request.Context(), id, update); err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("events", "updated", id)
	c.JSON(http.StatusOK, gin.H{"message": "Event updated"})
}

// DeleteEvent removes an event. Admin only.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if !h.Rules.CanWriteEvent(middleware.GetIdentity(c)) {
		writeForbidden(c)
		return
	}
	id := c.Param("id")
	if err := h.Events.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("events", "deleted", id)
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// Invitations batch-invites or batch-removes guests for an event:
// {"action": "invite"|"remove", "guestIds": [...]}. One batch write.
func (h *EventHandler) Invitations(c *gin.Context) {
	if !h.Rules.CanWriteEvent(middleware.GetIdentity(c)) {
		writeForbidden(c)
		return
	}

	var req struct {
		Action   string   `json:"action" binding:"required,oneof=invite remove"`
		GuestIDs []string `json:"guestIds" binding:"required,min=1,dive,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	eventID := c.Param("id")
	if _, err := h.Events.Get(ctx, eventID); err != nil {
		writeError(c, err)
		return
	}

	var err error
	if req.Action == "invite" {
		err = h.Guests.InviteToEvent(ctx, req.GuestIDs, eventID)
	} else {
		err = h.Guests.RemoveFromEvent(ctx, req.GuestIDs, eventID)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("events", "updated", eventID)
	c.JSON(http.StatusOK, gin.H{"message": "Invitations updated"})
}

// InviteAll toggles allGuestsInvited on and fans the invitation out to
// every existing guest.
func (h *EventHandler) InviteAll(c *gin.Context) {
	if !h.Rules.CanWriteEvent(middleware.GetIdentity(c)) {
		writeForbidden(c)
		return
	}
	eventID := c.Param("id")
	if err := h.Events.InviteAllGuests(c.Request.Context(), eventID); err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("events", "updated", eventID)
	c.JSON(http.StatusOK, gin.H{"message": "All guests invited"})
}

// UninviteAll clears the allGuestsInvited flag.
func (h *EventHandler) UninviteAll(c *gin.Context) {
	if !h.Rules.CanWriteEvent(middleware.GetIdentity(c)) {
		writeForbidden(c)
		return
	}
	eventID := c.Param("id")
	if err := h.Events.UninviteAllGuests(c.Request.Context(), eventID); err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("events", "updated", eventID)
	c.JSON(http.StatusOK, gin.H{"message": "Flag cleared"})
}
