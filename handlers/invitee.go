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

type InviteeHandler struct {
	Invitees *services.InviteeService
	Rules    *rules.Engine
	WS       *WSHandler
}

// ListInvitees returns the whole collection. Admin only.
func (h *InviteeHandler) ListInvitees(c *gin.Context) {
	if !h.Rules.CanListAll(middleware.GetIdentity(c)) {
		writeForbidden(c)
		return
	}
	invitees, err := h.Invitees.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invitees)
}

// GetMyInvitee returns the caller's own invitee record, resolved by the
// email claim.
func (h *InviteeHandler) GetMyInvitee(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	invitees, err := h.Invitees.ByEmail(c.Request.Context(), identity.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(invitees) == 0 {
		writeError(c, models.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, invitees[0])
}

// GetInvitee returns a single invitee, subject to the access rules.
func (h *InviteeHandler) GetInvitee(c *gin.Context) {
	inv, ok := h.authorized(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, inv)
}

// UpdateInvitee applies a strict partial update (the admin table edit
// path). Unknown fields reject the whole request before any store call.
func (h *InviteeHandler) UpdateInvitee(c *gin.Context) {
	inv, ok := h.authorized(c)
	if !ok {
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable request body"})
		return
	}
	update, err := models.ParseInviteeUpdate(raw)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.Invitees.Update(c.Request.Context(), inv.ID, update); err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("invitees", "updated", inv.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Invitee updated"})
}

// Rsvp records the invitee's overall RSVP: {"response": "accept"|"regret"}.
func (h *InviteeHandler) Rsvp(c *gin.Context) {
	inv, ok := h.authorized(c)
	if !ok {
		return
	}

	var req struct {
		Response string `json:"response" binding:"required,oneof=accept regret"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if req.Response == "accept" {
		err = h.Invitees.AcceptRsvp(c.Request.Context(), inv.ID)
	} else {
		err = h.Invitees.RegretRsvp(c.Request.Context(), inv.ID)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("invitees", "updated", inv.ID)
	c.JSON(http.StatusOK, gin.H{"message": "RSVP recorded"})
}

// BookLodging overwrites the invitee's lodging booking wholesale.
func (h *InviteeHandler) BookLodging(c *gin.Context) {
	inv, ok := h.authorized(c)
	if !ok {
		return
	}

	var booking models.LodgingBooking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Invitees.BookLodging(c.Request.Context(), inv.ID, &booking); err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("invitees", "updated", inv.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Lodging booked"})
}

// SetGuestCount overwrites the invitee's guest quota (used when the
// invitee declines to add further guests).
func (h *InviteeHandler) SetGuestCount(c *gin.Context) {
	inv, ok := h.authorized(c)
	if !ok {
		return
	}

	var req struct {
		GuestCount int `json:"guestCount" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Invitees.SetGuestCount(c.Request.Context(), inv.ID, req.GuestCount); err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("invitees", "updated", inv.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Guest count updated"})
}

// authorized loads the invitee from the :id param and checks the access
// rules, writing the failure response itself when access is denied.
func (h *InviteeHandler) authorized(c *gin.Context) (*models.Invitee, bool) {
	inv, err := h.Invitees.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if !h.Rules.CanAccessInvitee(middleware.GetIdentity(c), inv) {
		writeForbidden(c)
		return nil, false
	}
	return inv, true
}
