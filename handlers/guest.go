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

type GuestHandler struct {
	Guests   *services.GuestService
	Invitees *services.InviteeService
	Rules    *rules.Engine
	WS       *WSHandler
}

// ListGuests returns the whole collection. Admin only.
func (h *GuestHandler) ListGuests(c *gin.Context) {
	if !h.Rules.CanListAll(middleware.GetIdentity(c)) {
		writeForbidden(c)
		return
	}
	guests, err := h.Guests.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, guests)
}

// ListMyGuests returns the guests the caller manages: their own record
// plus the party of any invitee with their email.
func (h *GuestHandler) ListMyGuests(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	guests, err := h.Guests.ListMine(c.Request.Context(), identity.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, guests)
}

// GetGuest returns a single guest, subject to the access rules.
func (h *GuestHandler) GetGuest(c *gin.Context) {
	g, ok := h.authorized(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, g)
}

// CreateGuest adds a guest to an invitee's party. Non-admin callers must
// own the invitee and stay within its guest quota.
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	var g models.Guest
	if err := c.ShouldBindJSON(&g); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	identity := middleware.GetIdentity(c)

	allowed, err := h.Rules.CanCreateGuest(ctx, identity, g.InviteeID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !allowed {
		writeForbidden(c)
		return
	}

	if !identity.Admin {
		inv, err := h.Invitees.Get(ctx, g.InviteeID)
		if err != nil {
			writeError(c, err)
			return
		}
		existing, err := h.Guests.CountByInviteeID(ctx, g.InviteeID)
		if err != nil {
			writeError(c, err)
			return
		}
		if existing >= int64(inv.GuestCount) {
			c.JSON(http.StatusConflict, gin.H{"error": "Guest allowance reached"})
			return
		}
	}

	id, err := h.Guests.Create(ctx, &g)
	if err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("guests", "created", id)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateGuest applies a strict partial update (admin table edits and the
// guest's own detail form).
func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	g, ok := h.authorized(c)
	if !ok {
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable request body"})
		return
	}
	update, err := models.ParseGuestUpdate(raw)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.Guests.Update(c.Request.Context(), g.ID, update); err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("guests", "updated", g.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Guest updated"})
}

// DeleteGuest removes a guest. Admin only.
func (h *GuestHandler) DeleteGuest(c *gin.Context) {
	if !middleware.GetIdentity(c).Admin {
		writeForbidden(c)
		return
	}
	id := c.Param("id")
	if err := h.Guests.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("guests", "deleted", id)
	c.JSON(http.StatusOK, gin.H{"message": "Guest removed"})
}

// VaxDisposition records the guest's response to the vaccination
// requirement: {"disposition": "viewed"|"accepted"|"rejected"}.
func (h *GuestHandler) VaxDisposition(c *gin.Context) {
	g, ok := h.authorized(c)
	if !ok {
		return
	}

	var req struct {
		Disposition string `json:"disposition" binding:"required,oneof=viewed accepted rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var err error
	switch req.Disposition {
	case "viewed":
		err = h.Guests.ViewedVaxRequirement(ctx, g.ID)
	case "accepted":
		err = h.Guests.AcceptVaxRequirement(ctx, g.ID)
	case "rejected":
		err = h.Guests.RejectVaxRequirement(ctx, g.ID)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("guests", "updated", g.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Disposition recorded"})
}

// EventRsvp moves the event id between the attending and regretting sets:
// {"response": "attend"|"regret"}.
func (h *GuestHandler) EventRsvp(c *gin.Context) {
	g, ok := h.authorized(c)
	if !ok {
		return
	}
	eventID := c.Param("eventId")

	var req struct {
		Response string `json:"response" binding:"required,oneof=attend regret"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if req.Response == "attend" {
		err = h.Guests.AttendEvent(c.Request.Context(), g.ID, eventID)
	} else {
		err = h.Guests.RegretEvent(c.Request.Context(), g.ID, eventID)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("guests", "updated", g.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Event RSVP recorded"})
}

// DinnerChoice records the dinner selection and optional restrictions.
func (h *GuestHandler) DinnerChoice(c *gin.Context) {
	g, ok := h.authorized(c)
	if !ok {
		return
	}

	var req struct {
		DinnerChoice     models.DinnerChoice `json:"dinnerChoice" binding:"required"`
		FoodRestrictions *string             `json:"foodRestrictions,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Guests.SetDinnerChoice(c.Request.Context(), g.ID, req.DinnerChoice, req.FoodRestrictions); err != nil {
		writeError(c, err)
		return
	}
	h.WS.BroadcastChange("guests", "updated", g.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Dinner choice recorded"})
}

// authorized loads the guest from the :id param and checks the access
// rules (self by email, or invitee-of relationship).
func (h *GuestHandler) authorized(c *gin.Context) (*models.Guest, bool) {
	ctx := c.Request.Context()
	g, err := h.Guests.Get(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	allowed, err := h.Rules.CanAccessGuest(ctx, middleware.GetIdentity(c), g)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if !allowed {
		writeForbidden(c)
		return nil, false
	}
	return g, true
}
