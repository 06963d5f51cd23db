package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mikeandholly/wedding-api/models"
	"github.com/mikeandholly/wedding-api/services"
	"github.com/mikeandholly/wedding-api/utils"
)

type WebhookHandler struct {
	Invitees *services.InviteeService
	Guests   *services.GuestService
	WS       *WSHandler
}

// IngestTypeform receives the survey tool's webhook, creates one invitee
// and one matching guest, and echoes the parsed invitee back. A shape
// mismatch fails the whole request; nothing is partially ingested.
func (h *WebhookHandler) IngestTypeform(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable request body"})
		return
	}

	if secret := os.Getenv("TYPEFORM_SECRET"); secret != "" {
		signature := c.GetHeader("Typeform-Signature")
		if !utils.VerifyWebhookSignature(signature, body, secret) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
			return
		}
	}

	var payload typeformPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed webhook payload"})
		return
	}

	inv, err := parseTypeformPayload(&payload)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	inviteeID, err := h.Invitees.Create(ctx, inv)
	if err != nil {
		writeError(c, err)
		return
	}
	utils.Logger.Infof("%s written to DB", inv.Name)

	first, last := utils.SplitFullName(inv.Name)
	guest := &models.Guest{
		FirstName: first,
		LastName:  last,
		Email:     inv.Email,
		Mobile:    inv.Mobile,
		InviteeID: inviteeID,
	}
	guestID, err := h.Guests.Create(ctx, guest)
	if err != nil {
		writeError(c, err)
		return
	}

	h.WS.BroadcastChange("invitees", "created", inviteeID)
	h.WS.BroadcastChange("guests", "created", guestID)
	c.JSON(http.StatusOK, inv)
}
