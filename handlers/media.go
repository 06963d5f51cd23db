package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mikeandholly/wedding-api/utils"
)

type MediaHandler struct{}

// StreetViewStatic signs a Street View Static URL for an event venue:
// {"location": "..."} -> {"url": "..."}. Pure proxy/signing utility, no
// persisted state.
func (h *MediaHandler) StreetViewStatic(c *gin.Context) {
	var req struct {
		Location string `json:"location" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apiKey := os.Getenv("GOOGLE_API_KEY")
	secret := os.Getenv("GOOGLE_SIGNING_SECRET")
	if apiKey == "" || secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Street View signing not configured"})
		return
	}

	unsigned := fmt.Sprintf(
		"https://maps.googleapis.com/maps/api/streetview?size=400x400&location=%s&fov=80&heading=70&pitch=0&key=%s",
		url.QueryEscape(req.Location), apiKey,
	)

	signed, err := utils.SignURL(unsigned, secret)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to sign Street View URL")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signed})
}
