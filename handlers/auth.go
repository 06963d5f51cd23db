package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mikeandholly/wedding-api/models"
	"github.com/mikeandholly/wedding-api/services"
	"github.com/mikeandholly/wedding-api/utils"
)

type AuthHandler struct {
	Invitees    *services.InviteeService
	Guests      *services.GuestService
	LoginTokens *services.LoginTokenService
	Email       *services.EmailService
}

// AdminLogin authenticates the couple's admin account from environment
// credentials and issues a token with the admin claim. A TOTP code is
// required when ADMIN_TOTP_SECRET is set.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		TOTPCode string `json:"totpCode,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminEmail == "" || passwordHash == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin account not configured"})
		return
	}

	if !strings.EqualFold(req.Email, adminEmail) || !utils.CheckPassword(req.Password, passwordHash) {
		utils.Logger.WithField("email", utils.MaskEmail(req.Email)).Warn("Failed admin login")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if totpSecret := os.Getenv("ADMIN_TOTP_SECRET"); totpSecret != "" {
		if !utils.VerifyTOTP(totpSecret, req.TOTPCode) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid TOTP code"})
			return
		}
	}

	token, err := utils.GenerateAccessToken(adminEmail, true)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// GuestLogin emails a one-time sign-in link when the address belongs to a
// known invitee or guest. The response never reveals whether the address
// was recognized.
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := models.CanonicalEmail(req.Email)

	ctx := c.Request.Context()
	known := false
	if invitees, err := h.Invitees.ByEmail(ctx, email); err == nil && len(invitees) > 0 {
		known = true
	}
	if !known {
		if guests, err := h.Guests.ByEmail(ctx, email); err == nil && len(guests) > 0 {
			known = true
		}
	}

	if known {
		token, err := h.LoginTokens.Create(ctx, email)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := h.Email.SendSignInLink(email, token); err != nil {
			utils.Logger.WithError(err).
				WithField("email", utils.MaskEmail(email)).
				Error("Failed to send sign-in link")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "If that address is on the guest list, a sign-in link is on its way"})
}

// VerifyLogin exchanges an emailed one-time token for an access token.
func (h *AuthHandler) VerifyLogin(c *gin.Context) {
	tokenID := c.Query("token")
	if tokenID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	email, err := h.LoginTokens.Redeem(c.Request.Context(), tokenID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired sign-in link"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(email, false)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}
