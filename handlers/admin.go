package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikeandholly/wedding-api/middleware"
	"github.com/mikeandholly/wedding-api/services"
	"github.com/mikeandholly/wedding-api/utils"
)

type AdminHandler struct {
	Backup *services.BackupService
}

// RunBackup triggers the collection export on demand. The same exporter
// runs on the 4-hour schedule.
func (h *AdminHandler) RunBackup(c *gin.Context) {
	if !middleware.GetIdentity(c).Admin {
		writeForbidden(c)
		return
	}

	opName, err := h.Backup.Run(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"operation": opName})
}

// ProvisionTOTP mints a fresh TOTP secret for the admin account and
// returns the enrollment URL for an authenticator app. The secret only
// takes effect once set as ADMIN_TOTP_SECRET.
func (h *AdminHandler) ProvisionTOTP(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if !identity.Admin {
		writeForbidden(c)
		return
	}

	secret, enrollURL, err := utils.GenerateTOTPSecret(identity.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"secret": secret, "otpauthUrl": enrollURL})
}
