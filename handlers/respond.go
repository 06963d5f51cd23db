package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikeandholly/wedding-api/models"
	"github.com/mikeandholly/wedding-api/utils"
)

// writeError maps the error taxonomy onto HTTP statuses. Validation
// errors surface their field paths; store errors stay generic.
func writeError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	default:
		utils.Logger.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while saving"})
	}
}

func writeForbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
}
