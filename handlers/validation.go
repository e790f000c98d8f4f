package handlers

import (
	"errors"
	"net/http"

	"washdesk/utils"

	"github.com/gin-gonic/gin"
)

// respondInvalid writes the field-naming 400 when err is a validation
// failure, from binding or from a service, and reports whether it did.
func respondInvalid(c *gin.Context, err error) bool {
	var vErr *utils.ValidationError
	if !errors.As(utils.AsValidationError(err), &vErr) {
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "fields": vErr.Fields})
	return true
}
