package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"realestate-backend/internal/shared/validate"
)

// Input answers request-shape failures: field errors, an unreadable body or
// an oversized body. It reports false when err is none of those.
func Input(c *gin.Context, err error) bool {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		Validation(c, verrs)
	case errors.Is(err, validate.ErrBodyTooLarge):
		Error(c, http.StatusRequestEntityTooLarge, "too_large", "Request body too large", nil)
	case errors.Is(err, validate.ErrMalformedBody):
		Error(c, http.StatusBadRequest, "bad_request", "Malformed request body", nil)
	default:
		return false
	}
	return true
}
