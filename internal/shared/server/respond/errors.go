package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"realestate-backend/internal/shared/telemetry"
	"realestate-backend/internal/shared/validate"
)

// ErrorResponse is the body of every non-validation failure.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ValidationResponse carries field-level validation failures.
type ValidationResponse struct {
	Errors validate.Errors `json:"errors"`
}

// Error sends a standardized error response. The code is only logged.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	logError(c, status, code, message)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Message: message,
		Details: details,
	})
}

// Validation sends a 400 with per-field errors.
func Validation(c *gin.Context, errs validate.Errors) {
	logError(c, http.StatusBadRequest, "validation_error", errs.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, ValidationResponse{Errors: errs})
}

// Internal logs err and sends the generic failure body; err never reaches the client.
func Internal(c *gin.Context, err error) {
	fields := map[string]any{
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	telemetry.Error("http.internal", fields)
	Error(c, http.StatusInternalServerError, "internal", "Internal server error", nil)
}

func logError(c *gin.Context, status int, code, message string) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if isAdmin, ok := c.Get("isAdmin"); ok {
		fields["is_admin"] = isAdmin
	}
	telemetry.Error("http.error", fields)
}
