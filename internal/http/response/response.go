package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundfield/attune-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAppError writes an error using the status and code it carries.
// Errors without an apierr wrapper become an opaque 500.
func RespondAppError(c *gin.Context, err error) {
	var appErr *apierr.Error
	if errors.As(err, &appErr) {
		RespondError(c, appErr.Status, appErr.Code, appErr.Err)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
