package handlers

import (
	"net/http"

	"metrobus/internal/domain"
	"metrobus/internal/http/middleware"
	"metrobus/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. The code is the
// named failure when there is one, else the error class.
func RespondDomainError(c *gin.Context, err error) {
	code := domain.Code(err)
	withDefault := func(def string) string {
		if code != "" {
			return code
		}
		return def
	}
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, withDefault("validation_error"), err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, withDefault("not_found"), err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, withDefault("conflict"), err.Error(), nil)
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
