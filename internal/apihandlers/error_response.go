package apihandlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"librisk/internal/models"
)

// errorResponse is the failure body of every endpoint.
// Example: { "success": false, "code": "bad_request", "error": "يرجى إدخال نص المشكلة" }
type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

// JSONError sends a structured error response
func JSONError(ctx *gin.Context, status int, code, msg string) {
	ctx.AbortWithStatusJSON(status, errorResponse{Success: false, Code: code, Error: msg})
}

// Convenience wrappers
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, "bad_request", msg)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, "internal_error", msg)
}

func ServiceUnavailable(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusServiceUnavailable, "model_unavailable", msg)
}

// RespondError maps a service error to its status code and public message.
// The cause is logged, never sent.
func RespondError(ctx *gin.Context, err error) {
	msg := models.PublicMessage(err)
	switch {
	case errors.Is(err, models.ErrInput):
		BadRequest(ctx, msg)
	case errors.Is(err, models.ErrModelUnavailable):
		ServiceUnavailable(ctx, msg)
	case errors.Is(err, models.ErrStorage):
		log.WithError(err).WithField("path", ctx.FullPath()).Error("Storage failure")
		JSONError(ctx, http.StatusInternalServerError, "storage_error", msg)
	default:
		log.WithError(err).WithField("path", ctx.FullPath()).Error("Request failed")
		Internal(ctx, msg)
	}
}
