package handlers

import (
	"net/http"

	"tripticket/internal/domain"
	"tripticket/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	payload := gin.H{
		"error": message,
		"code":  code,
	}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		payload["request_id"] = reqID
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses. Travel
// precondition outcomes are expected results of gate scans and map to 4xx
// informational codes, never 5xx.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsUnknownTag(err):
		respondError(c, http.StatusNotFound, "unknown_tag", err.Error())
	case domain.IsForbiddenTagClass(err):
		respondError(c, http.StatusForbidden, "forbidden_tag_class", err.Error())
	case domain.IsAlreadyStarted(err):
		respondError(c, http.StatusConflict, "already_started", err.Error())
	case domain.IsAlreadyCompleted(err):
		respondError(c, http.StatusConflict, "already_completed", err.Error())
	case domain.IsNotStarted(err):
		respondError(c, http.StatusConflict, "not_started", err.Error())
	case domain.IsCooldownActive(err):
		respondError(c, http.StatusTooManyRequests, "cooldown_active", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
