package handlers

import (
	"net/http"

	intconfig "tripticket/internal/config"
	"tripticket/internal/events"
	"tripticket/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Env and EventHub are injected once by the router before serving.
var (
	Env      intconfig.Env
	EventHub *events.Hub
)

func publisher() events.Publisher {
	if EventHub != nil {
		return EventHub
	}
	return events.NopPublisher{}
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
