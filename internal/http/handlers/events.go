package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/events streams committed state changes (request created/updated,
// travel and urgent taps) as server-sent events.
func StreamEvents(c *gin.Context) {
	if EventHub == nil {
		RespondError(c, http.StatusServiceUnavailable, "event stream not available", nil)
		return
	}

	ch, cancel := EventHub.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			data, err := json.Marshal(ev)
			if err != nil {
				return true
			}
			c.SSEvent(ev.Name, string(data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
