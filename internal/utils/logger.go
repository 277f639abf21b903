package utils

import (
	"log"
	"strings"
)

// LogEvent writes one line per lifecycle transition, gate tap or artifact
// stage outcome, keyed by request id so a decision and its side effects can
// be correlated. Messages carry identifiers only, never form payloads.
func LogEvent(requestID, module, action, message string) {
	rid := strings.TrimSpace(requestID)
	if rid == "" {
		rid = "-"
	}
	log.Printf("tripticket %s.%s request_id=%s %s", module, action, rid, message)
}
