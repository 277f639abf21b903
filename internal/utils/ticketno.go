package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// NewTicketNo mints an opaque ticket number for an approved request,
// e.g. "TT-20250827-3F9A2C". Uniqueness is enforced by the upsert in the
// ticket repository, keyed by request id.
func NewTicketNo(now time.Time) string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		// fall back to the clock; the per-request upsert still keeps one row
		return fmt.Sprintf("TT-%s-%06d", now.Format("20060102"), now.UnixNano()%1000000)
	}
	return fmt.Sprintf("TT-%s-%s", now.Format("20060102"), strings.ToUpper(hex.EncodeToString(buf)))
}
