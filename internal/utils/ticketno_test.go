package utils

import (
	"strings"
	"testing"
	"time"
)

func TestNewTicketNo(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	got := NewTicketNo(now)
	if !strings.HasPrefix(got, "TT-20250602-") {
		t.Fatalf("ticket no = %q", got)
	}
	suffix := strings.TrimPrefix(got, "TT-20250602-")
	if len(suffix) != 6 {
		t.Fatalf("suffix = %q, want 6 chars", suffix)
	}
	if suffix != strings.ToUpper(suffix) {
		t.Fatalf("suffix must be uppercase, got %q", suffix)
	}
}
