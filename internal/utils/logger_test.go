package utils

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestLogEvent(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	LogEvent("req-7", "lifecycle", "decide", "request_id=42 status=Approved")
	if !strings.Contains(buf.String(), "tripticket lifecycle.decide request_id=req-7 request_id=42 status=Approved") {
		t.Fatalf("unexpected log line: %s", buf.String())
	}

	buf.Reset()
	LogEvent("  ", "tap", "urgent_departure", "tag=T1")
	if !strings.Contains(buf.String(), "request_id=- tag=T1") {
		t.Fatalf("blank request id must log as '-': %s", buf.String())
	}
}
