package notify

import (
	"bytes"
	"strings"
	"testing"
)

func TestBuildMessagePlain(t *testing.T) {
	m := Mailer{From: "noreply@example.com"}
	msg := m.buildMessage([]string{"juan@example.com"}, "Trip Ticket Approved", "<p>approved</p>", nil)

	text := string(msg)
	if !strings.Contains(text, "To: juan@example.com\r\n") {
		t.Fatalf("missing To header:\n%s", text)
	}
	if !strings.Contains(text, "Content-Type: text/html") {
		t.Fatalf("missing html content type:\n%s", text)
	}
	if strings.Contains(text, "multipart/mixed") {
		t.Fatalf("no attachments, must not be multipart")
	}
}

func TestBuildMessageWithAttachment(t *testing.T) {
	m := Mailer{From: "noreply@example.com"}
	att := Attachment{Filename: "TripTicket_Juan.pdf", Data: bytes.Repeat([]byte{0x25}, 200)}
	msg := m.buildMessage([]string{"juan@example.com"}, "Trip Ticket Approved", "<p>approved</p>", []Attachment{att})

	text := string(msg)
	if !strings.Contains(text, "multipart/mixed") {
		t.Fatalf("attachment requires multipart message")
	}
	if !strings.Contains(text, `filename="TripTicket_Juan.pdf"`) {
		t.Fatalf("missing attachment disposition:\n%s", text)
	}
	if !strings.Contains(text, "Content-Transfer-Encoding: base64") {
		t.Fatalf("attachment must be base64 encoded")
	}
}

func TestSendRejectsEmptyRecipients(t *testing.T) {
	m := Mailer{Host: "localhost", Port: "25"}
	if err := m.Send([]string{" ", ""}, "x", "y"); err == nil {
		t.Fatalf("expected error for empty recipient list")
	}
}
