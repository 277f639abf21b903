package services

import (
	"strings"
	"testing"
	"time"

	"tripticket/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestIssueMintsAndUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	svc := TicketService{
		Tickets: repositories.TicketRepository{DB: db},
		Now:     func() time.Time { return now },
	}

	mock.ExpectExec("INSERT INTO ticket_numbers").WillReturnResult(sqlmock.NewResult(1, 1))

	ticketNo, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if !strings.HasPrefix(ticketNo, "TT-20250602-") {
		t.Fatalf("ticket no = %q, want TT-20250602- prefix", ticketNo)
	}
	if len(ticketNo) != len("TT-20250602-")+6 {
		t.Fatalf("ticket no = %q, want 6 char suffix", ticketNo)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIssueRetrySameRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := TicketService{Tickets: repositories.TicketRepository{DB: db}}

	// the upsert keyed by request id means a retry touches the same row
	mock.ExpectExec("INSERT INTO ticket_numbers").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO ticket_numbers").WillReturnResult(sqlmock.NewResult(0, 2))

	first, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("first issue error: %v", err)
	}
	second, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("second issue error: %v", err)
	}
	if first == second {
		t.Fatalf("retry minted the same token %q twice", first)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
