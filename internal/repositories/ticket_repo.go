package repositories

import (
	"database/sql"
	"time"

	intconfig "tripticket/internal/config"
)

// TicketRepository persists issued ticket numbers, one row per request.
type TicketRepository struct {
	DB *sql.DB
}

func (r TicketRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Upsert stores the ticket number keyed by request id. A retry after a
// half-finished issuance overwrites the token instead of adding a second row.
func (r TicketRepository) Upsert(requestID int64, ticketNo string, issuedAt time.Time) error {
	_, err := r.db().Exec(`
		INSERT INTO ticket_numbers (request_id, ticket_no, issued_at)
		VALUES (?,?,?)
		ON DUPLICATE KEY UPDATE ticket_no=VALUES(ticket_no), issued_at=VALUES(issued_at)`,
		requestID, ticketNo, issuedAt)
	return err
}

// GetByRequestID returns the stored number, or empty when none was issued.
func (r TicketRepository) GetByRequestID(requestID int64) (string, error) {
	var ticketNo string
	err := r.db().QueryRow(`SELECT ticket_no FROM ticket_numbers WHERE request_id=?`, requestID).Scan(&ticketNo)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return ticketNo, err
}
