package services

import (
	"strconv"
	"time"

	"tripticket/internal/repositories"
	"tripticket/internal/utils"
)

// TicketService mints ticket numbers for approved requests. Issue is safe to
// retry: the upsert keyed by request id keeps exactly one row per request,
// overwriting the token instead of duplicating it. LifecycleService is the
// sole caller and calls it once per Approved transition.
type TicketService struct {
	Tickets   repositories.TicketRepository
	RequestID string
	Now       func() time.Time
}

func (s TicketService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s TicketService) Issue(requestID int64) (string, error) {
	now := s.now()
	ticketNo := utils.NewTicketNo(now)
	if err := s.Tickets.Upsert(requestID, ticketNo, now); err != nil {
		return "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "issue", "request_id="+strconv.FormatInt(requestID, 10)+" ticket_no="+ticketNo)
	return ticketNo, nil
}
