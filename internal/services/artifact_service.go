package services

import (
	"fmt"

	"tripticket/internal/domain"
	"tripticket/internal/domain/models"
	"tripticket/internal/notify"
	"tripticket/internal/utils"
)

// TicketRenderer produces the printable ticket document.
type TicketRenderer interface {
	RenderTicket(req models.TripRequest, ticketNo string) ([]byte, string, error)
}

// Notifier delivers a notification, best-effort.
type Notifier interface {
	Send(to []string, subject, htmlBody string, attachments ...notify.Attachment) error
}

// ArtifactRunner is what the lifecycle dispatches after a committed decision.
type ArtifactRunner interface {
	OnApproved(req models.TripRequest, ticketNo string)
	OnRejected(req models.TripRequest)
}

// ArtifactService runs the post-decision side effects: render the ticket,
// then email requester and driver. Every stage failure is logged and
// swallowed here; the persisted decision is the source of truth and is never
// rolled back for a rendering or delivery problem.
type ArtifactService struct {
	Renderer  TicketRenderer
	Notifier  Notifier
	RequestID string
}

func (s ArtifactService) OnApproved(req models.TripRequest, ticketNo string) {
	var attachments []notify.Attachment

	if s.Renderer != nil {
		data, filename, err := s.Renderer.RenderTicket(req, ticketNo)
		if err != nil {
			utils.LogEvent(s.RequestID, "artifact", "render_failed",
				fmt.Sprintf("request_id=%d err=%v", req.ID, domain.RenderError{Err: err}))
		} else {
			attachments = append(attachments, notify.Attachment{Filename: filename, Data: data})
		}
	}

	recipients := []string{req.Email}
	if req.DriverEmail != "" {
		recipients = append(recipients, req.DriverEmail)
	}

	body := fmt.Sprintf(`
		<h3>Your trip has been approved</h3>
		<p>Ticket number: <b>%s</b></p>
		<p>Kindly bring the hardcopy of the trip ticket provided below to the authorities for signatures.</p>
		<p>For any inquiries, please contact support.</p>
	`, safe(ticketNo, "-"))

	if err := s.notify(recipients, "Trip Ticket Approved", body, attachments...); err != nil {
		utils.LogEvent(s.RequestID, "artifact", "notify_failed",
			fmt.Sprintf("request_id=%d err=%v", req.ID, domain.NotificationError{Err: err}))
		return
	}
	utils.LogEvent(s.RequestID, "artifact", "approved_delivered", fmt.Sprintf("request_id=%d", req.ID))
}

func (s ArtifactService) OnRejected(req models.TripRequest) {
	body := `
		<h3>Your trip request has been rejected</h3>
		<p>Unfortunately, your trip ticket request was not approved.</p>
		<p>For further details, please contact support or your office administrator.</p>
	`

	if err := s.notify([]string{req.Email}, "Trip Ticket Rejected", body); err != nil {
		utils.LogEvent(s.RequestID, "artifact", "notify_failed",
			fmt.Sprintf("request_id=%d err=%v", req.ID, domain.NotificationError{Err: err}))
		return
	}
	utils.LogEvent(s.RequestID, "artifact", "rejected_delivered", fmt.Sprintf("request_id=%d", req.ID))
}

func (s ArtifactService) notify(to []string, subject, body string, attachments ...notify.Attachment) error {
	if s.Notifier == nil {
		return fmt.Errorf("no notifier configured")
	}
	return s.Notifier.Send(to, subject, body, attachments...)
}
