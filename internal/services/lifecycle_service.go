package services

import (
	"fmt"
	"strings"
	"time"

	"tripticket/internal/domain"
	"tripticket/internal/domain/models"
	"tripticket/internal/events"
	"tripticket/internal/repositories"
	"tripticket/internal/utils"
)

// TicketIssuer mints and persists the ticket number for an approved request.
type TicketIssuer interface {
	Issue(requestID int64) (string, error)
}

// LifecycleService enforces the legal transitions of a trip request: the
// approval axis (Pending -> Approved/Rejected, monotonic) and the travel
// sub-state (NotStarted -> OnGoing -> Completed, each timestamp written at
// most once). All guarded writes go through conditional repository calls.
type LifecycleService struct {
	Requests repositories.RequestRepository
	Drivers  repositories.DriverRepository
	Offices  repositories.OfficeRepository
	Vehicles repositories.VehicleRepository

	Issuer    TicketIssuer
	Artifacts ArtifactRunner
	Events    events.Publisher

	RequestID string
	Now       func() time.Time
	// Dispatch runs artifact side effects after the decision is committed.
	// The default runs them on a goroutine so decide never blocks on
	// rendering or SMTP; tests inject a synchronous dispatcher.
	Dispatch func(func())
}

// SubmitInput carries the requester's form. Dates are already parsed by the
// HTTP layer.
type SubmitInput struct {
	RequestedBy          string
	Email                string
	Designation          string
	OfficeID             int64
	Destination          string
	Purpose              string
	DepartureDate        *time.Time
	ArrivalDate          *time.Time
	AuthorizedPassengers string
	Remarks              string
	DriverID             int64
	VehicleID            int64
}

// DecideInput carries the approver's verdict plus any corrected fields.
type DecideInput struct {
	Decision             domain.Decision
	Remarks              string
	AuthorizedPassengers string
	DriverID             int64
	VehicleID            int64
}

func (s LifecycleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s LifecycleService) dispatch(fn func()) {
	if s.Dispatch != nil {
		s.Dispatch(fn)
		return
	}
	go fn()
}

func (s LifecycleService) publish(name string, payload any) {
	if s.Events != nil {
		s.Events.Publish(name, payload)
	}
}

// Submit validates the form, snapshots the registry display fields and
// creates the request in Pending.
func (s LifecycleService) Submit(in SubmitInput) (models.TripRequest, error) {
	if strings.TrimSpace(in.RequestedBy) == "" {
		return models.TripRequest{}, domain.ValidationError{Field: "requestedBy", Msg: "required"}
	}
	if strings.TrimSpace(in.Destination) == "" {
		return models.TripRequest{}, domain.ValidationError{Field: "destination", Msg: "required"}
	}
	if strings.TrimSpace(in.Purpose) == "" {
		return models.TripRequest{}, domain.ValidationError{Field: "purpose", Msg: "required"}
	}
	if in.DepartureDate == nil {
		return models.TripRequest{}, domain.ValidationError{Field: "departureDate", Msg: "required"}
	}

	req := models.TripRequest{
		Status:               domain.StatusPending,
		RequestedBy:          strings.TrimSpace(in.RequestedBy),
		Email:                strings.TrimSpace(in.Email),
		Designation:          in.Designation,
		OfficeID:             in.OfficeID,
		Destination:          strings.TrimSpace(in.Destination),
		Purpose:              in.Purpose,
		DepartureDate:        in.DepartureDate,
		ArrivalDate:          in.ArrivalDate,
		AuthorizedPassengers: in.AuthorizedPassengers,
		Remarks:              in.Remarks,
		DriverID:             in.DriverID,
		VehicleID:            in.VehicleID,
		TravelStatus:         domain.TravelNotStarted,
		CreatedAt:            s.now(),
	}
	s.resolveSnapshots(&req)

	created, err := s.Requests.Create(req)
	if err != nil {
		return created, domain.InternalError{Msg: "failed to save trip request", Err: err}
	}

	utils.LogEvent(s.RequestID, "lifecycle", "submit", fmt.Sprintf("request_id=%d", created.ID))
	s.publish("request-created", created)
	return created, nil
}

// Decide moves a Pending request to Approved or Rejected. The status row is
// committed before any artifact side effect runs; a second decision for the
// same request is a conflict, never a silent re-issue.
func (s LifecycleService) Decide(id int64, in DecideInput) (models.TripRequest, error) {
	status, err := decisionStatus(in.Decision)
	if err != nil {
		return models.TripRequest{}, err
	}

	req, err := s.Requests.GetByID(id)
	if err != nil {
		return models.TripRequest{}, err
	}

	if in.Remarks != "" {
		req.Remarks = in.Remarks
	}
	if in.AuthorizedPassengers != "" {
		req.AuthorizedPassengers = in.AuthorizedPassengers
	}
	if in.DriverID > 0 {
		req.DriverID = in.DriverID
	}
	if in.VehicleID > 0 {
		req.VehicleID = in.VehicleID
	}
	s.resolveSnapshots(&req)

	applied, err := s.Requests.ApplyDecision(id, status, req)
	if err != nil {
		return models.TripRequest{}, domain.InternalError{Msg: "failed to save decision", Err: err}
	}
	if !applied {
		// the conditional update matched nothing: either the row vanished or
		// the request was already decided
		current, err := s.Requests.GetByID(id)
		if err != nil {
			return models.TripRequest{}, err
		}
		return current, domain.ConflictError{
			Resource: "trip request",
			Msg:      fmt.Sprintf("already %s", strings.ToLower(string(current.Status))),
		}
	}

	utils.LogEvent(s.RequestID, "lifecycle", "decide",
		fmt.Sprintf("request_id=%d status=%s", id, status))

	if status == domain.StatusApproved {
		ticketNo := ""
		if s.Issuer != nil {
			ticketNo, err = s.Issuer.Issue(id)
			if err != nil {
				// issuance is retried on the next artifact regeneration; the
				// approval itself stands
				utils.LogEvent(s.RequestID, "lifecycle", "issue_failed",
					fmt.Sprintf("request_id=%d err=%v", id, domain.IssuanceError{Err: err}))
				ticketNo = ""
			}
		}
		if ticketNo != "" {
			if err := s.Requests.SetTicketNo(id, ticketNo); err != nil {
				utils.LogEvent(s.RequestID, "lifecycle", "ticket_no_save_failed",
					fmt.Sprintf("request_id=%d err=%v", id, err))
			}
		}

		decided, err := s.Requests.GetByID(id)
		if err != nil {
			return models.TripRequest{}, err
		}
		if s.Artifacts != nil {
			runner, req, no := s.Artifacts, decided, ticketNo
			s.dispatch(func() { runner.OnApproved(req, no) })
		}
		s.publish("request-updated", decided)
		return decided, nil
	}

	decided, err := s.Requests.GetByID(id)
	if err != nil {
		return models.TripRequest{}, err
	}
	if s.Artifacts != nil {
		runner, req := s.Artifacts, decided
		s.dispatch(func() { runner.OnRejected(req) })
	}
	s.publish("request-updated", decided)
	return decided, nil
}

// RecordDeparture writes travel_out exactly once for a request scheduled
// today whose stored tag matches the scanned one.
func (s LifecycleService) RecordDeparture(tag string, id int64) (models.TripRequest, error) {
	now := s.now()
	dayStart, dayEnd := utils.DayRange(now)

	ok, err := s.Requests.MarkDeparture(id, tag, now, dayStart, dayEnd)
	if err != nil {
		return models.TripRequest{}, domain.InternalError{Msg: "failed to record departure", Err: err}
	}
	if !ok {
		req, err := s.Requests.GetByTagAndID(tag, id)
		if err != nil {
			return models.TripRequest{}, err
		}
		if req.TravelOut != nil {
			return req, domain.AlreadyStartedError{RequestID: id}
		}
		// tag and id matched but the request is not scheduled today
		return req, domain.NotFoundError{Resource: "trip request for today"}
	}

	utils.LogEvent(s.RequestID, "lifecycle", "travel_out", fmt.Sprintf("request_id=%d tag=%s", id, tag))
	req, err := s.Requests.GetByTagAndID(tag, id)
	if err != nil {
		return req, err
	}
	s.publish("travel-out", req)
	return req, nil
}

// RecordArrival writes travel_in exactly once, only after a departure.
func (s LifecycleService) RecordArrival(tag string, id int64) (models.TripRequest, error) {
	now := s.now()

	ok, err := s.Requests.MarkArrival(id, tag, now)
	if err != nil {
		return models.TripRequest{}, domain.InternalError{Msg: "failed to record arrival", Err: err}
	}
	if !ok {
		req, err := s.Requests.GetByTagAndID(tag, id)
		if err != nil {
			return models.TripRequest{}, err
		}
		if req.TravelIn != nil {
			return req, domain.AlreadyCompletedError{RequestID: id}
		}
		return req, domain.NotStartedError{RequestID: id}
	}

	utils.LogEvent(s.RequestID, "lifecycle", "travel_in", fmt.Sprintf("request_id=%d tag=%s", id, tag))
	req, err := s.Requests.GetByTagAndID(tag, id)
	if err != nil {
		return req, err
	}
	s.publish("travel-in", req)
	return req, nil
}

// resolveSnapshots copies registry display fields into the request. Missing
// registry rows leave the snapshot empty, matching the form's behavior when
// no driver or office has been assigned yet.
func (s LifecycleService) resolveSnapshots(req *models.TripRequest) {
	if req.OfficeID > 0 {
		if office, err := s.Offices.GetByID(req.OfficeID); err == nil {
			req.RequestorOffice = office.OfficeName
		}
	}
	if req.DriverID > 0 {
		if driver, err := s.Drivers.GetByID(req.DriverID); err == nil {
			req.DriverName = driver.DriverName
			req.DriverContactNo = driver.ContactNo
			req.DriverEmail = driver.Email
		}
	}
	if req.VehicleID > 0 {
		if vehicle, err := s.Vehicles.GetByID(req.VehicleID); err == nil {
			req.VehicleName = vehicle.VehicleName
			req.VehiclePlate = vehicle.PlateNo
			req.RFIDTag = vehicle.RFIDTag
		}
	}
}

func decisionStatus(d domain.Decision) (domain.Status, error) {
	switch d {
	case domain.DecisionApproved:
		return domain.StatusApproved, nil
	case domain.DecisionRejected:
		return domain.StatusRejected, nil
	default:
		return "", domain.ValidationError{Field: "decision", Msg: "must be Approved or Rejected"}
	}
}
