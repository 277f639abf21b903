package services

import (
	"fmt"
	"time"

	"tripticket/internal/domain"
	"tripticket/internal/domain/models"
	"tripticket/internal/events"
	"tripticket/internal/repositories"
	"tripticket/internal/utils"
)

// TapCooldown is the minimum gap between accepted taps for one tag. A badge
// reader can double-fire within a single physical tap; without the cooldown
// one real tap could register as an immediate departure+arrival pair.
const TapCooldown = 5 * time.Second

const (
	TapEventDeparture = "departure"
	TapEventArrival   = "arrival"
)

// TapResult reports how a tap was interpreted.
type TapResult struct {
	Event   string              `json:"event"`
	Trip    *models.UrgentTrip  `json:"trip,omitempty"`
	Request *models.TripRequest `json:"request,omitempty"`
}

// TapService turns bare RFID taps into urgent-trip opens and closes. Per tag
// this is a two-state machine: an open trip (no arrival yet) flips to closed,
// anything else opens a new trip. The open/close writes are conditional
// statements, so two racing taps can never both open a trip for one tag.
type TapService struct {
	Urgent   repositories.UrgentTripRepository
	Requests repositories.RequestRepository
	Vehicles repositories.VehicleRepository
	Drivers  repositories.DriverRepository

	Events    events.Publisher
	RequestID string
	Now       func() time.Time
	// Cooldown overrides TapCooldown in tests.
	Cooldown time.Duration
}

func (s TapService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s TapService) cooldown() time.Duration {
	if s.Cooldown > 0 {
		return s.Cooldown
	}
	return TapCooldown
}

func (s TapService) publish(name string, payload any) {
	if s.Events != nil {
		s.Events.Publish(name, payload)
	}
}

// Tap processes a gate tap for a private vehicle against the urgent-trip log.
func (s TapService) Tap(tag string) (TapResult, error) {
	now := s.now()

	vehicle, err := s.resolveTag(tag, domain.OwnerPrivate)
	if err != nil {
		return TapResult{}, err
	}

	latest, err := s.Urgent.LatestByTag(tag)
	switch {
	case err == nil:
		if wait := s.cooldown() - now.Sub(latest.LastEvent()); wait > 0 {
			return TapResult{}, domain.CooldownActiveError{Tag: tag, Remaining: wait.Round(time.Second).String()}
		}
	case domain.IsNotFound(err):
		// first tap ever for this tag
	default:
		return TapResult{}, domain.InternalError{Msg: "failed to look up urgent trips", Err: err}
	}

	if err == nil && latest.Open() {
		closed, err := s.Urgent.CloseTrip(tag, now)
		if err != nil {
			return TapResult{}, domain.InternalError{Msg: "failed to close urgent trip", Err: err}
		}
		if closed {
			return s.urgentArrival(tag)
		}
		// raced with another tap that closed it first; fall through and open
	}

	trip := models.UrgentTrip{
		Tag:          tag,
		VehicleName:  vehicle.VehicleName,
		VehiclePlate: vehicle.PlateNo,
		DriverName:   s.assignedDriverName(vehicle),
		Departure:    now,
	}
	opened, err := s.Urgent.OpenTrip(trip)
	if err != nil {
		return TapResult{}, domain.InternalError{Msg: "failed to open urgent trip", Err: err}
	}
	if !opened {
		// a concurrent tap opened first, so this one is the arrival
		closed, err := s.Urgent.CloseTrip(tag, now)
		if err != nil {
			return TapResult{}, domain.InternalError{Msg: "failed to close urgent trip", Err: err}
		}
		if !closed {
			return TapResult{}, domain.ConflictError{Resource: "urgent trip", Msg: "tap raced, retry"}
		}
		return s.urgentArrival(tag)
	}

	created, err := s.Urgent.LatestByTag(tag)
	if err != nil {
		return TapResult{}, domain.InternalError{Msg: "failed to reload urgent trip", Err: err}
	}
	utils.LogEvent(s.RequestID, "tap", "urgent_departure", fmt.Sprintf("tag=%s trip_id=%d", tag, created.ID))
	s.publish("urgent-departure", created)
	return TapResult{Event: TapEventDeparture, Trip: &created}, nil
}

// TapToRequestForm applies the same open/close/cooldown algorithm for
// government vehicles, writing into the formal request ledger with status
// Urgent instead of the urgent-trip log.
func (s TapService) TapToRequestForm(tag string) (TapResult, error) {
	now := s.now()

	vehicle, err := s.resolveTag(tag, domain.OwnerGovernment)
	if err != nil {
		return TapResult{}, err
	}

	latest, err := s.Requests.LatestUrgentByTag(tag)
	switch {
	case err == nil:
		if last := latest.LastTravelEvent(); last != nil {
			if wait := s.cooldown() - now.Sub(*last); wait > 0 {
				return TapResult{}, domain.CooldownActiveError{Tag: tag, Remaining: wait.Round(time.Second).String()}
			}
		}
	case domain.IsNotFound(err):
		// first tap ever for this tag
	default:
		return TapResult{}, domain.InternalError{Msg: "failed to look up urgent requests", Err: err}
	}

	if err == nil && latest.Open() {
		closed, err := s.Requests.CloseUrgentForm(tag, now)
		if err != nil {
			return TapResult{}, domain.InternalError{Msg: "failed to close urgent request", Err: err}
		}
		if closed {
			return s.formArrival(tag)
		}
	}

	driverName := s.assignedDriverName(vehicle)
	form := models.TripRequest{
		RequestedBy:  driverName,
		Destination:  "Unscheduled",
		Purpose:      "Urgent trip recorded at gate",
		DriverName:   driverName,
		VehicleID:    vehicle.ID,
		VehicleName:  vehicle.VehicleName,
		VehiclePlate: vehicle.PlateNo,
		RFIDTag:      tag,
	}
	if vehicle.AssignedDriverID > 0 {
		if driver, err := s.Drivers.GetByID(vehicle.AssignedDriverID); err == nil {
			form.DriverID = driver.ID
			form.DriverContactNo = driver.ContactNo
			form.DriverEmail = driver.Email
		}
	}

	opened, err := s.Requests.CreateUrgentForm(form, now)
	if err != nil {
		return TapResult{}, domain.InternalError{Msg: "failed to open urgent request", Err: err}
	}
	if !opened {
		closed, err := s.Requests.CloseUrgentForm(tag, now)
		if err != nil {
			return TapResult{}, domain.InternalError{Msg: "failed to close urgent request", Err: err}
		}
		if !closed {
			return TapResult{}, domain.ConflictError{Resource: "urgent request", Msg: "tap raced, retry"}
		}
		return s.formArrival(tag)
	}

	created, err := s.Requests.LatestUrgentByTag(tag)
	if err != nil {
		return TapResult{}, domain.InternalError{Msg: "failed to reload urgent request", Err: err}
	}
	utils.LogEvent(s.RequestID, "tap", "form_departure", fmt.Sprintf("tag=%s request_id=%d", tag, created.ID))
	s.publish("urgent-departure", created)
	return TapResult{Event: TapEventDeparture, Request: &created}, nil
}

// resolveTag looks the tag up in the vehicle registry and enforces the
// owner-class routing before any write happens.
func (s TapService) resolveTag(tag, wantClass string) (models.Vehicle, error) {
	vehicle, err := s.Vehicles.GetByTag(tag)
	if err != nil {
		if domain.IsNotFound(err) {
			return vehicle, domain.UnknownTagError{Tag: tag}
		}
		return vehicle, domain.InternalError{Msg: "failed to resolve tag", Err: err}
	}
	if vehicle.OwnerClass != wantClass {
		return vehicle, domain.ForbiddenTagClassError{Tag: tag, Class: vehicle.OwnerClass}
	}
	return vehicle, nil
}

func (s TapService) assignedDriverName(vehicle models.Vehicle) string {
	if vehicle.AssignedDriverID <= 0 {
		return ""
	}
	driver, err := s.Drivers.GetByID(vehicle.AssignedDriverID)
	if err != nil {
		return ""
	}
	return driver.DriverName
}

func (s TapService) urgentArrival(tag string) (TapResult, error) {
	trip, err := s.Urgent.LatestByTag(tag)
	if err != nil {
		return TapResult{}, domain.InternalError{Msg: "failed to reload urgent trip", Err: err}
	}
	utils.LogEvent(s.RequestID, "tap", "urgent_arrival", fmt.Sprintf("tag=%s trip_id=%d", tag, trip.ID))
	s.publish("urgent-arrival", trip)
	return TapResult{Event: TapEventArrival, Trip: &trip}, nil
}

func (s TapService) formArrival(tag string) (TapResult, error) {
	req, err := s.Requests.LatestUrgentByTag(tag)
	if err != nil {
		return TapResult{}, domain.InternalError{Msg: "failed to reload urgent request", Err: err}
	}
	utils.LogEvent(s.RequestID, "tap", "form_arrival", fmt.Sprintf("tag=%s request_id=%d", tag, req.ID))
	s.publish("urgent-arrival", req)
	return TapResult{Event: TapEventArrival, Request: &req}, nil
}
