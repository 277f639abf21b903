package models

import (
	"time"

	"tripticket/internal/domain"
)

// TripRequest is a single vehicle-trip authorization. Driver and office
// fields are snapshots resolved at submit/decide time, not live joins.
type TripRequest struct {
	ID     int64         `json:"id"`
	Status domain.Status `json:"status"`

	RequestedBy     string `json:"requestedBy"`
	Email           string `json:"email"`
	Designation     string `json:"designation"`
	OfficeID        int64  `json:"officeId"`
	RequestorOffice string `json:"requestorOffice"`

	Destination string `json:"destination"`
	Purpose     string `json:"purpose"`

	DepartureDate *time.Time `json:"departureDate"`
	ArrivalDate   *time.Time `json:"arrivalDate"`

	AuthorizedPassengers string `json:"authorizedPassengers"`
	Remarks              string `json:"remarks"`

	DriverID        int64  `json:"driverId"`
	DriverName      string `json:"driverName"`
	DriverContactNo string `json:"driverContactNo"`
	DriverEmail     string `json:"driverEmail"`

	VehicleID    int64  `json:"vehicleId"`
	VehicleName  string `json:"vehicleName"`
	VehiclePlate string `json:"vehiclePlate"`
	RFIDTag      string `json:"rfidTag"`

	// TravelOut/TravelIn are set at most once each, TravelOut first.
	TravelOut    *time.Time          `json:"travelOut"`
	TravelIn     *time.Time          `json:"travelIn"`
	TravelStatus domain.TravelStatus `json:"travelStatus"`

	// TicketNo is assigned once, on the transition into Approved.
	TicketNo string `json:"ticketNo"`

	CreatedAt time.Time `json:"createdAt"`
}

// Open reports whether the request has departed but not yet returned.
func (r TripRequest) Open() bool {
	return r.TravelOut != nil && r.TravelIn == nil
}

// LastTravelEvent returns the most recent recorded travel instant, if any.
func (r TripRequest) LastTravelEvent() *time.Time {
	if r.TravelIn != nil {
		return r.TravelIn
	}
	return r.TravelOut
}
