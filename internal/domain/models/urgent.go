package models

import "time"

// UrgentTrip is an unscheduled trip inferred purely from RFID taps at the
// gate: one row per departure/arrival pair, keyed by tag. Vehicle and driver
// fields are captured at departure time and never re-resolved.
type UrgentTrip struct {
	ID  int64  `json:"id"`
	Tag string `json:"tag"`

	VehicleName  string `json:"vehicleName"`
	VehiclePlate string `json:"vehiclePlate"`
	DriverName   string `json:"driverName"`

	Departure time.Time  `json:"departure"`
	Arrival   *time.Time `json:"arrival"`
}

// Open reports whether the trip is still waiting for its arrival tap.
func (t UrgentTrip) Open() bool { return t.Arrival == nil }

// LastEvent is the arrival when closed, otherwise the departure. Cooldown
// checks run against this instant.
func (t UrgentTrip) LastEvent() time.Time {
	if t.Arrival != nil {
		return *t.Arrival
	}
	return t.Departure
}
