package repositories

import (
	"database/sql"
	"time"

	intconfig "tripticket/internal/config"
	intdb "tripticket/internal/db"
	"tripticket/internal/domain"
	"tripticket/internal/domain/models"
)

// UrgentTripRepository wraps DB access for urgent_trips. The open/close
// writes are conditional on `arrival IS NULL` so that at most one open trip
// can exist per tag even under racing taps.
type UrgentTripRepository struct {
	DB *sql.DB
}

func (r UrgentTripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// LatestByTag returns the newest trip for a tag, open or closed.
func (r UrgentTripRepository) LatestByTag(tag string) (models.UrgentTrip, error) {
	row := r.db().QueryRow(`
		SELECT id, tag, vehicle_name, vehicle_plate, driver_name, departure, arrival
		FROM urgent_trips
		WHERE tag=?
		ORDER BY departure DESC, id DESC
		LIMIT 1`, tag)
	trip, err := scanUrgentTrip(row)
	if err == sql.ErrNoRows {
		return trip, domain.NotFoundError{Resource: "urgent trip"}
	}
	return trip, err
}

// OpenTrip opens a new trip unless one is already open for the tag. The
// guarded INSERT..SELECT inserts nothing when an open trip exists, which the
// caller treats as "this tap is the arrival".
func (r UrgentTripRepository) OpenTrip(trip models.UrgentTrip) (bool, error) {
	res, err := r.db().Exec(`
		INSERT INTO urgent_trips (tag, vehicle_name, vehicle_plate, driver_name, departure)
		SELECT ?,?,?,?,?
		FROM DUAL
		WHERE NOT EXISTS (
			SELECT 1 FROM urgent_trips WHERE tag=? AND arrival IS NULL
		)`,
		trip.Tag, trip.VehicleName, trip.VehiclePlate, trip.DriverName, trip.Departure,
		trip.Tag,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CloseTrip records the arrival on the open trip for a tag, if any.
func (r UrgentTripRepository) CloseTrip(tag string, at time.Time) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE urgent_trips SET arrival=?
		WHERE tag=? AND arrival IS NULL
		ORDER BY departure DESC LIMIT 1`,
		at, tag)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r UrgentTripRepository) List() ([]models.UrgentTrip, error) {
	rows, err := r.db().Query(`
		SELECT id, tag, vehicle_name, vehicle_plate, driver_name, departure, arrival
		FROM urgent_trips
		ORDER BY departure DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.UrgentTrip{}
	for rows.Next() {
		trip, err := scanUrgentTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, trip)
	}
	return out, rows.Err()
}

func scanUrgentTrip(row rowScanner) (models.UrgentTrip, error) {
	var (
		trip    models.UrgentTrip
		arrival sql.NullTime
	)
	err := row.Scan(&trip.ID, &trip.Tag, &trip.VehicleName, &trip.VehiclePlate, &trip.DriverName, &trip.Departure, &arrival)
	if err != nil {
		return trip, err
	}
	trip.Arrival = intdb.TimePtr(arrival)
	return trip, nil
}
