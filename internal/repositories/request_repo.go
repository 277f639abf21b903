package repositories

import (
	"database/sql"
	"strings"
	"time"

	intconfig "tripticket/internal/config"
	intdb "tripticket/internal/db"
	"tripticket/internal/domain"
	"tripticket/internal/domain/models"
)

const requestColumns = `id, status, requested_by, email, designation, office_id, requestor_office,
	destination, purpose, departure_date, arrival_date, authorized_passengers, remarks,
	driver_id, driver_name, driver_contact_no, driver_email,
	vehicle_id, vehicle_name, vehicle_plate, rfid_tag,
	travel_out, travel_in, travel_status, ticket_no, created_at`

// RequestRepository wraps DB access for request_forms. Every guarded write
// (travel timestamps, approval status, urgent open/close) is a single
// conditional statement keyed on the expected prior state; callers classify
// a zero-rows result into the matching domain error.
type RequestRepository struct {
	DB *sql.DB
}

func (r RequestRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r RequestRepository) Create(req models.TripRequest) (models.TripRequest, error) {
	res, err := r.db().Exec(`
		INSERT INTO request_forms
			(status, requested_by, email, designation, office_id, requestor_office,
			 destination, purpose, departure_date, arrival_date, authorized_passengers, remarks,
			 driver_id, driver_name, driver_contact_no, driver_email,
			 vehicle_id, vehicle_name, vehicle_plate, rfid_tag,
			 travel_out, travel_in, travel_status, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		string(req.Status), req.RequestedBy, req.Email, req.Designation, req.OfficeID, req.RequestorOffice,
		req.Destination, req.Purpose, intdb.NullTime(req.DepartureDate), intdb.NullTime(req.ArrivalDate),
		req.AuthorizedPassengers, req.Remarks,
		req.DriverID, req.DriverName, req.DriverContactNo, req.DriverEmail,
		req.VehicleID, req.VehicleName, req.VehiclePlate, req.RFIDTag,
		intdb.NullTime(req.TravelOut), intdb.NullTime(req.TravelIn), string(req.TravelStatus), req.CreatedAt,
	)
	if err != nil {
		return req, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return req, err
	}
	req.ID = id
	return req, nil
}

func (r RequestRepository) GetByID(id int64) (models.TripRequest, error) {
	row := r.db().QueryRow(`SELECT `+requestColumns+` FROM request_forms WHERE id=?`, id)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return req, domain.NotFoundError{Resource: "trip request"}
	}
	return req, err
}

func (r RequestRepository) GetByTagAndID(tag string, id int64) (models.TripRequest, error) {
	row := r.db().QueryRow(`SELECT `+requestColumns+` FROM request_forms WHERE id=? AND rfid_tag=?`, id, tag)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return req, domain.NotFoundError{Resource: "trip request"}
	}
	return req, err
}

// LatestUrgentByTag returns the most recent tap-created ledger entry for a
// tag, or NotFoundError when the tag has none yet.
func (r RequestRepository) LatestUrgentByTag(tag string) (models.TripRequest, error) {
	row := r.db().QueryRow(`
		SELECT `+requestColumns+` FROM request_forms
		WHERE rfid_tag=? AND status=?
		ORDER BY travel_out DESC, id DESC
		LIMIT 1`, tag, string(domain.StatusUrgent))
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return req, domain.NotFoundError{Resource: "urgent request"}
	}
	return req, err
}

func (r RequestRepository) List(status string) ([]models.TripRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM request_forms`
	args := []any{}
	if s := strings.TrimSpace(status); s != "" {
		query += ` WHERE status=?`
		args = append(args, s)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return out, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r RequestRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM request_forms WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip request"}
	}
	return nil
}

// ApplyDecision moves a request out of Pending. The status predicate makes
// the approval axis monotonic: a second decision matches zero rows.
func (r RequestRepository) ApplyDecision(id int64, status domain.Status, req models.TripRequest) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE request_forms SET
			status=?, requested_by=?, email=?, designation=?, office_id=?, requestor_office=?,
			destination=?, purpose=?, departure_date=?, arrival_date=?,
			authorized_passengers=?, remarks=?,
			driver_id=?, driver_name=?, driver_contact_no=?, driver_email=?,
			vehicle_id=?, vehicle_name=?, vehicle_plate=?, rfid_tag=?
		WHERE id=? AND status=?`,
		string(status), req.RequestedBy, req.Email, req.Designation, req.OfficeID, req.RequestorOffice,
		req.Destination, req.Purpose, intdb.NullTime(req.DepartureDate), intdb.NullTime(req.ArrivalDate),
		req.AuthorizedPassengers, req.Remarks,
		req.DriverID, req.DriverName, req.DriverContactNo, req.DriverEmail,
		req.VehicleID, req.VehicleName, req.VehiclePlate, req.RFIDTag,
		id, string(domain.StatusPending),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetTicketNo stores the issued ticket number, only if none is set yet.
func (r RequestRepository) SetTicketNo(id int64, ticketNo string) error {
	_, err := r.db().Exec(`
		UPDATE request_forms SET ticket_no=?
		WHERE id=? AND (ticket_no IS NULL OR ticket_no='')`,
		ticketNo, id)
	return err
}

// MarkDeparture sets travel_out exactly once for a request scheduled within
// [dayStart, dayEnd). Zero rows means a precondition no longer holds.
func (r RequestRepository) MarkDeparture(id int64, tag string, at, dayStart, dayEnd time.Time) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE request_forms SET travel_out=?, travel_status=?
		WHERE id=? AND rfid_tag=? AND travel_out IS NULL
		  AND departure_date>=? AND departure_date<?`,
		at, string(domain.TravelOnGoing), id, tag, dayStart, dayEnd)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// MarkArrival sets travel_in exactly once, and only after a departure.
func (r RequestRepository) MarkArrival(id int64, tag string, at time.Time) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE request_forms SET travel_in=?, travel_status=?
		WHERE id=? AND rfid_tag=? AND travel_out IS NOT NULL AND travel_in IS NULL`,
		at, string(domain.TravelCompleted), id, tag)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CreateUrgentForm opens a tap-initiated ledger entry, guarded against a
// concurrent open entry for the same tag. The INSERT..SELECT matches no row
// when an open urgent form already exists, so two near-simultaneous taps can
// never both open.
func (r RequestRepository) CreateUrgentForm(req models.TripRequest, at time.Time) (bool, error) {
	res, err := r.db().Exec(`
		INSERT INTO request_forms
			(status, requested_by, destination, purpose,
			 driver_id, driver_name, driver_contact_no, driver_email,
			 vehicle_id, vehicle_name, vehicle_plate, rfid_tag,
			 travel_out, travel_status, created_at)
		SELECT ?,?,?,?,?,?,?,?,?,?,?,?,?,?,?
		FROM DUAL
		WHERE NOT EXISTS (
			SELECT 1 FROM request_forms
			WHERE rfid_tag=? AND status=? AND travel_out IS NOT NULL AND travel_in IS NULL
		)`,
		string(domain.StatusUrgent), req.RequestedBy, req.Destination, req.Purpose,
		req.DriverID, req.DriverName, req.DriverContactNo, req.DriverEmail,
		req.VehicleID, req.VehicleName, req.VehiclePlate, req.RFIDTag,
		at, string(domain.TravelOnGoing), at,
		req.RFIDTag, string(domain.StatusUrgent),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CloseUrgentForm records the arrival on the open tap-initiated entry.
func (r RequestRepository) CloseUrgentForm(tag string, at time.Time) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE request_forms SET travel_in=?, travel_status=?
		WHERE rfid_tag=? AND status=? AND travel_out IS NOT NULL AND travel_in IS NULL
		ORDER BY travel_out DESC LIMIT 1`,
		at, string(domain.TravelCompleted), tag, string(domain.StatusUrgent))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (models.TripRequest, error) {
	var (
		req           models.TripRequest
		status        string
		travelStatus  string
		departureDate sql.NullTime
		arrivalDate   sql.NullTime
		travelOut     sql.NullTime
		travelIn      sql.NullTime
		ticketNo      sql.NullString
	)
	err := row.Scan(
		&req.ID, &status, &req.RequestedBy, &req.Email, &req.Designation, &req.OfficeID, &req.RequestorOffice,
		&req.Destination, &req.Purpose, &departureDate, &arrivalDate, &req.AuthorizedPassengers, &req.Remarks,
		&req.DriverID, &req.DriverName, &req.DriverContactNo, &req.DriverEmail,
		&req.VehicleID, &req.VehicleName, &req.VehiclePlate, &req.RFIDTag,
		&travelOut, &travelIn, &travelStatus, &ticketNo, &req.CreatedAt,
	)
	if err != nil {
		return req, err
	}
	req.Status = domain.Status(status)
	req.TravelStatus = domain.TravelStatus(travelStatus)
	req.DepartureDate = intdb.TimePtr(departureDate)
	req.ArrivalDate = intdb.TimePtr(arrivalDate)
	req.TravelOut = intdb.TimePtr(travelOut)
	req.TravelIn = intdb.TimePtr(travelIn)
	req.TicketNo = ticketNo.String
	return req, nil
}
