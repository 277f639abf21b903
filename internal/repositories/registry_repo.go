package repositories

import (
	"database/sql"

	intconfig "tripticket/internal/config"
	"tripticket/internal/domain"
	"tripticket/internal/domain/models"
)

// Registry repositories back the driver/office/vehicle lookups the lifecycle
// snapshots from at submit/decide/tap time.

type OfficeRepository struct {
	DB *sql.DB
}

func (r OfficeRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r OfficeRepository) GetByID(id int64) (models.Office, error) {
	var o models.Office
	err := r.db().QueryRow(`SELECT id, office_name, division FROM offices WHERE id=?`, id).
		Scan(&o.ID, &o.OfficeName, &o.Division)
	if err == sql.ErrNoRows {
		return o, domain.NotFoundError{Resource: "office"}
	}
	return o, err
}

func (r OfficeRepository) Create(o models.Office) (models.Office, error) {
	res, err := r.db().Exec(`INSERT INTO offices (office_name, division) VALUES (?,?)`, o.OfficeName, o.Division)
	if err != nil {
		return o, err
	}
	o.ID, err = res.LastInsertId()
	return o, err
}

func (r OfficeRepository) List() ([]models.Office, error) {
	rows, err := r.db().Query(`SELECT id, office_name, division FROM offices ORDER BY office_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Office{}
	for rows.Next() {
		var o models.Office
		if err := rows.Scan(&o.ID, &o.OfficeName, &o.Division); err != nil {
			return out, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r DriverRepository) GetByID(id int64) (models.Driver, error) {
	var d models.Driver
	err := r.db().QueryRow(`SELECT id, driver_name, contact_no, email FROM drivers WHERE id=?`, id).
		Scan(&d.ID, &d.DriverName, &d.ContactNo, &d.Email)
	if err == sql.ErrNoRows {
		return d, domain.NotFoundError{Resource: "driver"}
	}
	return d, err
}

func (r DriverRepository) Create(d models.Driver) (models.Driver, error) {
	res, err := r.db().Exec(`INSERT INTO drivers (driver_name, contact_no, email) VALUES (?,?,?)`,
		d.DriverName, d.ContactNo, d.Email)
	if err != nil {
		return d, err
	}
	d.ID, err = res.LastInsertId()
	return d, err
}

func (r DriverRepository) List() ([]models.Driver, error) {
	rows, err := r.db().Query(`SELECT id, driver_name, contact_no, email FROM drivers ORDER BY driver_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.DriverName, &d.ContactNo, &d.Email); err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r VehicleRepository) GetByID(id int64) (models.Vehicle, error) {
	var v models.Vehicle
	err := r.db().QueryRow(`SELECT id, vehicle_name, plate_no, rfid_tag, owner_class, assigned_driver_id FROM vehicles WHERE id=?`, id).
		Scan(&v.ID, &v.VehicleName, &v.PlateNo, &v.RFIDTag, &v.OwnerClass, &v.AssignedDriverID)
	if err == sql.ErrNoRows {
		return v, domain.NotFoundError{Resource: "vehicle"}
	}
	return v, err
}

func (r VehicleRepository) GetByTag(tag string) (models.Vehicle, error) {
	var v models.Vehicle
	err := r.db().QueryRow(`SELECT id, vehicle_name, plate_no, rfid_tag, owner_class, assigned_driver_id FROM vehicles WHERE rfid_tag=?`, tag).
		Scan(&v.ID, &v.VehicleName, &v.PlateNo, &v.RFIDTag, &v.OwnerClass, &v.AssignedDriverID)
	if err == sql.ErrNoRows {
		return v, domain.NotFoundError{Resource: "vehicle"}
	}
	return v, err
}

func (r VehicleRepository) Create(v models.Vehicle) (models.Vehicle, error) {
	res, err := r.db().Exec(`INSERT INTO vehicles (vehicle_name, plate_no, rfid_tag, owner_class, assigned_driver_id) VALUES (?,?,?,?,?)`,
		v.VehicleName, v.PlateNo, v.RFIDTag, v.OwnerClass, v.AssignedDriverID)
	if err != nil {
		return v, err
	}
	v.ID, err = res.LastInsertId()
	return v, err
}

func (r VehicleRepository) List() ([]models.Vehicle, error) {
	rows, err := r.db().Query(`SELECT id, vehicle_name, plate_no, rfid_tag, owner_class, assigned_driver_id FROM vehicles ORDER BY vehicle_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.VehicleName, &v.PlateNo, &v.RFIDTag, &v.OwnerClass, &v.AssignedDriverID); err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
