package db

import "database/sql"

// EnsureSchema creates the tables this service owns when they are absent.
// Column types mirror what the repositories read and write; all guarded
// columns (travel_out, travel_in, arrival, ticket_no) are nullable so the
// conditional updates can key on IS NULL.
func EnsureSchema(dbc *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS request_forms (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			status VARCHAR(16) NOT NULL DEFAULT 'Pending',
			requested_by VARCHAR(191) NOT NULL,
			email VARCHAR(191) NOT NULL DEFAULT '',
			designation VARCHAR(191) NOT NULL DEFAULT '',
			office_id BIGINT NOT NULL DEFAULT 0,
			requestor_office VARCHAR(191) NOT NULL DEFAULT '',
			destination VARCHAR(191) NOT NULL DEFAULT '',
			purpose TEXT,
			departure_date DATETIME NULL,
			arrival_date DATETIME NULL,
			authorized_passengers TEXT,
			remarks TEXT,
			driver_id BIGINT NOT NULL DEFAULT 0,
			driver_name VARCHAR(191) NOT NULL DEFAULT '',
			driver_contact_no VARCHAR(64) NOT NULL DEFAULT '',
			driver_email VARCHAR(191) NOT NULL DEFAULT '',
			vehicle_id BIGINT NOT NULL DEFAULT 0,
			vehicle_name VARCHAR(191) NOT NULL DEFAULT '',
			vehicle_plate VARCHAR(32) NOT NULL DEFAULT '',
			rfid_tag VARCHAR(64) NOT NULL DEFAULT '',
			travel_out DATETIME NULL,
			travel_in DATETIME NULL,
			travel_status VARCHAR(16) NOT NULL DEFAULT 'NotStarted',
			ticket_no VARCHAR(32) NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_request_forms_tag (rfid_tag, travel_out)
		)`,
		`CREATE TABLE IF NOT EXISTS urgent_trips (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			tag VARCHAR(64) NOT NULL,
			vehicle_name VARCHAR(191) NOT NULL DEFAULT '',
			vehicle_plate VARCHAR(32) NOT NULL DEFAULT '',
			driver_name VARCHAR(191) NOT NULL DEFAULT '',
			departure DATETIME NOT NULL,
			arrival DATETIME NULL,
			KEY idx_urgent_trips_tag (tag, departure)
		)`,
		`CREATE TABLE IF NOT EXISTS ticket_numbers (
			request_id BIGINT PRIMARY KEY,
			ticket_no VARCHAR(32) NOT NULL,
			issued_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS offices (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			office_name VARCHAR(191) NOT NULL,
			division VARCHAR(191) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS drivers (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			driver_name VARCHAR(191) NOT NULL,
			contact_no VARCHAR(64) NOT NULL DEFAULT '',
			email VARCHAR(191) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS vehicles (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			vehicle_name VARCHAR(191) NOT NULL,
			plate_no VARCHAR(32) NOT NULL DEFAULT '',
			rfid_tag VARCHAR(64) NOT NULL DEFAULT '',
			owner_class VARCHAR(16) NOT NULL DEFAULT 'government',
			assigned_driver_id BIGINT NOT NULL DEFAULT 0,
			UNIQUE KEY uniq_vehicles_tag (rfid_tag)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(191) NOT NULL,
			username VARCHAR(191) NOT NULL,
			email VARCHAR(191) NOT NULL,
			password_hash VARCHAR(191) NOT NULL,
			role VARCHAR(32) NOT NULL DEFAULT 'Requester',
			UNIQUE KEY uniq_users_email (email),
			UNIQUE KEY uniq_users_username (username)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := dbc.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
