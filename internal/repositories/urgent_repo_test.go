package repositories

import (
	"testing"
	"time"

	"tripticket/internal/domain"
	"tripticket/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestOpenTripGuardsAgainstOpenTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	trip := models.UrgentTrip{
		Tag:          "T1",
		VehicleName:  "Service Van",
		VehiclePlate: "ABC-123",
		Departure:    time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local),
	}

	mock.ExpectExec(`INSERT INTO urgent_trips(?s).+WHERE NOT EXISTS(?s).+arrival IS NULL`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	opened, err := UrgentTripRepository{DB: db}.OpenTrip(trip)
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	if !opened {
		t.Fatalf("expected the trip to open")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCloseTripTargetsNewestOpenTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	at := time.Date(2025, 6, 2, 16, 0, 0, 0, time.Local)

	mock.ExpectExec(`UPDATE urgent_trips SET arrival=(?s).+arrival IS NULL(?s).+ORDER BY departure DESC LIMIT 1`).
		WithArgs(at, "T1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	closed, err := UrgentTripRepository{DB: db}.CloseTrip("T1", at)
	if err != nil {
		t.Fatalf("close error: %v", err)
	}
	if !closed {
		t.Fatalf("expected the trip to close")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLatestByTagNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM urgent_trips").WithArgs("T1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tag", "vehicle_name", "vehicle_plate", "driver_name", "departure", "arrival"}))

	_, err = UrgentTripRepository{DB: db}.LatestByTag("T1")
	if !domain.IsNotFound(err) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}
