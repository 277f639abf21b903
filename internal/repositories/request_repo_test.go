package repositories

import (
	"testing"
	"time"

	"tripticket/internal/domain"
	"tripticket/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var requestCols = []string{
	"id", "status", "requested_by", "email", "designation", "office_id", "requestor_office",
	"destination", "purpose", "departure_date", "arrival_date", "authorized_passengers", "remarks",
	"driver_id", "driver_name", "driver_contact_no", "driver_email",
	"vehicle_id", "vehicle_name", "vehicle_plate", "rfid_tag",
	"travel_out", "travel_in", "travel_status", "ticket_no", "created_at",
}

func TestGetByIDScansNullableFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM request_forms WHERE id=").WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(requestCols).AddRow(
			42, "Pending", "Juan Dela Cruz", "juan@example.com", "Teacher II", 3, "SDO Imus",
			"Division Office", "Submit reports", nil, nil, "", "",
			0, "", "", "",
			7, "Service Van", "ABC-123", "T1",
			nil, nil, "NotStarted", nil, created,
		))

	repo := RequestRepository{DB: db}
	req, err := repo.GetByID(42)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if req.Status != domain.StatusPending {
		t.Fatalf("status = %s", req.Status)
	}
	if req.DepartureDate != nil || req.TravelOut != nil || req.TravelIn != nil {
		t.Fatalf("null timestamps must scan to nil pointers")
	}
	if req.TicketNo != "" {
		t.Fatalf("ticket no = %q, want empty", req.TicketNo)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM request_forms WHERE id=").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(requestCols))

	_, err = RequestRepository{DB: db}.GetByID(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestApplyDecisionGuardsOnPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE request_forms SET(?s).+WHERE id=\? AND status=\?`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	applied, err := RequestRepository{DB: db}.ApplyDecision(42, domain.StatusApproved, models.TripRequest{})
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if !applied {
		t.Fatalf("expected the decision to apply")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkDepartureIsConditional(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	at := time.Date(2025, 6, 2, 8, 5, 0, 0, time.Local)
	dayStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)
	dayEnd := dayStart.Add(24 * time.Hour)

	mock.ExpectExec(`SET travel_out=(?s).+travel_out IS NULL(?s).+departure_date>=\? AND departure_date<\?`).
		WithArgs(at, "OnGoing", int64(42), "T1", dayStart, dayEnd).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := RequestRepository{DB: db}.MarkDeparture(42, "T1", at, dayStart, dayEnd)
	if err != nil {
		t.Fatalf("mark error: %v", err)
	}
	if ok {
		t.Fatalf("zero affected rows must report false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkArrivalRequiresOpenTravel(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	at := time.Date(2025, 6, 2, 16, 0, 0, 0, time.Local)

	mock.ExpectExec(`SET travel_in=(?s).+travel_out IS NOT NULL AND travel_in IS NULL`).
		WithArgs(at, "Completed", int64(42), "T1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := RequestRepository{DB: db}.MarkArrival(42, "T1", at)
	if err != nil {
		t.Fatalf("mark error: %v", err)
	}
	if !ok {
		t.Fatalf("expected the arrival to apply")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUrgentFormGuardsAgainstOpenEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	at := time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)
	form := models.TripRequest{RequestedBy: "Pedro Santos", Destination: "Unscheduled", RFIDTag: "T1"}

	// an open urgent entry already exists: the guarded insert matches nothing
	mock.ExpectExec(`INSERT INTO request_forms(?s).+WHERE NOT EXISTS(?s).+travel_out IS NOT NULL AND travel_in IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	opened, err := RequestRepository{DB: db}.CreateUrgentForm(form, at)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if opened {
		t.Fatalf("guard must block a second open urgent entry")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetTicketNoNeverOverwrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`SET ticket_no=(?s).+ticket_no IS NULL OR ticket_no=''`).
		WithArgs("TT-20250602-1A2B3C", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (RequestRepository{DB: db}).SetTicketNo(42, "TT-20250602-1A2B3C"); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
