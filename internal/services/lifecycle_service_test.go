package services

import (
	"errors"
	"testing"
	"time"

	"tripticket/internal/domain"
	"tripticket/internal/domain/models"
	"tripticket/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var requestCols = []string{
	"id", "status", "requested_by", "email", "designation", "office_id", "requestor_office",
	"destination", "purpose", "departure_date", "arrival_date", "authorized_passengers", "remarks",
	"driver_id", "driver_name", "driver_contact_no", "driver_email",
	"vehicle_id", "vehicle_name", "vehicle_plate", "rfid_tag",
	"travel_out", "travel_in", "travel_status", "ticket_no", "created_at",
}

func requestRow(status domain.Status, travelStatus domain.TravelStatus, departure time.Time, travelOut, travelIn, ticketNo any) *sqlmock.Rows {
	return sqlmock.NewRows(requestCols).AddRow(
		42, string(status), "Juan Dela Cruz", "juan@example.com", "Teacher II", 0, "",
		"Division Office", "Submit accomplishment reports", departure, nil, "", "",
		0, "", "", "",
		0, "", "", "T1",
		travelOut, travelIn, string(travelStatus), ticketNo, departure.Add(-48*time.Hour),
	)
}

type fakeIssuer struct {
	ticketNo string
	err      error
	calls    int
}

func (f *fakeIssuer) Issue(requestID int64) (string, error) {
	f.calls++
	return f.ticketNo, f.err
}

type recordingArtifacts struct {
	approved []string
	rejected int
}

func (r *recordingArtifacts) OnApproved(req models.TripRequest, ticketNo string) {
	r.approved = append(r.approved, ticketNo)
}

func (r *recordingArtifacts) OnRejected(req models.TripRequest) {
	r.rejected++
}

func TestSubmitRequiresDestination(t *testing.T) {
	svc := LifecycleService{}
	dep := time.Now().Add(24 * time.Hour)
	_, err := svc.Submit(SubmitInput{
		RequestedBy:   "Juan Dela Cruz",
		Purpose:       "Submit accomplishment reports",
		DepartureDate: &dep,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestDecideApprovesAndIssuesTicket(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	departure := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	issuer := &fakeIssuer{ticketNo: "TT-20250602-1A2B3C"}
	artifacts := &recordingArtifacts{}

	svc := LifecycleService{
		Requests:  repositories.RequestRepository{DB: db},
		Drivers:   repositories.DriverRepository{DB: db},
		Offices:   repositories.OfficeRepository{DB: db},
		Vehicles:  repositories.VehicleRepository{DB: db},
		Issuer:    issuer,
		Artifacts: artifacts,
		Dispatch:  func(fn func()) { fn() },
	}

	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusPending, domain.TravelNotStarted, departure, nil, nil, nil))
	mock.ExpectExec("UPDATE request_forms SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("ticket_no=").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusApproved, domain.TravelNotStarted, departure, nil, nil, "TT-20250602-1A2B3C"))

	decided, err := svc.Decide(42, DecideInput{Decision: domain.DecisionApproved})
	if err != nil {
		t.Fatalf("decide error: %v", err)
	}
	if decided.Status != domain.StatusApproved {
		t.Fatalf("status = %s, want Approved", decided.Status)
	}
	if decided.TicketNo != "TT-20250602-1A2B3C" {
		t.Fatalf("ticket no = %q", decided.TicketNo)
	}
	if issuer.calls != 1 {
		t.Fatalf("issuer calls = %d, want 1", issuer.calls)
	}
	if len(artifacts.approved) != 1 || artifacts.approved[0] != "TT-20250602-1A2B3C" {
		t.Fatalf("artifact calls = %v", artifacts.approved)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecideTwiceIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	departure := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	issuer := &fakeIssuer{ticketNo: "TT-20250602-9Z9Z9Z"}

	svc := LifecycleService{
		Requests: repositories.RequestRepository{DB: db},
		Drivers:  repositories.DriverRepository{DB: db},
		Offices:  repositories.OfficeRepository{DB: db},
		Vehicles: repositories.VehicleRepository{DB: db},
		Issuer:   issuer,
		Dispatch: func(fn func()) { fn() },
	}

	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusApproved, domain.TravelNotStarted, departure, nil, nil, "TT-20250602-1A2B3C"))
	mock.ExpectExec("UPDATE request_forms SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusApproved, domain.TravelNotStarted, departure, nil, nil, "TT-20250602-1A2B3C"))

	_, err = svc.Decide(42, DecideInput{Decision: domain.DecisionApproved})
	if !domain.IsConflict(err) {
		t.Fatalf("error = %v, want ConflictError", err)
	}
	if issuer.calls != 0 {
		t.Fatalf("a conflicting decide must never mint a ticket, got %d issue calls", issuer.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecideSurvivesIssuanceFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	departure := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	issuer := &fakeIssuer{err: errors.New("ticket store down")}
	artifacts := &recordingArtifacts{}

	svc := LifecycleService{
		Requests:  repositories.RequestRepository{DB: db},
		Drivers:   repositories.DriverRepository{DB: db},
		Offices:   repositories.OfficeRepository{DB: db},
		Vehicles:  repositories.VehicleRepository{DB: db},
		Issuer:    issuer,
		Artifacts: artifacts,
		Dispatch:  func(fn func()) { fn() },
	}

	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusPending, domain.TravelNotStarted, departure, nil, nil, nil))
	mock.ExpectExec("UPDATE request_forms SET").WillReturnResult(sqlmock.NewResult(0, 1))
	// no ticket_no write when issuance fails
	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusApproved, domain.TravelNotStarted, departure, nil, nil, nil))

	decided, err := svc.Decide(42, DecideInput{Decision: domain.DecisionApproved})
	if err != nil {
		t.Fatalf("decide error: %v", err)
	}
	if decided.Status != domain.StatusApproved {
		t.Fatalf("approval must stand when issuance fails, got status %s", decided.Status)
	}
	if len(artifacts.approved) != 1 || artifacts.approved[0] != "" {
		t.Fatalf("artifact calls = %v", artifacts.approved)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecideRejectedRunsRejectionArtifacts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	departure := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	issuer := &fakeIssuer{ticketNo: "TT-20250602-1A2B3C"}
	artifacts := &recordingArtifacts{}

	svc := LifecycleService{
		Requests:  repositories.RequestRepository{DB: db},
		Drivers:   repositories.DriverRepository{DB: db},
		Offices:   repositories.OfficeRepository{DB: db},
		Vehicles:  repositories.VehicleRepository{DB: db},
		Issuer:    issuer,
		Artifacts: artifacts,
		Dispatch:  func(fn func()) { fn() },
	}

	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusPending, domain.TravelNotStarted, departure, nil, nil, nil))
	mock.ExpectExec("UPDATE request_forms SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusRejected, domain.TravelNotStarted, departure, nil, nil, nil))

	decided, err := svc.Decide(42, DecideInput{Decision: domain.DecisionRejected, Remarks: "No driver available"})
	if err != nil {
		t.Fatalf("decide error: %v", err)
	}
	if decided.Status != domain.StatusRejected {
		t.Fatalf("status = %s, want Rejected", decided.Status)
	}
	if issuer.calls != 0 {
		t.Fatalf("rejection must not mint a ticket")
	}
	if artifacts.rejected != 1 {
		t.Fatalf("rejection artifacts = %d, want 1", artifacts.rejected)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordDepartureOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	departure := time.Date(2025, 6, 2, 8, 0, 0, 0, time.Local)
	now := time.Date(2025, 6, 2, 8, 5, 0, 0, time.Local)

	svc := LifecycleService{
		Requests: repositories.RequestRepository{DB: db},
		Now:      func() time.Time { return now },
	}

	mock.ExpectExec("SET travel_out=").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusApproved, domain.TravelOnGoing, departure, now, nil, "TT-20250602-1A2B3C"))

	req, err := svc.RecordDeparture("T1", 42)
	if err != nil {
		t.Fatalf("departure error: %v", err)
	}
	if req.TravelStatus != domain.TravelOnGoing {
		t.Fatalf("travel status = %s, want OnGoing", req.TravelStatus)
	}

	// second scan for the same request
	mock.ExpectExec("SET travel_out=").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusApproved, domain.TravelOnGoing, departure, now, nil, "TT-20250602-1A2B3C"))

	_, err = svc.RecordDeparture("T1", 42)
	if !domain.IsAlreadyStarted(err) {
		t.Fatalf("error = %v, want AlreadyStartedError", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordDepartureOutsideScheduleIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// scheduled tomorrow, scanned today
	departure := time.Date(2025, 6, 3, 8, 0, 0, 0, time.Local)
	now := time.Date(2025, 6, 2, 8, 5, 0, 0, time.Local)

	svc := LifecycleService{
		Requests: repositories.RequestRepository{DB: db},
		Now:      func() time.Time { return now },
	}

	mock.ExpectExec("SET travel_out=").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusApproved, domain.TravelNotStarted, departure, nil, nil, "TT-20250603-1A2B3C"))

	_, err = svc.RecordDeparture("T1", 42)
	if !domain.IsNotFound(err) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordArrivalRequiresDeparture(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	departure := time.Date(2025, 6, 2, 8, 0, 0, 0, time.Local)
	now := time.Date(2025, 6, 2, 8, 5, 0, 0, time.Local)

	svc := LifecycleService{
		Requests: repositories.RequestRepository{DB: db},
		Now:      func() time.Time { return now },
	}

	mock.ExpectExec("SET travel_in=").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusApproved, domain.TravelNotStarted, departure, nil, nil, "TT-20250602-1A2B3C"))

	_, err = svc.RecordArrival("T1", 42)
	if !domain.IsNotStarted(err) {
		t.Fatalf("error = %v, want NotStartedError", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordArrivalTwiceIsAlreadyCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	departure := time.Date(2025, 6, 2, 8, 0, 0, 0, time.Local)
	out := time.Date(2025, 6, 2, 8, 5, 0, 0, time.Local)
	in := time.Date(2025, 6, 2, 16, 0, 0, 0, time.Local)

	svc := LifecycleService{
		Requests: repositories.RequestRepository{DB: db},
		Now:      func() time.Time { return in.Add(time.Minute) },
	}

	mock.ExpectExec("SET travel_in=").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM request_forms WHERE id=").
		WillReturnRows(requestRow(domain.StatusApproved, domain.TravelCompleted, departure, out, in, "TT-20250602-1A2B3C"))

	_, err = svc.RecordArrival("T1", 42)
	if !domain.IsAlreadyCompleted(err) {
		t.Fatalf("error = %v, want AlreadyCompletedError", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
