package services

import (
	"bytes"
	"testing"
	"time"

	"tripticket/internal/domain/models"
)

func TestRenderTicketProducesPDF(t *testing.T) {
	dep := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	req := models.TripRequest{
		ID:              42,
		RequestedBy:     "Juan Dela Cruz",
		RequestorOffice: "Schools Division Office",
		Designation:     "Teacher II",
		Destination:     "Division Office",
		Purpose:         "Submit accomplishment reports",
		DepartureDate:   &dep,
		DriverName:      "Pedro Santos",
		VehicleName:     "Service Van",
		VehiclePlate:    "ABC-123",
	}

	data, filename, err := DocsService{}.RenderTicket(req, "TT-20250602-1A2B3C")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF (%d bytes)", len(data))
	}
	if filename != "TripTicket_Juan_Dela_Cruz.pdf" {
		t.Fatalf("filename = %q", filename)
	}
}

func TestRenderTicketWithoutTicketNo(t *testing.T) {
	// re-render before issuance succeeded: still a valid document
	data, _, err := DocsService{}.RenderTicket(models.TripRequest{RequestedBy: "Juan Dela Cruz"}, "")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}
