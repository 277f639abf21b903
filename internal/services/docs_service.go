package services

import (
	"bytes"
	"fmt"
	"strings"

	"tripticket/internal/domain/models"
	"tripticket/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the printable trip ticket for an approved request.
type DocsService struct {
	RequestID string
}

// RenderTicket builds the trip ticket PDF: the approval number with a scan
// strip encoding it, plus the full request snapshot for the signatories.
func (s DocsService) RenderTicket(req models.TripRequest, ticketNo string) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "docs", "render_ticket", fmt.Sprintf("request_id=%d ticket_no=%s", req.ID, ticketNo))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Vehicle Trip Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "VEHICLE TRIP TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Ticket No: "+safe(ticketNo, "-"))
	pdf.Ln(9)

	if ticketNo != "" {
		drawScanStrip(pdf, ticketNo, pdf.GetX()+1, pdf.GetY())
		pdf.Ln(16)
	}

	departure := "-"
	if req.DepartureDate != nil {
		departure = utils.FormatDateTime(*req.DepartureDate)
	}
	arrival := "-"
	if req.ArrivalDate != nil {
		arrival = utils.FormatDateTime(*req.ArrivalDate)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Requestor      : %s", safe(req.RequestedBy, "-")),
		fmt.Sprintf("Office         : %s", safe(req.RequestorOffice, "-")),
		fmt.Sprintf("Designation    : %s", safe(req.Designation, "-")),
		fmt.Sprintf("Destination    : %s", safe(req.Destination, "-")),
		fmt.Sprintf("Departure      : %s", departure),
		fmt.Sprintf("Arrival        : %s", arrival),
		fmt.Sprintf("Driver         : %s", safe(req.DriverName, "-")),
		fmt.Sprintf("Vehicle        : %s (%s)", safe(req.VehicleName, "-"), safe(req.VehiclePlate, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Purpose:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, safe(req.Purpose, "-"), "", "", false)

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Authorized Passengers:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, safe(req.AuthorizedPassengers, "-"), "", "", false)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this hardcopy to the authorities for signatures before departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TripTicket_%s.pdf", safeFilenamePart(req.RequestedBy))
	return buf.Bytes(), filename, nil
}

// drawScanStrip draws a bar pattern derived from the code's bytes (one bar
// per bit, wide when set) so gate scanners can correlate the printed ticket
// to the request. The number itself is printed above in clear text.
func drawScanStrip(pdf *gofpdf.Fpdf, code string, x, y float64) {
	const (
		height = 12.0
		narrow = 0.45
		wide   = 1.1
		gap    = 0.35
	)

	pdf.SetFillColor(0, 0, 0)
	cx := x
	for _, b := range []byte(code) {
		for bit := 7; bit >= 0; bit-- {
			w := narrow
			if b&(1<<uint(bit)) != 0 {
				w = wide
			}
			pdf.Rect(cx, y, w, height, "F")
			cx += w + gap
		}
	}
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
