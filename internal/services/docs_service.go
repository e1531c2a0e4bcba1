package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"metrobus/internal/domain"
	"metrobus/internal/domain/models"
	"metrobus/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable ticket and bus manifest PDFs.
type DocsService struct {
	RequestID    string
	TicketLoader func(ticketID string) (models.Ticket, error)
	BusLoader    func(busID string) (models.BusView, error)
	Now          func() time.Time
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GenerateTicket returns the PDF and download filename of one ticket.
func (s DocsService) GenerateTicket(ticketID string) ([]byte, string, error) {
	if s.TicketLoader == nil {
		return nil, "", domain.InternalError{Msg: "ticket loader not configured"}
	}
	t, err := s.TicketLoader(ticketID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_ticket", fmt.Sprintf("ticket_id=%s bus=%s", t.TicketID, t.BusID))
	return buildTicketPDF(t, s.now())
}

// GenerateManifest returns a PDF listing every booking on a bus.
func (s DocsService) GenerateManifest(busID string) ([]byte, string, error) {
	if s.BusLoader == nil {
		return nil, "", domain.InternalError{Msg: "bus loader not configured"}
	}
	b, err := s.BusLoader(busID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_manifest", fmt.Sprintf("bus=%s seats=%d", b.ID, len(b.Seats)))
	return buildManifestPDF(b, s.now())
}

func buildTicketPDF(t models.Ticket, issued time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Metro Ticket "+t.TicketID, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "METRO BUS TICKET")
	pdf.Ln(12)

	seatKind := "AISLE SEAT"
	if t.IsWindow {
		seatKind = "WINDOW SEAT"
	}

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Passenger : %s", safe(t.PassengerName, models.UnknownPassenger)),
		fmt.Sprintf("Bus       : %s", safe(t.BusID, "-")),
		fmt.Sprintf("Seat      : #%d (%s)", t.SeatNumber, seatKind),
		fmt.Sprintf("From      : %s", safe(t.Pickup, "-")),
		fmt.Sprintf("To        : %s", safe(t.DropOff, "-")),
		fmt.Sprintf("Ticket    : %s", safe(t.TicketID, "-")),
		fmt.Sprintf("Issued    : %s", utils.FormatDateTime(issued)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Valid for one passenger on the printed segment only. Show this ticket when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render ticket", Err: err}
	}
	filename := fmt.Sprintf("TICKET_%s_%s.pdf", safeFilenamePart(t.TicketID), safeFilenamePart(t.PassengerName))
	return buf.Bytes(), filename, nil
}

func buildManifestPDF(b models.BusView, issued time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Manifest "+b.ID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "BUS MANIFEST "+b.ID)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Route: %s   Departure: %s   Status: %s", safe(b.Route, "-"), safe(b.DepartureTime, "-"), b.Status))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Printed: "+utils.FormatDateTime(issued))
	pdf.Ln(10)

	widths := []float64{16, 30, 56, 40, 40}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"Seat", "Ticket", "Passenger", "From", "To"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	rows := 0
	for _, s := range b.Seats {
		for _, bk := range s.Bookings {
			seat := fmt.Sprintf("%d", s.Number)
			if s.IsWindow {
				seat += "W"
			}
			for i, v := range []string{seat, bk.TicketID, bk.PassengerName, bk.Pickup, bk.DropOff} {
				pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
			rows++
		}
	}
	if rows == 0 {
		pdf.Cell(0, 7, "No bookings.")
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render manifest", Err: err}
	}
	return buf.Bytes(), fmt.Sprintf("MANIFEST_%s.pdf", safeFilenamePart(b.ID)), nil
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
