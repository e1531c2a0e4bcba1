package services

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"metrobus/internal/domain"
	"metrobus/internal/domain/models"
)

func TestDocsServiceGenerate(t *testing.T) {
	ticket := models.Ticket{
		Booking: models.Booking{
			PassengerName: "Tester",
			Pickup:        "Peshawar Morr",
			DropOff:       "I-9",
			TicketID:      "METRO-00001",
			SeatNumber:    1,
			IsWindow:      true,
		},
		BusID: "BUS-101",
	}
	svc := DocsService{
		TicketLoader: func(id string) (models.Ticket, error) { return ticket, nil },
		BusLoader: func(id string) (models.BusView, error) {
			return models.BusView{
				ID:    id,
				Route: "Peshawar Morr - Faizabad",
				Seats: []models.SeatView{{Index: 0, Number: 1, IsWindow: true, Bookings: []models.Booking{ticket.Booking}}},
			}, nil
		},
		Now: func() time.Time { return time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC) },
	}

	pdf, filename, err := svc.GenerateTicket("METRO-00001")
	if err != nil {
		t.Fatalf("GenerateTicket returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) || filename != "TICKET_METRO-00001_Tester.pdf" {
		t.Fatalf("GenerateTicket returned unexpected output: %q", filename)
	}

	manifest, name, err := svc.GenerateManifest("BUS-101")
	if err != nil {
		t.Fatalf("GenerateManifest returned error: %v", err)
	}
	if len(manifest) == 0 || name != "MANIFEST_BUS-101.pdf" {
		t.Fatalf("GenerateManifest returned unexpected output: %q", name)
	}
}

func TestDocsServicePropagatesLoaderError(t *testing.T) {
	svc := DocsService{TicketLoader: func(id string) (models.Ticket, error) {
		return models.Ticket{}, domain.NotFoundError{Resource: "ticket " + id, Err: domain.ErrTicketNotFound}
	}}
	if _, _, err := svc.GenerateTicket("METRO-99999"); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
	if _, _, err := (DocsService{}).GenerateManifest("BUS-101"); !domain.IsInternal(err) {
		t.Fatalf("expected internal error without loader, got %v", err)
	}
}
