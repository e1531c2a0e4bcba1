package ledger

import (
	"fmt"
	"strings"

	"metrobus/internal/domain"
	"metrobus/internal/domain/models"
)

// Fleet is the ordered set of buses on the schedule board.
type Fleet struct {
	buses []*Bus
	byID  map[string]*Bus
}

func NewFleet(buses ...*Bus) (*Fleet, error) {
	f := &Fleet{byID: make(map[string]*Bus, len(buses))}
	for _, b := range buses {
		if _, dup := f.byID[b.ID]; dup {
			return nil, domain.ValidationError{Field: "buses", Msg: fmt.Sprintf("duplicate bus id %q", b.ID)}
		}
		f.byID[b.ID] = b
		f.buses = append(f.buses, b)
	}
	return f, nil
}

// Buses returns the buses in schedule order.
func (f *Fleet) Buses() []*Bus {
	return append([]*Bus(nil), f.buses...)
}

func (f *Fleet) Len() int { return len(f.buses) }

func (f *Fleet) Get(id string) (*Bus, error) {
	b, ok := f.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, domain.NotFoundError{Resource: fmt.Sprintf("bus %s", id), Err: domain.ErrBusNotFound}
	}
	return b, nil
}

// FindTicket searches every bus for ticketID.
func (f *Fleet) FindTicket(ticketID string) (models.Ticket, error) {
	for _, b := range f.buses {
		if bk, _, ok := b.FindTicket(ticketID); ok {
			return models.Ticket{Booking: bk, BusID: b.ID}, nil
		}
	}
	return models.Ticket{}, domain.NotFoundError{Resource: fmt.Sprintf("ticket %s", ticketID), Err: domain.ErrTicketNotFound}
}
