// Package ledger keeps the per-bus seat arrays and the bookings they hold.
// A seat may carry several bookings as long as their station segments do
// not overlap.
package ledger

import (
	"fmt"

	"metrobus/internal/domain"
	"metrobus/internal/domain/models"
	"metrobus/internal/topology"
)

// SeatsPerRow is the bus layout width; the outer columns are windows.
const SeatsPerRow = 4

type Seat struct {
	IsWindow bool
	bookings []booked
}

type booked struct {
	models.Booking
	segment topology.Segment
}

// Bookings returns a copy of the seat's bookings in issue order.
func (s *Seat) Bookings() []models.Booking {
	out := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b.Booking)
	}
	return out
}

// Conflict returns the first booking overlapping seg.
func (s *Seat) Conflict(seg topology.Segment) (models.Booking, bool) {
	for _, b := range s.bookings {
		if b.segment.Overlaps(seg) {
			return b.Booking, true
		}
	}
	return models.Booking{}, false
}

type Bus struct {
	ID            string
	Route         string
	DepartureTime string
	Status        models.BusStatus
	seats         []Seat
}

// NewBus lays out capacity seats; seat i is a window seat when it sits in
// the first or last column of its row.
func NewBus(id, route, departure string, capacity int) (*Bus, error) {
	if capacity <= 0 {
		return nil, domain.ValidationError{Field: "capacity", Msg: fmt.Sprintf("bus %s needs a positive capacity", id)}
	}
	b := &Bus{
		ID:            id,
		Route:         route,
		DepartureTime: departure,
		Status:        models.BusScheduled,
		seats:         make([]Seat, capacity),
	}
	for i := range b.seats {
		col := i % SeatsPerRow
		b.seats[i].IsWindow = col == 0 || col == SeatsPerRow-1
	}
	return b, nil
}

func (b *Bus) Capacity() int { return len(b.seats) }

// Seat returns the seat at the 0-based index.
func (b *Bus) Seat(idx int) (*Seat, error) {
	if idx < 0 || idx >= len(b.seats) {
		return nil, domain.ValidationError{
			Field: "seat_index",
			Msg:   fmt.Sprintf("seat %d is outside bus %s (capacity %d)", idx, b.ID, len(b.seats)),
			Err:   domain.ErrInvalidSeat,
		}
	}
	return &b.seats[idx], nil
}

// Available reports whether seat idx has no booking overlapping seg.
func (b *Bus) Available(idx int, seg topology.Segment) (bool, error) {
	s, err := b.Seat(idx)
	if err != nil {
		return false, err
	}
	_, taken := s.Conflict(seg)
	return !taken, nil
}

// Book appends bk to seat idx. The caller supplies the validated segment of
// the booking; an overlap with an existing booking is rejected.
func (b *Bus) Book(idx int, seg topology.Segment, bk models.Booking) error {
	s, err := b.Seat(idx)
	if err != nil {
		return err
	}
	return b.insert(s, idx, len(s.bookings), seg, bk)
}

// InsertBooking restores bk at position pos of seat idx's booking list.
func (b *Bus) InsertBooking(idx, pos int, seg topology.Segment, bk models.Booking) error {
	s, err := b.Seat(idx)
	if err != nil {
		return err
	}
	if pos < 0 || pos > len(s.bookings) {
		pos = len(s.bookings)
	}
	return b.insert(s, idx, pos, seg, bk)
}

func (b *Bus) insert(s *Seat, idx, pos int, seg topology.Segment, bk models.Booking) error {
	if other, taken := s.Conflict(seg); taken {
		return domain.ConflictError{
			Resource: "seat",
			Msg:      fmt.Sprintf("seat %d on %s is held by ticket %s for an overlapping segment", idx+1, b.ID, other.TicketID),
			Err:      domain.ErrSeatUnavailable,
		}
	}
	s.bookings = append(s.bookings, booked{})
	copy(s.bookings[pos+1:], s.bookings[pos:])
	s.bookings[pos] = booked{Booking: bk, segment: seg}
	return nil
}

// RemoveBooking deletes the booking with ticketID from seat idx and returns
// it with the list position it occupied.
func (b *Bus) RemoveBooking(idx int, ticketID string) (models.Booking, int, error) {
	s, err := b.Seat(idx)
	if err != nil {
		return models.Booking{}, -1, err
	}
	for i, bk := range s.bookings {
		if bk.TicketID == ticketID {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return bk.Booking, i, nil
		}
	}
	return models.Booking{}, -1, domain.NotFoundError{Resource: fmt.Sprintf("ticket %s on %s seat %d", ticketID, b.ID, idx+1), Err: domain.ErrTicketNotFound}
}

// FindTicket locates ticketID on this bus and returns its 0-based seat index.
func (b *Bus) FindTicket(ticketID string) (models.Booking, int, bool) {
	for i := range b.seats {
		for _, bk := range b.seats[i].bookings {
			if bk.TicketID == ticketID {
				return bk.Booking, i, true
			}
		}
	}
	return models.Booking{}, -1, false
}

// Occupancy counts seats holding at least one booking that overlaps seg.
// It is scoped to the segment, not an absolute headcount.
func (b *Bus) Occupancy(seg topology.Segment) int {
	n := 0
	for i := range b.seats {
		if _, taken := b.seats[i].Conflict(seg); taken {
			n++
		}
	}
	return n
}
