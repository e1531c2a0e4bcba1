package services

import (
	"fmt"
	"slices"

	"metrobus/internal/actionlog"
	"metrobus/internal/domain"
	"metrobus/internal/domain/models"
	"metrobus/internal/queue"
	"metrobus/internal/topology"
	"metrobus/internal/utils"
)

// SetFilter changes the active pickup/drop-off range used for seat
// availability and occupancy.
func (c *Controller) SetFilter(pickup, dropOff string) (Filter, error) {
	c.lock()
	defer c.unlock()

	seg, err := c.topo.Segment(pickup, dropOff)
	if err != nil {
		return Filter{}, err
	}
	c.segment = seg
	c.filter = Filter{Pickup: c.topo.Name(seg.Start), DropOff: c.topo.Name(seg.End)}
	c.emit("filter", nil)
	return c.filter, nil
}

func (c *Controller) CurrentFilter() Filter {
	c.lock()
	defer c.unlock()
	return c.filter
}

// SelectSeat toggles seat idx of busID in the selection. Selecting on a
// different bus starts a new selection holding only idx. Seats already
// booked for a segment overlapping the filter cannot be selected, but a
// selected seat can always be deselected.
func (c *Controller) SelectSeat(busID string, idx int) (Selection, error) {
	c.lock()
	defer c.unlock()

	bus, err := c.fleet.Get(busID)
	if err != nil {
		return Selection{}, err
	}
	if c.selection.BusID == bus.ID && slices.Contains(c.selection.Seats, idx) {
		c.selection.Seats = slices.DeleteFunc(c.selection.Seats, func(i int) bool { return i == idx })
		c.drafts = nil
		return c.currentSelection(), nil
	}
	ok, err := bus.Available(idx, c.segment)
	if err != nil {
		return Selection{}, err
	}
	if !ok {
		return Selection{}, domain.ConflictError{
			Resource: "seat",
			Msg:      fmt.Sprintf("seat %d on %s is booked between %s and %s", idx+1, bus.ID, c.filter.Pickup, c.filter.DropOff),
			Err:      domain.ErrSeatUnavailable,
		}
	}

	if c.selection.BusID != bus.ID {
		c.selection = Selection{BusID: bus.ID, Seats: []int{idx}}
	} else {
		c.selection.Seats = append(c.selection.Seats, idx)
	}
	c.drafts = nil
	return c.currentSelection(), nil
}

func (c *Controller) ClearSelection() {
	c.lock()
	defer c.unlock()
	c.resetWorkflow()
}

func (c *Controller) CurrentSelection() Selection {
	c.lock()
	defer c.unlock()
	return c.currentSelection()
}

func (c *Controller) currentSelection() Selection {
	return Selection{BusID: c.selection.BusID, Seats: append([]int{}, c.selection.Seats...)}
}

// StartBooking moves the selection into the detailing step. Each selected
// seat gets a draft pre-filled with the active filter; the first seat also
// takes the in-flight intake passenger.
func (c *Controller) StartBooking() ([]models.SeatDraft, error) {
	c.lock()
	defer c.unlock()

	if len(c.selection.Seats) == 0 {
		return nil, domain.ValidationError{Field: "seats", Msg: "select at least one seat", Err: domain.ErrNoSelection}
	}
	drafts := make([]models.SeatDraft, 0, len(c.selection.Seats))
	for i, idx := range c.selection.Seats {
		d := models.SeatDraft{SeatIndex: idx, Pickup: c.filter.Pickup, DropOff: c.filter.DropOff}
		if i == 0 && c.intake != nil {
			d.Name = c.intake.Name
			d.PassengerID = c.intake.PassengerID
		}
		drafts = append(drafts, d)
	}
	c.drafts = drafts
	return c.currentDrafts(), nil
}

// DraftUpdate carries edits to one seat draft. Empty fields keep the
// current value; ClearName blanks the name (and its passenger id) instead.
type DraftUpdate struct {
	Name        string
	PassengerID string
	Pickup      string
	DropOff     string
	ClearName   bool
}

func (c *Controller) UpdateDraft(seatIndex int, u DraftUpdate) (models.SeatDraft, error) {
	c.lock()
	defer c.unlock()

	i := slices.IndexFunc(c.drafts, func(d models.SeatDraft) bool { return d.SeatIndex == seatIndex })
	if i < 0 {
		return models.SeatDraft{}, domain.ValidationError{
			Field: "seat_index",
			Msg:   fmt.Sprintf("seat %d is not part of the booking in progress", seatIndex),
			Err:   domain.ErrNoSelection,
		}
	}
	d := c.drafts[i]
	if u.ClearName {
		d.Name, d.PassengerID = "", ""
	}
	if name := utils.NormalizeSpace(u.Name); name != "" {
		d.Name = name
	}
	if u.PassengerID != "" {
		d.PassengerID = u.PassengerID
	}
	if u.Pickup != "" {
		d.Pickup = u.Pickup
	}
	if u.DropOff != "" {
		d.DropOff = u.DropOff
	}
	if _, err := c.topo.Segment(d.Pickup, d.DropOff); err != nil {
		return models.SeatDraft{}, err
	}
	c.drafts[i] = d
	return d, nil
}

func (c *Controller) Drafts() []models.SeatDraft {
	c.lock()
	defer c.unlock()
	return c.currentDrafts()
}

func (c *Controller) currentDrafts() []models.SeatDraft {
	return append([]models.SeatDraft{}, c.drafts...)
}

// FinalizeBooking issues one ticket per drafted seat. Every draft is checked
// before anything is written, so either all tickets are issued or none.
// Matched passengers leave the intake queue and the workflow state is
// cleared.
func (c *Controller) FinalizeBooking() ([]models.Ticket, error) {
	c.lock()
	defer c.unlock()

	if len(c.drafts) == 0 {
		return nil, domain.ValidationError{Field: "seats", Msg: "no booking in progress", Err: domain.ErrNoSelection}
	}
	bus, err := c.fleet.Get(c.selection.BusID)
	if err != nil {
		return nil, err
	}

	segs := make([]topology.Segment, len(c.drafts))
	for i, d := range c.drafts {
		seg, err := c.topo.Segment(d.Pickup, d.DropOff)
		if err != nil {
			return nil, err
		}
		ok, err := bus.Available(d.SeatIndex, seg)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ConflictError{
				Resource: "seat",
				Msg:      fmt.Sprintf("seat %d on %s is booked between %s and %s", d.SeatIndex+1, bus.ID, d.Pickup, d.DropOff),
				Err:      domain.ErrSeatUnavailable,
			}
		}
		segs[i] = seg
	}

	tickets := make([]models.Ticket, 0, len(c.drafts))
	var ids, names []string
	for i, d := range c.drafts {
		seat, _ := bus.Seat(d.SeatIndex)
		name := d.Name
		if name == "" {
			name = models.UnknownPassenger
		}
		bk := models.Booking{
			PassengerName: name,
			PassengerID:   d.PassengerID,
			Pickup:        d.Pickup,
			DropOff:       d.DropOff,
			TicketID:      c.tickets.Next(),
			SeatNumber:    d.SeatIndex + 1,
			IsWindow:      seat.IsWindow,
		}
		if err := bus.Book(d.SeatIndex, segs[i], bk); err != nil {
			return tickets, domain.InternalError{Msg: "seat ledger rejected a validated booking", Err: err}
		}
		c.record(actionlog.BookTicket{BusID: bus.ID, SeatIndex: d.SeatIndex, Booking: bk})
		tickets = append(tickets, models.Ticket{Booking: bk, BusID: bus.ID})
		ids = append(ids, d.PassengerID)
		names = append(names, d.Name)
	}

	var removed []queue.Removed
	if c.opts.MatchQueueByName {
		removed = c.queue.RemoveByNames(names)
	} else {
		removed = c.queue.RemoveByIDs(ids)
	}
	for _, r := range removed {
		c.record(actionlog.DequeuePassenger{Passenger: r.Passenger, Position: r.Position})
	}

	c.resetWorkflow()
	c.intake = nil
	return tickets, nil
}

// CancelTicket removes an issued booking from its seat.
func (c *Controller) CancelTicket(busID, ticketID string) (models.Ticket, error) {
	c.lock()
	defer c.unlock()

	bus, err := c.fleet.Get(busID)
	if err != nil {
		return models.Ticket{}, err
	}
	_, idx, ok := bus.FindTicket(ticketID)
	if !ok {
		return models.Ticket{}, domain.NotFoundError{Resource: fmt.Sprintf("ticket %s on %s", ticketID, bus.ID), Err: domain.ErrTicketNotFound}
	}
	bk, pos, err := bus.RemoveBooking(idx, ticketID)
	if err != nil {
		return models.Ticket{}, err
	}
	c.record(actionlog.CancelTicket{BusID: bus.ID, SeatIndex: idx, Position: pos, Booking: bk})
	return models.Ticket{Booking: bk, BusID: bus.ID}, nil
}

// Ticket looks up an issued ticket anywhere in the fleet.
func (c *Controller) Ticket(ticketID string) (models.Ticket, error) {
	c.lock()
	defer c.unlock()
	return c.fleet.FindTicket(ticketID)
}

// Occupancy counts seats of busID booked on a segment overlapping the
// active filter.
func (c *Controller) Occupancy(busID string) (int, error) {
	c.lock()
	defer c.unlock()

	bus, err := c.fleet.Get(busID)
	if err != nil {
		return 0, err
	}
	return bus.Occupancy(c.segment), nil
}
