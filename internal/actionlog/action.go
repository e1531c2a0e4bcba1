// Package actionlog records console mutations as a closed set of actions.
// Every action knows how to re-apply and revert itself against a Target,
// which gives the log real undo and redo.
package actionlog

import "metrobus/internal/domain/models"

type Kind string

const (
	KindBookTicket       Kind = "BOOK_TICKET"
	KindCancelTicket     Kind = "CANCEL_TICKET"
	KindEnqueuePassenger Kind = "ENQUEUE_PASSENGER"
	KindDequeuePassenger Kind = "DEQUEUE_PASSENGER"
)

// Target is the state the actions mutate. Positions are list indices used
// to put a booking or passenger back exactly where it was; a negative
// booking position appends.
type Target interface {
	RestoreBooking(busID string, seatIndex, pos int, b models.Booking) error
	RevokeBooking(busID string, seatIndex int, ticketID string) error
	RestorePassenger(pos int, p models.Passenger) error
	RevokePassenger(id string) error
}

// Action is implemented only by the four variants below.
type Action interface {
	Kind() Kind
	Apply(Target) error
	Revert(Target) error
	isAction()
}

type BookTicket struct {
	BusID     string         `json:"bus_id"`
	SeatIndex int            `json:"seat_index"`
	Booking   models.Booking `json:"booking"`
}

func (BookTicket) Kind() Kind { return KindBookTicket }
func (BookTicket) isAction()  {}

func (a BookTicket) Apply(t Target) error {
	return t.RestoreBooking(a.BusID, a.SeatIndex, -1, a.Booking)
}

func (a BookTicket) Revert(t Target) error {
	return t.RevokeBooking(a.BusID, a.SeatIndex, a.Booking.TicketID)
}

type CancelTicket struct {
	BusID     string         `json:"bus_id"`
	SeatIndex int            `json:"seat_index"`
	Position  int            `json:"position"`
	Booking   models.Booking `json:"booking"`
}

func (CancelTicket) Kind() Kind { return KindCancelTicket }
func (CancelTicket) isAction()  {}

func (a CancelTicket) Apply(t Target) error {
	return t.RevokeBooking(a.BusID, a.SeatIndex, a.Booking.TicketID)
}

func (a CancelTicket) Revert(t Target) error {
	return t.RestoreBooking(a.BusID, a.SeatIndex, a.Position, a.Booking)
}

type EnqueuePassenger struct {
	Passenger models.Passenger `json:"passenger"`
	Position  int              `json:"position"`
}

func (EnqueuePassenger) Kind() Kind { return KindEnqueuePassenger }
func (EnqueuePassenger) isAction()  {}

func (a EnqueuePassenger) Apply(t Target) error {
	return t.RestorePassenger(a.Position, a.Passenger)
}

func (a EnqueuePassenger) Revert(t Target) error {
	return t.RevokePassenger(a.Passenger.ID)
}

type DequeuePassenger struct {
	Passenger models.Passenger `json:"passenger"`
	Position  int              `json:"position"`
}

func (DequeuePassenger) Kind() Kind { return KindDequeuePassenger }
func (DequeuePassenger) isAction()  {}

func (a DequeuePassenger) Apply(t Target) error {
	return t.RevokePassenger(a.Passenger.ID)
}

func (a DequeuePassenger) Revert(t Target) error {
	return t.RestorePassenger(a.Position, a.Passenger)
}
