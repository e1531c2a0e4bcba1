package services

import (
	"sync"
	"time"

	"metrobus/internal/actionlog"
	"metrobus/internal/domain/models"
	"metrobus/internal/ledger"
	"metrobus/internal/queue"
	"metrobus/internal/topology"

	"github.com/google/uuid"
)

// Options tunes a Controller. Zero values give production behaviour.
type Options struct {
	// MatchQueueByName removes every queued passenger whose name equals a
	// booked name after finalizing. The default matches by passenger id.
	MatchQueueByName bool
	TicketPrefix     string
	Now              func() time.Time
	NewID            func() string
}

// Event is delivered to listeners after a command changes console state.
type Event struct {
	Change        string // record, undo, redo or filter
	Entry         *actionlog.Entry
	QueueLength   int
	HistoryLength int
	Occupancy     map[string]int
}

type Listener interface {
	ConsoleChanged(Event)
}

// Intake is the passenger currently routed into the seat workflow, either
// typed in for direct booking or boarded from the queue.
type Intake struct {
	Name        string          `json:"name"`
	Priority    models.Priority `json:"priority"`
	PassengerID string          `json:"passenger_id,omitempty"`
}

type Selection struct {
	BusID string `json:"bus_id,omitempty"`
	Seats []int  `json:"seats"`
}

type Filter struct {
	Pickup  string `json:"pickup_station"`
	DropOff string `json:"drop_off_station"`
}

// Controller owns all console state: the station line, the fleet ledger, the
// intake queue, the action log and the transient selection of the booking
// workflow. Each command runs to completion under one lock.
type Controller struct {
	mu      sync.Mutex
	deliver sync.Mutex // held while events go out; taken before mu is released

	opts    Options
	topo    *topology.Topology
	fleet   *ledger.Fleet
	queue   *queue.Queue
	history *actionlog.Log
	tickets *TicketIssuer

	filter    Filter
	segment   topology.Segment
	intake    *Intake
	selection Selection
	drafts    []models.SeatDraft

	listeners []Listener
	pending   []Event
}

func NewController(topo *topology.Topology, fleet *ledger.Fleet, opts Options) *Controller {
	c := &Controller{
		opts:    opts,
		topo:    topo,
		fleet:   fleet,
		queue:   queue.New(),
		history: &actionlog.Log{Now: opts.Now, NewID: opts.NewID},
		tickets: &TicketIssuer{Prefix: opts.TicketPrefix},
		filter:  Filter{Pickup: topo.First(), DropOff: topo.Last()},
	}
	c.segment = topology.Segment{Start: 0, End: len(topo.Stations()) - 1}
	return c
}

// AddListener registers l for state change events. Not safe to call while
// commands are running. Events are delivered one at a time in the order
// the commands ran.
func (c *Controller) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

func (c *Controller) lock() { c.mu.Lock() }

// unlock releases the state lock and then delivers queued events, so
// listeners never run under the lock. The delivery lock is taken first, so
// events from consecutive commands reach listeners in command order.
// Listeners must not call back into the controller.
func (c *Controller) unlock() {
	pending := c.pending
	c.pending = nil
	if len(pending) == 0 {
		c.mu.Unlock()
		return
	}
	c.deliver.Lock()
	c.mu.Unlock()
	defer c.deliver.Unlock()
	for _, ev := range pending {
		for _, l := range c.listeners {
			l.ConsoleChanged(ev)
		}
	}
}

func (c *Controller) now() time.Time {
	if c.opts.Now != nil {
		return c.opts.Now()
	}
	return time.Now()
}

func (c *Controller) newID() string {
	if c.opts.NewID != nil {
		return c.opts.NewID()
	}
	return uuid.NewString()
}

func (c *Controller) record(a actionlog.Action) {
	e := c.history.Record(a)
	c.emit("record", &e)
}

func (c *Controller) emit(change string, e *actionlog.Entry) {
	if len(c.listeners) == 0 {
		return
	}
	occ := make(map[string]int, c.fleet.Len())
	for _, b := range c.fleet.Buses() {
		occ[b.ID] = b.Occupancy(c.segment)
	}
	c.pending = append(c.pending, Event{
		Change:        change,
		Entry:         e,
		QueueLength:   c.queue.Len(),
		HistoryLength: c.history.Len(),
		Occupancy:     occ,
	})
}

func (c *Controller) resetWorkflow() {
	c.selection = Selection{}
	c.drafts = nil
}

// target adapts the controller state to the mutation primitives used by
// undo and redo. Callers hold the lock.
type target struct{ c *Controller }

func (t target) RestoreBooking(busID string, seatIndex, pos int, b models.Booking) error {
	bus, err := t.c.fleet.Get(busID)
	if err != nil {
		return err
	}
	seg, err := t.c.topo.Segment(b.Pickup, b.DropOff)
	if err != nil {
		return err
	}
	return bus.InsertBooking(seatIndex, pos, seg, b)
}

func (t target) RevokeBooking(busID string, seatIndex int, ticketID string) error {
	bus, err := t.c.fleet.Get(busID)
	if err != nil {
		return err
	}
	_, _, err = bus.RemoveBooking(seatIndex, ticketID)
	return err
}

func (t target) RestorePassenger(pos int, p models.Passenger) error {
	t.c.queue.InsertAt(pos, p)
	return nil
}

func (t target) RevokePassenger(id string) error {
	_, err := t.c.queue.Remove(id)
	return err
}
