package services

import (
	"slices"

	"metrobus/internal/domain/models"
	"metrobus/internal/ledger"
)

type StationOptions struct {
	Stations     []string `json:"stations"`
	Origins      []string `json:"origins"`
	Destinations []string `json:"destinations"`
	Filter       Filter   `json:"filter"`
}

// Stations lists the line and the selectable filter values. Destinations
// are the stations strictly after the active pickup.
func (c *Controller) Stations() StationOptions {
	c.lock()
	defer c.unlock()

	dests, _ := c.topo.Destinations(c.filter.Pickup)
	return StationOptions{
		Stations:     c.topo.Stations(),
		Origins:      c.topo.Origins(),
		Destinations: dests,
		Filter:       c.filter,
	}
}

type Dashboard struct {
	Waiting        int               `json:"waiting"`
	LiveBuses      int               `json:"live_buses"`
	VacantSegments int               `json:"vacant_segments"`
	TotalOps       int               `json:"total_ops"`
	Next           *models.Passenger `json:"next,omitempty"`
	Filter         Filter            `json:"filter"`
}

func (c *Controller) Dashboard() Dashboard {
	c.lock()
	defer c.unlock()

	d := Dashboard{
		Waiting:   c.queue.Len(),
		LiveBuses: c.fleet.Len(),
		TotalOps:  c.history.Len(),
		Filter:    c.filter,
	}
	for _, b := range c.fleet.Buses() {
		d.VacantSegments += b.Capacity() - b.Occupancy(c.segment)
	}
	if p, ok := c.queue.Peek(); ok {
		d.Next = &p
	}
	return d
}

// Buses summarizes every bus under the active filter, without seat detail.
func (c *Controller) Buses() []models.BusView {
	c.lock()
	defer c.unlock()

	out := make([]models.BusView, 0, c.fleet.Len())
	for _, b := range c.fleet.Buses() {
		out = append(out, c.busView(b, false))
	}
	return out
}

// Bus returns one bus with its seat map under the active filter.
func (c *Controller) Bus(id string) (models.BusView, error) {
	c.lock()
	defer c.unlock()

	b, err := c.fleet.Get(id)
	if err != nil {
		return models.BusView{}, err
	}
	return c.busView(b, true), nil
}

func (c *Controller) busView(b *ledger.Bus, withSeats bool) models.BusView {
	v := models.BusView{
		ID:            b.ID,
		Route:         b.Route,
		DepartureTime: b.DepartureTime,
		Status:        b.Status,
		Capacity:      b.Capacity(),
		Occupancy:     b.Occupancy(c.segment),
	}
	if !withSeats {
		return v
	}
	for i := 0; i < b.Capacity(); i++ {
		s, _ := b.Seat(i)
		sv := models.SeatView{
			Index:    i,
			Number:   i + 1,
			IsWindow: s.IsWindow,
			Bookings: s.Bookings(),
			Selected: c.selection.BusID == b.ID && slices.Contains(c.selection.Seats, i),
		}
		if active, ok := s.Conflict(c.segment); ok {
			sv.Occupied = true
			sv.Active = &active
		}
		v.Seats = append(v.Seats, sv)
	}
	return v
}

// Snapshot is the whole console state in one read.
type Snapshot struct {
	Filter    Filter             `json:"filter"`
	Intake    *Intake            `json:"intake,omitempty"`
	Selection Selection          `json:"selection"`
	Drafts    []models.SeatDraft `json:"drafts"`
	Queue     []models.Passenger `json:"queue"`
	Buses     []models.BusView   `json:"buses"`
	History   int                `json:"history_length"`
	Redo      int                `json:"redo_length"`
}

func (c *Controller) Snapshot() Snapshot {
	c.lock()
	defer c.unlock()

	s := Snapshot{
		Filter:    c.filter,
		Selection: c.currentSelection(),
		Drafts:    c.currentDrafts(),
		Queue:     c.queue.Snapshot(),
		History:   c.history.Len(),
		Redo:      c.history.RedoLen(),
	}
	if c.intake != nil {
		in := *c.intake
		s.Intake = &in
	}
	for _, b := range c.fleet.Buses() {
		s.Buses = append(s.Buses, c.busView(b, true))
	}
	return s
}
