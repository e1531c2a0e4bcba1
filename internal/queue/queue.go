// Package queue implements the station intake queue: a two-class partition
// where every expedited passenger waits ahead of every normal one and each
// class keeps arrival order.
package queue

import (
	"fmt"
	"strings"

	"metrobus/internal/domain"
	"metrobus/internal/domain/models"
)

// Removed is a passenger taken out of the queue together with the position
// it held, so the removal can be reverted.
type Removed struct {
	Passenger models.Passenger
	Position  int
}

type Queue struct {
	items []models.Passenger
}

func New() *Queue {
	return &Queue{}
}

func (q *Queue) Len() int { return len(q.items) }

// Snapshot returns a copy of the queue in boarding order.
func (q *Queue) Snapshot() []models.Passenger {
	return append([]models.Passenger(nil), q.items...)
}

// Peek returns the head of the queue.
func (q *Queue) Peek() (models.Passenger, bool) {
	if len(q.items) == 0 {
		return models.Passenger{}, false
	}
	return q.items[0], true
}

// Enqueue inserts p and returns its position. Normal passengers go to the
// tail; expedited ones go immediately before the first normal passenger.
func (q *Queue) Enqueue(p models.Passenger) int {
	pos := len(q.items)
	if p.Priority.Expedited() {
		for i, it := range q.items {
			if !it.Priority.Expedited() {
				pos = i
				break
			}
		}
	}
	q.insert(pos, p)
	return pos
}

// Dequeue removes the passenger with the given id, or the head when id is
// empty.
func (q *Queue) Dequeue(id string) (Removed, error) {
	id = strings.TrimSpace(id)
	if len(q.items) == 0 {
		return Removed{}, domain.NotFoundError{Resource: "passenger (queue is empty)", Err: domain.ErrPassengerNotFound}
	}
	pos := 0
	if id != "" {
		pos = q.indexOf(id)
		if pos < 0 {
			return Removed{}, domain.NotFoundError{Resource: fmt.Sprintf("passenger %s", id), Err: domain.ErrPassengerNotFound}
		}
	}
	return q.removeAt(pos), nil
}

// Remove deletes the passenger with the given id.
func (q *Queue) Remove(id string) (Removed, error) {
	pos := q.indexOf(id)
	if pos < 0 {
		return Removed{}, domain.NotFoundError{Resource: fmt.Sprintf("passenger %s", id), Err: domain.ErrPassengerNotFound}
	}
	return q.removeAt(pos), nil
}

// InsertAt places p at pos, clamped to the queue bounds. Used to restore a
// passenger at the exact place it was removed from.
func (q *Queue) InsertAt(pos int, p models.Passenger) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(q.items) {
		pos = len(q.items)
	}
	q.insert(pos, p)
}

// RemoveByIDs drops every queued passenger whose id is listed.
func (q *Queue) RemoveByIDs(ids []string) []Removed {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return q.removeWhere(func(p models.Passenger) bool { return set[p.ID] })
}

// RemoveByNames drops every queued passenger whose name matches one of
// names exactly. Distinct passengers sharing a name are all removed.
func (q *Queue) RemoveByNames(names []string) []Removed {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return q.removeWhere(func(p models.Passenger) bool { return set[p.Name] })
}

// removeWhere reports each position as if the matches were dequeued one at a
// time from the front, so reinserting them in reverse order restores the
// original layout.
func (q *Queue) removeWhere(match func(models.Passenger) bool) []Removed {
	var out []Removed
	kept := q.items[:0]
	for i, p := range q.items {
		if match(p) {
			out = append(out, Removed{Passenger: p, Position: i - len(out)})
			continue
		}
		kept = append(kept, p)
	}
	q.items = kept
	return out
}

func (q *Queue) indexOf(id string) int {
	for i, p := range q.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (q *Queue) insert(pos int, p models.Passenger) {
	q.items = append(q.items, models.Passenger{})
	copy(q.items[pos+1:], q.items[pos:])
	q.items[pos] = p
}

func (q *Queue) removeAt(pos int) Removed {
	p := q.items[pos]
	q.items = append(q.items[:pos], q.items[pos+1:]...)
	return Removed{Passenger: p, Position: pos}
}
