package actionlog

import (
	"encoding/json"
	"time"

	"metrobus/internal/domain"

	"github.com/google/uuid"
)

type Entry struct {
	ID        string
	Timestamp time.Time
	Action    Action
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string    `json:"id"`
		Timestamp time.Time `json:"timestamp"`
		Type      Kind      `json:"type"`
		Action    Action    `json:"action"`
	}{e.ID, e.Timestamp, e.Action.Kind(), e.Action})
}

// Log is the ordered history of applied actions plus the stack of undone
// ones. Recording a new action discards the redo stack.
type Log struct {
	Now   func() time.Time
	NewID func() string

	entries []Entry
	redo    []Entry
}

func (l *Log) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Log) newID() string {
	if l.NewID != nil {
		return l.NewID()
	}
	return uuid.NewString()
}

// Record appends an already-applied action.
func (l *Log) Record(a Action) Entry {
	e := Entry{ID: l.newID(), Timestamp: l.now(), Action: a}
	l.entries = append(l.entries, e)
	l.redo = nil
	return e
}

// Undo reverts the most recent action. When the revert fails the log is
// left untouched.
func (l *Log) Undo(t Target) (Entry, error) {
	if len(l.entries) == 0 {
		return Entry{}, domain.ConflictError{Resource: "history", Msg: "nothing to undo", Err: domain.ErrNothingToUndo}
	}
	e := l.entries[len(l.entries)-1]
	if err := e.Action.Revert(t); err != nil {
		return Entry{}, err
	}
	l.entries = l.entries[:len(l.entries)-1]
	l.redo = append(l.redo, e)
	return e, nil
}

// Redo re-applies the most recently undone action.
func (l *Log) Redo(t Target) (Entry, error) {
	if len(l.redo) == 0 {
		return Entry{}, domain.ConflictError{Resource: "history", Msg: "nothing to redo", Err: domain.ErrNothingToRedo}
	}
	e := l.redo[len(l.redo)-1]
	if err := e.Action.Apply(t); err != nil {
		return Entry{}, err
	}
	l.redo = l.redo[:len(l.redo)-1]
	l.entries = append(l.entries, e)
	return e, nil
}

// Entries returns the history oldest first.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

func (l *Log) Len() int     { return len(l.entries) }
func (l *Log) RedoLen() int { return len(l.redo) }
