package services

import (
	"slices"

	"metrobus/internal/actionlog"
)

// Undo reverts the most recent action against the ledger or queue.
func (c *Controller) Undo() (actionlog.Entry, error) {
	c.lock()
	defer c.unlock()

	e, err := c.history.Undo(target{c})
	if err != nil {
		return actionlog.Entry{}, err
	}
	c.drafts = nil
	c.emit("undo", &e)
	return e, nil
}

// Redo re-applies the most recently undone action.
func (c *Controller) Redo() (actionlog.Entry, error) {
	c.lock()
	defer c.unlock()

	e, err := c.history.Redo(target{c})
	if err != nil {
		return actionlog.Entry{}, err
	}
	c.drafts = nil
	c.emit("redo", &e)
	return e, nil
}

// History returns the recorded actions newest first.
func (c *Controller) History() []actionlog.Entry {
	c.lock()
	defer c.unlock()

	out := c.history.Entries()
	slices.Reverse(out)
	return out
}
