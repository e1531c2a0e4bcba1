package services

import (
	"fmt"

	"metrobus/internal/actionlog"
	"metrobus/internal/domain"
	"metrobus/internal/domain/models"
	"metrobus/internal/utils"
)

func parseIntake(name, priority string) (string, models.Priority, error) {
	name = utils.NormalizeSpace(name)
	if name == "" {
		return "", "", domain.ValidationError{Field: "name", Msg: "passenger name is required", Err: domain.ErrEmptyInput}
	}
	pr, ok := models.ParsePriority(priority)
	if !ok {
		return "", "", domain.ValidationError{Field: "priority", Msg: fmt.Sprintf("unknown priority %q", priority), Err: domain.ErrInvalidPriority}
	}
	return name, pr, nil
}

// EnqueuePassenger adds a waiting passenger to the intake queue and returns
// it with its queue position.
func (c *Controller) EnqueuePassenger(name, priority string) (models.Passenger, int, error) {
	name, pr, err := parseIntake(name, priority)
	if err != nil {
		return models.Passenger{}, -1, err
	}

	c.lock()
	defer c.unlock()

	p := models.Passenger{ID: c.newID(), Name: name, Priority: pr, JoinedAt: c.now()}
	pos := c.queue.Enqueue(p)
	c.record(actionlog.EnqueuePassenger{Passenger: p, Position: pos})
	c.intake = nil
	return p, pos, nil
}

// DirectIntake routes a passenger straight into seat selection without
// queueing. Any seat selection in progress is discarded.
func (c *Controller) DirectIntake(name, priority string) (Intake, error) {
	name, pr, err := parseIntake(name, priority)
	if err != nil {
		return Intake{}, err
	}

	c.lock()
	defer c.unlock()

	c.intake = &Intake{Name: name, Priority: pr}
	c.resetWorkflow()
	return *c.intake, nil
}

// BoardPassenger takes the passenger with id (or the head of the queue when
// id is empty) out of the queue and makes it the in-flight intake.
func (c *Controller) BoardPassenger(id string) (models.Passenger, error) {
	c.lock()
	defer c.unlock()

	r, err := c.queue.Dequeue(id)
	if err != nil {
		return models.Passenger{}, err
	}
	c.record(actionlog.DequeuePassenger{Passenger: r.Passenger, Position: r.Position})
	c.intake = &Intake{Name: r.Passenger.Name, Priority: r.Passenger.Priority, PassengerID: r.Passenger.ID}
	c.resetWorkflow()
	return r.Passenger, nil
}

// Queue returns the waiting passengers in boarding order.
func (c *Controller) Queue() []models.Passenger {
	c.lock()
	defer c.unlock()
	return c.queue.Snapshot()
}

// CurrentIntake returns the in-flight intake, if any.
func (c *Controller) CurrentIntake() (Intake, bool) {
	c.lock()
	defer c.unlock()
	if c.intake == nil {
		return Intake{}, false
	}
	return *c.intake, true
}
