package handlers

import (
	"net/http"

	"metrobus/internal/http/middleware"
	"metrobus/internal/utils"

	"github.com/gin-gonic/gin"
)

type intakeRequest struct {
	Name     string `json:"name"`
	Priority string `json:"priority"`
}

type boardRequest struct {
	PassengerID string `json:"passenger_id"`
}

func GetQueue(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	q := ctrl.Queue()
	c.JSON(http.StatusOK, gin.H{"passengers": q, "count": len(q)})
}

// EnqueuePassenger adds a walk-up passenger to the waiting queue.
func EnqueuePassenger(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	var req intakeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	p, pos, err := ctrl.EnqueuePassenger(req.Name, req.Priority)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "queue", "enqueue", utils.KV("passenger_id", p.ID, "priority", p.Priority, "position", pos))
	c.JSON(http.StatusCreated, gin.H{"passenger": p, "position": pos})
}

// BoardPassenger moves a queued passenger (the head when no id is given)
// into seat selection.
func BoardPassenger(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	var req boardRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	p, err := ctrl.BoardPassenger(req.PassengerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "queue", "board", utils.KV("passenger_id", p.ID, "name", p.Name))
	intake, _ := ctrl.CurrentIntake()
	c.JSON(http.StatusOK, gin.H{"passenger": p, "intake": intake})
}

// DirectIntake starts seat selection for a passenger who skips the queue.
func DirectIntake(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	var req intakeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	intake, err := ctrl.DirectIntake(req.Name, req.Priority)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "queue", "direct_intake", utils.KV("name", intake.Name, "priority", intake.Priority))
	c.JSON(http.StatusOK, gin.H{"intake": intake})
}
