package handlers

import (
	"net/http"
	"strconv"

	"metrobus/internal/http/middleware"
	"metrobus/internal/services"
	"metrobus/internal/utils"

	"github.com/gin-gonic/gin"
)

type filterRequest struct {
	Pickup  string `json:"pickup_station" binding:"required"`
	DropOff string `json:"drop_off_station" binding:"required"`
}

type selectSeatRequest struct {
	BusID     string `json:"bus_id" binding:"required"`
	SeatIndex *int   `json:"seat_index" binding:"required"`
}

type draftRequest struct {
	Name        string `json:"name"`
	PassengerID string `json:"passenger_id"`
	Pickup      string `json:"pickup_station"`
	DropOff     string `json:"drop_off_station"`
	ClearName   bool   `json:"clear_name"`
}

func SetFilter(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	var req filterRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	f, err := ctrl.SetFilter(req.Pickup, req.DropOff)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filter": f, "buses": ctrl.Buses()})
}

// SelectSeat toggles one seat in the current selection.
func SelectSeat(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	var req selectSeatRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sel, err := ctrl.SelectSeat(req.BusID, *req.SeatIndex)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": sel})
}

func ClearSelection(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	ctrl.ClearSelection()
	c.JSON(http.StatusOK, gin.H{"selection": ctrl.CurrentSelection()})
}

func StartBooking(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	drafts, err := ctrl.StartBooking()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

// UpdateDraft edits the passenger details of one drafted seat. The :seat
// param is the zero-based seat index.
func UpdateDraft(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	idx, err := strconv.Atoi(c.Param("seat"))
	if err != nil || idx < 0 {
		respondError(c, http.StatusBadRequest, "invalid_seat", "seat index must be a non-negative integer", nil)
		return
	}
	var req draftRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	d, err := ctrl.UpdateDraft(idx, services.DraftUpdate{
		Name:        req.Name,
		PassengerID: req.PassengerID,
		Pickup:      req.Pickup,
		DropOff:     req.DropOff,
		ClearName:   req.ClearName,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d})
}

// FinalizeBooking issues tickets for every drafted seat.
func FinalizeBooking(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	tickets, err := ctrl.FinalizeBooking()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	reqID := middleware.GetRequestID(c)
	for _, t := range tickets {
		utils.LogEvent(reqID, "booking", "ticket_issued", utils.KV("ticket_id", t.TicketID, "bus", t.BusID, "seat", t.SeatNumber, "from", t.Pickup, "to", t.DropOff))
	}
	c.JSON(http.StatusCreated, gin.H{"tickets": tickets, "queue": ctrl.Queue()})
}

func CancelTicket(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	t, err := ctrl.CancelTicket(c.Param("id"), c.Param("ticket"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "booking", "ticket_cancelled", utils.KV("ticket_id", t.TicketID, "bus", t.BusID))
	c.JSON(http.StatusOK, gin.H{"ticket": t})
}
