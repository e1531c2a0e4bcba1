package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetStations(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.Stations())
}

func GetDashboard(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.Dashboard())
}

// GetState returns the whole console snapshot in one payload.
func GetState(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func GetBuses(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"buses": ctrl.Buses(), "filter": ctrl.CurrentFilter()})
}

func GetBus(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	b, err := ctrl.Bus(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
