package handlers

import (
	"net/http"

	"metrobus/internal/http/middleware"
	"metrobus/internal/utils"

	"github.com/gin-gonic/gin"
)

func GetHistory(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	h := ctrl.History()
	c.JSON(http.StatusOK, gin.H{"entries": h, "count": len(h)})
}

func Undo(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	e, err := ctrl.Undo()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "history", "undo", utils.KV("entry", e.ID, "type", e.Action.Kind()))
	c.JSON(http.StatusOK, gin.H{"undone": e, "state": ctrl.Snapshot()})
}

func Redo(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	e, err := ctrl.Redo()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "history", "redo", utils.KV("entry", e.ID, "type", e.Action.Kind()))
	c.JSON(http.StatusOK, gin.H{"redone": e, "state": ctrl.Snapshot()})
}
