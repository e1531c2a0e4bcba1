package handlers

import (
	"net/http"
	"sync"

	"metrobus/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine

	consoleMu sync.RWMutex
	console   *services.Controller
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

// SetController installs the console every handler operates on.
func SetController(ctrl *services.Controller) {
	consoleMu.Lock()
	defer consoleMu.Unlock()
	console = ctrl
}

// controller returns the installed console, answering 503 when there is none.
func controller(c *gin.Context) (*services.Controller, bool) {
	consoleMu.RLock()
	ctrl := console
	consoleMu.RUnlock()
	if ctrl == nil {
		respondError(c, http.StatusServiceUnavailable, "not_ready", "console is not ready", nil)
		return nil, false
	}
	return ctrl, true
}

func Health(c *gin.Context) {
	consoleMu.RLock()
	ready := console != nil
	consoleMu.RUnlock()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "metro bus console running", "console_ready": ready})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "not_ready", "router is not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
