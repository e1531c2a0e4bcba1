package api

import (
	"log"
	stdhttp "net/http"

	intconfig "metrobus/internal/config"
	h "metrobus/internal/http/handlers"
	"metrobus/internal/http/middleware"
	"metrobus/internal/metrics"
	"metrobus/internal/services"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the console API around ctrl. m may be nil, which leaves
// request metrics and /metrics out.
func NewRouter(env intconfig.Env, ctrl *services.Controller, m *metrics.Collector) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"code":   "route_not_found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	h.SetController(ctrl)
	h.SetRouter(r)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/routes", h.Routes)

		api.GET("/stations", h.GetStations)
		api.GET("/dashboard", h.GetDashboard)
		api.GET("/state", h.GetState)
		api.PUT("/filter", h.SetFilter)

		// Intake
		queue := api.Group("/queue")
		queue.GET("", h.GetQueue)
		queue.POST("", h.EnqueuePassenger)
		queue.POST("/board", h.BoardPassenger)
		api.POST("/intake/direct", h.DirectIntake)

		// Fleet
		buses := api.Group("/buses")
		buses.GET("", h.GetBuses)
		buses.GET("/:id", h.GetBus)
		buses.GET("/:id/manifest", h.GetBusManifestPDF)
		buses.DELETE("/:id/tickets/:ticket", h.CancelTicket)

		// Booking workflow
		selection := api.Group("/selection")
		selection.POST("/seats", h.SelectSeat)
		selection.DELETE("", h.ClearSelection)

		bookings := api.Group("/bookings")
		bookings.POST("/start", h.StartBooking)
		bookings.PUT("/drafts/:seat", h.UpdateDraft)
		bookings.POST("/finalize", h.FinalizeBooking)

		tickets := api.Group("/tickets")
		tickets.GET("/:ticket", h.GetTicket)
		tickets.GET("/:ticket/pdf", h.GetTicketPDF)

		// History
		history := api.Group("/history")
		history.GET("", h.GetHistory)
		history.POST("/undo", h.Undo)
		history.POST("/redo", h.Redo)
	}

	return r
}
