package handlers

import (
	"net/http"

	"metrobus/internal/http/middleware"
	"metrobus/internal/services"

	"github.com/gin-gonic/gin"
)

func GetTicket(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	t, err := ctrl.Ticket(c.Param("ticket"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// GetTicketPDF returns a printable ticket (inline).
func GetTicketPDF(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	svc := services.DocsService{
		RequestID:    middleware.GetRequestID(c),
		TicketLoader: ctrl.Ticket,
	}
	pdfBytes, filename, err := svc.GenerateTicket(c.Param("ticket"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	writePDF(c, pdfBytes, filename)
}

// GetBusManifestPDF returns the passenger manifest of a bus (inline).
func GetBusManifestPDF(c *gin.Context) {
	ctrl, ok := controller(c)
	if !ok {
		return
	}
	svc := services.DocsService{
		RequestID: middleware.GetRequestID(c),
		BusLoader: ctrl.Bus,
	}
	pdfBytes, filename, err := svc.GenerateManifest(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	writePDF(c, pdfBytes, filename)
}

func writePDF(c *gin.Context, b []byte, filename string) {
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", b)
}
