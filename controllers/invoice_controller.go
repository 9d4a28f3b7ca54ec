package controllers

import (
	"fmt"
	"net/http"

	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"

	"github.com/gin-gonic/gin"
)

type InvoiceController struct {
	facade *services.BookingFacade
	logger logger.Logger
}

func NewInvoiceController(facade *services.BookingFacade, log logger.Logger) *InvoiceController {
	if log == nil {
		log = logger.Discard
	}
	return &InvoiceController{facade: facade, logger: log}
}

// GET /invoices/:id
func (ctrl *InvoiceController) GetInvoice(c *gin.Context) {
	inv, err := ctrl.facade.Invoice(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, dto.NewInvoiceResponse(inv))
}

// GET /invoices/:id/pdf
func (ctrl *InvoiceController) DownloadInvoicePDF(c *gin.Context) {
	inv, err := ctrl.facade.Invoice(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	pdf, err := services.RenderInvoicePDF(inv)
	if err != nil {
		ctrl.logger.Error("render invoice %s: %v", inv.ID, err)
		response.ServerError(c)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, inv.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
