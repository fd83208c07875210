package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"escibridge/internal/middleware"
	"escibridge/internal/service"
	"escibridge/internal/ubl"
)

// InvoiceHandler accepts supplier invoice submissions.
type InvoiceHandler struct {
	invoices service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoices service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// Submit accepts a decoded UBL invoice, maps it to a delivery and persists
// it. The submitting supplier and stock location come from the token, never
// from document content.
func (h *InvoiceHandler) Submit(c *gin.Context) {
	supplierID, err := middleware.GetSupplierID(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	stockLocationID, err := middleware.GetStockLocationID(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	var doc ubl.Invoice
	if err := c.ShouldBindJSON(&doc); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body is not a valid invoice document")
		return
	}

	delivery, err := h.invoices.Submit(c.Request.Context(), &doc, supplierID, stockLocationID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, delivery)
}
