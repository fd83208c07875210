package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"escibridge/internal/middleware"
	"escibridge/internal/service"
)

// DeliveryHandler exposes a supplier's deliveries.
type DeliveryHandler struct {
	deliveries service.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(deliveries service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries}
}

// List returns the authenticated supplier's deliveries, newest first.
func (h *DeliveryHandler) List(c *gin.Context) {
	supplierID, err := middleware.GetSupplierID(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	deliveries, err := h.deliveries.List(c.Request.Context(), supplierID, limit, offset)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, deliveries)
}

// GetByID returns one delivery belonging to the authenticated supplier.
func (h *DeliveryHandler) GetByID(c *gin.Context) {
	supplierID, err := middleware.GetSupplierID(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid delivery id")
		return
	}
	delivery, err := h.deliveries.Get(c.Request.Context(), supplierID, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, delivery)
}

// Export streams the supplier's deliveries as CSV.
func (h *DeliveryHandler) Export(c *gin.Context) {
	supplierID, err := middleware.GetSupplierID(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	filename := fmt.Sprintf("deliveries-%s.csv", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := h.deliveries.ExportCSV(c.Request.Context(), supplierID, c.Writer); err != nil {
		HandleError(c, err)
		return
	}
}
