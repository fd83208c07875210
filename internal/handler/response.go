package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"escibridge/internal/domain"
	"escibridge/internal/mapper"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response. For rejected invoices Code
// is the stable ESCI code and Line/Path carry the failure's location in the
// document.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// HandleError translates mapping and domain errors to HTTP responses.
func HandleError(c *gin.Context, err error) {
	var mapErr *mapper.Error
	if errors.As(err, &mapErr) {
		status := http.StatusUnprocessableEntity
		switch mapErr.Code {
		case mapper.CodeDuplicateInvoice, mapper.CodeDuplicateInvoiceForOrder:
			status = http.StatusConflict
		case mapper.CodeFailedToProcess:
			status = http.StatusInternalServerError
		}
		if status >= 500 {
			requestID, _ := c.Get("request_id")
			log.Error().Err(err).Interface("request_id", requestID).Msg("invoice processing failed")
		}
		c.JSON(status, APIResponse{
			Success: false,
			Error: &APIError{
				Code:    string(mapErr.Code),
				Message: mapErr.Message,
				Path:    mapErr.Path,
				Line:    mapErr.Line,
			},
		})
		return
	}

	status, code, msg := mapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Error().Err(err).Interface("request_id", requestID).Msg("internal error")
	}
	RespondError(c, status, code, msg)
}

// mapDomainError translates domain errors to HTTP status codes and error
// codes.
func mapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrSupplierInactive):
		return http.StatusForbidden, "SUPPLIER_INACTIVE", "supplier is inactive"
	case errors.Is(err, domain.ErrESCINotConfigured):
		return http.StatusForbidden, "ESCI_NOT_CONFIGURED", "supplier has no e-invoicing relationship with the stock location"
	case errors.Is(err, domain.ErrDuplicateDelivery):
		return http.StatusConflict, "DUPLICATE_DELIVERY", "delivery already exists for this supplier invoice"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}
