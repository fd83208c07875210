package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escibridge/internal/domain"
	"escibridge/internal/mapper"
)

func handleOnRecorder(t *testing.T, err error) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	HandleError(c, err)

	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleErrorMapperCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *mapper.Error
		status int
	}{
		{
			name:   "rejection",
			err:    &mapper.Error{Code: mapper.CodePayableMismatch, Message: "payable off", Line: 0},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "duplicate invoice",
			err:    &mapper.Error{Code: mapper.CodeDuplicateInvoice, Message: "duplicate"},
			status: http.StatusConflict,
		},
		{
			name:   "duplicate invoice for order",
			err:    &mapper.Error{Code: mapper.CodeDuplicateInvoiceForOrder, Message: "duplicate"},
			status: http.StatusConflict,
		},
		{
			name:   "processing failure",
			err:    &mapper.Error{Code: mapper.CodeFailedToProcess, Message: "db down"},
			status: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := handleOnRecorder(t, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, string(tt.err.Code), body.Error.Code)
		})
	}
}

func TestHandleErrorCarriesDocumentLocation(t *testing.T) {
	err := &mapper.Error{
		Code:    mapper.CodeLineExtensionMismatch,
		Message: "line amount off",
		Path:    "InvoiceLine/LineExtensionAmount",
		Line:    2,
	}
	rec, body := handleOnRecorder(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "InvoiceLine/LineExtensionAmount", body.Error.Path)
	assert.Equal(t, 2, body.Error.Line)
}

func TestHandleErrorDomainErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrSupplierInactive, http.StatusForbidden, "SUPPLIER_INACTIVE"},
		{domain.ErrESCINotConfigured, http.StatusForbidden, "ESCI_NOT_CONFIGURED"},
		{domain.ErrDuplicateDelivery, http.StatusConflict, "DUPLICATE_DELIVERY"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec, body := handleOnRecorder(t, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}
