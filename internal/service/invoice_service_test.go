package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escibridge/internal/domain"
	"escibridge/internal/mapper"
	"escibridge/internal/ubl"
)

func sptr(s string) *string { return &s }

func aud(v string) *ubl.Amount {
	return &ubl.Amount{Value: decimal.RequireFromString(v), CurrencyID: "AUD"}
}

// submittableInvoice builds a document that maps cleanly for supplier 1 at
// stock location 2: one line of 1 × 100 with 10 tax.
func submittableInvoice() *ubl.Invoice {
	pct := decimal.NewFromInt(10)
	lineTax := []ubl.TaxTotal{{
		TaxAmount: aud("10"),
		TaxSubtotals: []ubl.TaxSubtotal{{
			TaxableAmount: aud("100"),
			TaxAmount:     aud("10"),
			TaxCategory: &ubl.TaxCategory{
				ID:        sptr("S"),
				Percent:   &pct,
				TaxScheme: &ubl.TaxScheme{TaxTypeCode: sptr("GST")},
			},
		}},
	}}
	return &ubl.Invoice{
		UBLVersionID: sptr(ubl.Version),
		ID:           sptr("INV-100"),
		IssueDate:    sptr("2026-05-01"),
		AccountingSupplierParty: &ubl.SupplierParty{
			CustomerAssignedAccountID: sptr("1"),
		},
		AccountingCustomerParty: &ubl.CustomerParty{
			CustomerAssignedAccountID: sptr("2"),
		},
		LegalMonetaryTotal: &ubl.MonetaryTotal{
			LineExtensionAmount: aud("100"),
			TaxExclusiveAmount:  aud("100"),
			PayableAmount:       aud("110"),
		},
		TaxTotals: []ubl.TaxTotal{{TaxAmount: aud("10")}},
		InvoiceLines: []ubl.InvoiceLine{{
			ID:                  sptr("1"),
			InvoicedQuantity:    &ubl.Quantity{Value: decimal.NewFromInt(1), UnitCode: "EA"},
			LineExtensionAmount: aud("100"),
			Item: &ubl.Item{
				Name:                     sptr("Test product"),
				BuyersItemIdentification: &ubl.ItemIdentification{ID: sptr("100")},
			},
			Price:     &ubl.Price{PriceAmount: aud("100")},
			TaxTotals: lineTax,
		}},
	}
}

type submitFixture struct {
	suppliers  *stubSuppliers
	locations  *stubStockLocations
	deliveries *stubDeliveries
	storage    *stubStorage
	email      *stubEmail
	svc        InvoiceService
}

func newSubmitFixture() *submitFixture {
	f := &submitFixture{
		suppliers: &stubSuppliers{
			supplier: &domain.Supplier{ID: 1, Name: "Vet Supplies Ltd", Active: true},
			linked:   true,
		},
		locations:  &stubStockLocations{loc: &domain.StockLocation{ID: 2, Name: "Main Store"}},
		deliveries: &stubDeliveries{},
		storage:    &stubStorage{},
		email:      &stubEmail{},
	}
	m := mapper.New(mapper.Config{
		Suppliers:      f.suppliers,
		StockLocations: f.locations,
		Products:       &stubProducts{product: &domain.Product{ID: 100, Name: "Test product"}},
		Orders:         stubOrders{},
		Deliveries:     f.deliveries,
		Currency:       "AUD",
		TaxTypes: []domain.TaxType{
			{Scheme: "GST", Category: "S", Rate: decimal.NewFromInt(10)},
		},
		UnitsOfMeasure: []domain.UnitOfMeasure{{Code: "EA", Name: "Each"}},
	})
	f.svc = NewInvoiceService(
		f.suppliers, f.locations, f.deliveries, m,
		f.storage, f.email, "escibridge-invoices", "stock@example.com",
		zerolog.Nop(),
	)
	return f
}

func TestSubmitMapsAndPersists(t *testing.T) {
	f := newSubmitFixture()

	delivery, err := f.svc.Submit(context.Background(), submittableInvoice(), 1, 2)
	require.NoError(t, err)
	require.NotNil(t, delivery)
	assert.Equal(t, int64(101), delivery.ID)
	assert.Equal(t, "110", delivery.Total.String())
	require.Len(t, f.deliveries.created, 1)

	require.Len(t, f.storage.uploads, 1)
	upload := f.storage.uploads[0]
	assert.Equal(t, "escibridge-invoices", upload.Bucket)
	assert.True(t, strings.HasPrefix(upload.Key, "invoices/1/"), "archive key is scoped per supplier, got %q", upload.Key)
	assert.Equal(t, "application/json", upload.ContentType)

	assert.Empty(t, f.email.sent)
}

func TestSubmitRejectionNotifies(t *testing.T) {
	f := newSubmitFixture()

	doc := submittableInvoice()
	doc.LegalMonetaryTotal.PayableAmount = aud("1")

	delivery, err := f.svc.Submit(context.Background(), doc, 1, 2)
	assert.Nil(t, delivery)

	var merr *mapper.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, mapper.CodePayableMismatch, merr.Code)

	assert.Empty(t, f.deliveries.created)
	require.Len(t, f.email.sent, 1)
	msg := f.email.sent[0]
	assert.Equal(t, []string{"stock@example.com"}, msg.To)
	assert.Contains(t, msg.Subject, "INV-100")
	assert.Contains(t, msg.Body, string(mapper.CodePayableMismatch))

	// The raw document is archived even when it is rejected.
	assert.Len(t, f.storage.uploads, 1)
}

func TestSubmitAuthorization(t *testing.T) {
	t.Run("unknown supplier", func(t *testing.T) {
		f := newSubmitFixture()
		_, err := f.svc.Submit(context.Background(), submittableInvoice(), 9, 2)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("inactive supplier", func(t *testing.T) {
		f := newSubmitFixture()
		f.suppliers.supplier.Active = false
		_, err := f.svc.Submit(context.Background(), submittableInvoice(), 1, 2)
		assert.ErrorIs(t, err, domain.ErrSupplierInactive)
	})

	t.Run("unknown stock location", func(t *testing.T) {
		f := newSubmitFixture()
		_, err := f.svc.Submit(context.Background(), submittableInvoice(), 1, 9)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("supplier not configured for location", func(t *testing.T) {
		f := newSubmitFixture()
		f.suppliers.linked = false
		_, err := f.svc.Submit(context.Background(), submittableInvoice(), 1, 2)
		assert.ErrorIs(t, err, domain.ErrESCINotConfigured)
	})
}

func TestSubmitArchiveFailureIsNotFatal(t *testing.T) {
	f := newSubmitFixture()
	f.storage.err = errors.New("bucket unavailable")

	delivery, err := f.svc.Submit(context.Background(), submittableInvoice(), 1, 2)
	require.NoError(t, err)
	assert.NotNil(t, delivery)
}
