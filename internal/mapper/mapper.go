// Package mapper implements the supplier e-invoice mapping engine: it
// validates a decoded UBL invoice against structural and business
// invariants, cross-references it against the practice's own records, and
// assembles a Delivery aggregate ready for persistence.
//
// The pipeline is strictly sequential and short-circuiting. Each stage
// either enriches the per-call context or aborts the whole operation with a
// single classified *Error; no partial output is ever returned.
package mapper

import (
	"context"

	"github.com/shopspring/decimal"

	"escibridge/internal/domain"
	"escibridge/internal/port"
	"escibridge/internal/ubl"
)

// Mapper maps supplier invoices to deliveries. It holds no per-document
// state; concurrent Map calls are independent.
type Mapper struct {
	suppliers      port.SupplierRepository
	stockLocations port.StockLocationRepository
	products       port.ProductRepository
	orders         port.OrderRepository
	deliveries     port.DeliveryRepository

	currency string
	taxTypes *TaxTable
	units    *UnitTable
}

// Config carries the mapper's collaborators and lookup tables. Everything
// the engine consults is passed here; it performs no ambient lookups.
type Config struct {
	Suppliers      port.SupplierRepository
	StockLocations port.StockLocationRepository
	Products       port.ProductRepository
	Orders         port.OrderRepository
	Deliveries     port.DeliveryRepository

	// Currency is the practice currency code every monetary element must
	// carry.
	Currency string

	TaxTypes       []domain.TaxType
	UnitsOfMeasure []domain.UnitOfMeasure
}

// New creates a Mapper from its configuration.
func New(cfg Config) *Mapper {
	return &Mapper{
		suppliers:      cfg.Suppliers,
		stockLocations: cfg.StockLocations,
		products:       cfg.Products,
		orders:         cfg.Orders,
		deliveries:     cfg.Deliveries,
		currency:       cfg.Currency,
		taxTypes:       NewTaxTable(cfg.TaxTypes),
		units:          NewUnitTable(cfg.UnitsOfMeasure),
	}
}

// Map validates doc and maps it to a Delivery for the given supplier and
// stock location. Both parties are authenticated out of band by the caller;
// document content is never trusted to identify them. When existing is
// non-nil the assembled delivery reuses its identity, supporting re-mapping
// onto a prior partially-processed delivery.
//
// On failure the returned error is a *Error classifying the first violated
// rule, and no delivery is produced.
func (m *Mapper) Map(ctx context.Context, doc *ubl.Invoice, supplier *domain.Supplier, stockLocation *domain.StockLocation, existing *domain.Delivery) (*domain.Delivery, error) {
	mc := &docContext{
		doc:           doc,
		supplier:      supplier,
		stockLocation: stockLocation,
	}

	stages := []func(context.Context, *docContext) error{
		m.checkStructure,
		m.resolveParties,
		m.resolveProducts,
		m.reconcileAmounts,
		m.linkOrder,
		m.checkDuplicate,
	}
	for _, stage := range stages {
		if err := stage(ctx, mc); err != nil {
			return nil, err
		}
	}

	return m.assemble(mc, existing), nil
}

// amount extracts a monetary value, enforcing the practice currency and
// non-negativity. line is the 1-based invoice line, 0 for document-level
// elements.
func (m *Mapper) amount(mc *docContext, a *ubl.Amount, path string, line int) (decimal.Decimal, error) {
	if a.CurrencyID != m.currency {
		return decimal.Zero, errInvalidCurrency(mc.docID, path, a.CurrencyID, m.currency).at(line)
	}
	if a.Value.IsNegative() {
		return decimal.Zero, errInvalidAmount(mc.docID, path, a.Value.String()).at(line)
	}
	return a.Value, nil
}

// quantity extracts a quantity value, enforcing non-negativity. Zero is
// valid.
func (m *Mapper) quantity(mc *docContext, q *ubl.Quantity, path string, line int) (decimal.Decimal, error) {
	if q.Value.IsNegative() {
		return decimal.Zero, errInvalidQuantity(mc.docID, path, q.Value.String()).at(line)
	}
	return q.Value, nil
}
