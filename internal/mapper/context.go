package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"escibridge/internal/domain"
	"escibridge/internal/ubl"
)

// docContext accumulates validated and resolved state as the pipeline runs.
// One is built per Map call and discarded afterwards.
type docContext struct {
	doc           *ubl.Invoice
	supplier      *domain.Supplier
	stockLocation *domain.StockLocation

	docID     string
	issueDate time.Time
	notes     string

	payable     decimal.Decimal
	declaredTax decimal.Decimal

	order      *domain.Order
	orderItems map[int64]domain.OrderItem

	lines   []lineContext
	charges []chargeContext
}

// lineContext is the per-line working state. The structural stage creates
// one per invoice line; later stages fill in the resolved and reconciled
// fields.
type lineContext struct {
	src   *ubl.InvoiceLine
	index int // 1-based position in the document
	id    string

	quantity      decimal.Decimal
	unitCode      string
	unitPrice     decimal.Decimal
	listPrice     decimal.Decimal
	lineExtension decimal.Decimal
	tax           decimal.Decimal
	packageUnits  string

	product            *domain.Product
	reorderCode        string
	reorderDescription string
	orderItemID        *int64
}

// chargeContext is a validated document-level charge.
type chargeContext struct {
	reason string
	amount decimal.Decimal
	tax    decimal.Decimal
}
