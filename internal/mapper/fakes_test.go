package mapper

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"escibridge/internal/domain"
	"escibridge/internal/ubl"
)

// fakeRepo implements every repository interface the mapper consults,
// backed by maps. Setting failWith makes every call fail, for exercising
// the unexpected-failure path.
type fakeRepo struct {
	suppliers      map[int64]*domain.Supplier
	stockLocations map[int64]*domain.StockLocation
	products       map[int64]*domain.Product
	reorderCodes   map[string]*domain.Product
	orders         map[int64]*domain.Order
	orderItems     map[int64][]domain.OrderItem
	noOrderDups    map[string]*domain.Delivery
	orderDups      map[string]*domain.Delivery

	failWith error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		suppliers:      make(map[int64]*domain.Supplier),
		stockLocations: make(map[int64]*domain.StockLocation),
		products:       make(map[int64]*domain.Product),
		reorderCodes:   make(map[string]*domain.Product),
		orders:         make(map[int64]*domain.Order),
		orderItems:     make(map[int64][]domain.OrderItem),
		noOrderDups:    make(map[string]*domain.Delivery),
		orderDups:      make(map[string]*domain.Delivery),
	}
}

func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.suppliers[id], nil
}

func (f *fakeRepo) HasESCIRelationship(context.Context, int64, int64) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	return true, nil
}

// The single fake backs several one-method interfaces, so the remaining
// finders are exposed through small adapters.

type fakeStockLocations struct{ f *fakeRepo }

func (r fakeStockLocations) FindByID(_ context.Context, id int64) (*domain.StockLocation, error) {
	if r.f.failWith != nil {
		return nil, r.f.failWith
	}
	return r.f.stockLocations[id], nil
}

type fakeProducts struct{ f *fakeRepo }

func (r fakeProducts) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	if r.f.failWith != nil {
		return nil, r.f.failWith
	}
	return r.f.products[id], nil
}

func (r fakeProducts) FindByReorderCode(_ context.Context, supplierID int64, code string) (*domain.Product, error) {
	if r.f.failWith != nil {
		return nil, r.f.failWith
	}
	return r.f.reorderCodes[fmt.Sprintf("%d:%s", supplierID, code)], nil
}

type fakeOrders struct{ f *fakeRepo }

func (r fakeOrders) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	if r.f.failWith != nil {
		return nil, r.f.failWith
	}
	return r.f.orders[id], nil
}

func (r fakeOrders) ListItems(_ context.Context, orderID int64) ([]domain.OrderItem, error) {
	if r.f.failWith != nil {
		return nil, r.f.failWith
	}
	return r.f.orderItems[orderID], nil
}

type fakeDeliveries struct{ f *fakeRepo }

func (r fakeDeliveries) Create(_ context.Context, d *domain.Delivery) (*domain.Delivery, error) {
	return d, nil
}

func (r fakeDeliveries) GetByID(context.Context, int64) (*domain.Delivery, error) {
	return nil, domain.ErrNotFound
}

func (r fakeDeliveries) List(context.Context, int64, int, int) ([]domain.Delivery, error) {
	return nil, nil
}

func (r fakeDeliveries) FindBySupplierInvoice(_ context.Context, supplierID int64, invoiceID string) (*domain.Delivery, error) {
	if r.f.failWith != nil {
		return nil, r.f.failWith
	}
	return r.f.noOrderDups[fmt.Sprintf("%d:%s", supplierID, invoiceID)], nil
}

func (r fakeDeliveries) FindByOrderInvoice(_ context.Context, orderID int64, invoiceID string) (*domain.Delivery, error) {
	if r.f.failWith != nil {
		return nil, r.f.failWith
	}
	return r.f.orderDups[fmt.Sprintf("%d:%s", orderID, invoiceID)], nil
}

func newTestMapper(f *fakeRepo) *Mapper {
	return New(Config{
		Suppliers:      f,
		StockLocations: fakeStockLocations{f},
		Products:       fakeProducts{f},
		Orders:         fakeOrders{f},
		Deliveries:     fakeDeliveries{f},
		Currency:       "AUD",
		TaxTypes: []domain.TaxType{
			{Scheme: "GST", Category: "S", Rate: decimal.NewFromInt(10)},
			{Scheme: "GST", Category: "Z", Rate: decimal.Zero},
		},
		UnitsOfMeasure: []domain.UnitOfMeasure{
			{Code: "EA", Name: "Each"},
			{Code: "BX", Name: "Box"},
		},
	})
}

// Document builders.

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func amt(v string) *ubl.Amount {
	return &ubl.Amount{Value: dec(v), CurrencyID: "AUD"}
}

func qty(v, unit string) *ubl.Quantity {
	return &ubl.Quantity{Value: dec(v), UnitCode: unit}
}

// taxTotal builds a tax total with one subtotal in the standard GST
// category.
func taxTotal(tax, taxable, percent string) []ubl.TaxTotal {
	pct := dec(percent)
	return []ubl.TaxTotal{{
		TaxAmount: amt(tax),
		TaxSubtotals: []ubl.TaxSubtotal{{
			TaxableAmount: amt(taxable),
			TaxAmount:     amt(tax),
			TaxCategory: &ubl.TaxCategory{
				ID:        strptr("S"),
				Percent:   &pct,
				TaxScheme: &ubl.TaxScheme{TaxTypeCode: strptr("GST")},
			},
		}},
	}}
}

// invoiceLine builds a taxed line: quantity × price = extension, 10% tax.
func invoiceLine(id, quantity, price, extension, tax string) ubl.InvoiceLine {
	return ubl.InvoiceLine{
		ID:                  strptr(id),
		InvoicedQuantity:    qty(quantity, "EA"),
		LineExtensionAmount: amt(extension),
		Item: &ubl.Item{
			Name:                     strptr("Test product"),
			BuyersItemIdentification: &ubl.ItemIdentification{ID: strptr("100")},
		},
		Price:     &ubl.Price{PriceAmount: amt(price)},
		TaxTotals: taxTotal(tax, extension, "10"),
	}
}

// validInvoice builds the baseline document: one line of 1 × 100 with 10
// tax, payable 110.
func validInvoice() *ubl.Invoice {
	line := invoiceLine("1", "1", "100", "100", "10")
	return &ubl.Invoice{
		UBLVersionID: strptr(ubl.Version),
		ID:           strptr("INV-100"),
		IssueDate:    strptr("2026-05-01"),
		AccountingSupplierParty: &ubl.SupplierParty{
			CustomerAssignedAccountID: strptr("1"),
		},
		AccountingCustomerParty: &ubl.CustomerParty{
			CustomerAssignedAccountID: strptr("2"),
		},
		LegalMonetaryTotal: &ubl.MonetaryTotal{
			LineExtensionAmount: amt("100"),
			TaxExclusiveAmount:  amt("100"),
			PayableAmount:       amt("110"),
		},
		TaxTotals:    []ubl.TaxTotal{{TaxAmount: amt("10")}},
		InvoiceLines: []ubl.InvoiceLine{line},
	}
}

// testParties returns the authenticated submitter pair matching
// validInvoice and seeds the fake repo with them.
func testParties(f *fakeRepo) (*domain.Supplier, *domain.StockLocation) {
	authorID := int64(77)
	supplier := &domain.Supplier{ID: 1, Name: "Vet Supplies Ltd", ESCIAccountID: "ACC-1", Active: true}
	loc := &domain.StockLocation{ID: 2, Name: "Main Store", DefaultAuthorID: &authorID}
	f.suppliers[1] = supplier
	f.stockLocations[2] = loc
	f.products[100] = &domain.Product{ID: 100, Name: "Test product"}
	return supplier, loc
}
