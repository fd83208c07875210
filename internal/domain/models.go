package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier is a party registered to submit electronic invoices.
type Supplier struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	ESCIKeyHash string `db:"esci_key_hash" json:"-"`

	// ESCIAccountID is the account id the supplier assigned to the practice.
	// Invoices may identify the supplier by it instead of the practice's id.
	ESCIAccountID string    `db:"esci_account_id" json:"esci_account_id,omitempty"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// StockLocation is an inventory location that receives supplier deliveries.
type StockLocation struct {
	ID              int64  `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	DefaultAuthorID *int64 `db:"default_author_id" json:"default_author_id,omitempty"`
}

// User is a practice staff member. Deliveries record one as their author.
type User struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

// Product is a catalog entry that supplier invoice lines may resolve to.
type Product struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ProductSupplier links a product to a supplier under that supplier's
// re-order code.
type ProductSupplier struct {
	ProductID   int64  `db:"product_id" json:"product_id"`
	SupplierID  int64  `db:"supplier_id" json:"supplier_id"`
	ReorderCode string `db:"reorder_code" json:"reorder_code"`
}

// Order is a purchase order previously placed with a supplier.
type Order struct {
	ID              int64  `db:"id" json:"id"`
	SupplierID      int64  `db:"supplier_id" json:"supplier_id"`
	StockLocationID int64  `db:"stock_location_id" json:"stock_location_id"`
	AuthorID        *int64 `db:"author_id" json:"author_id,omitempty"`
}

// OrderItem is a single line of a purchase order.
type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   int64           `db:"order_id" json:"order_id"`
	ProductID *int64          `db:"product_id" json:"product_id,omitempty"`
	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
}

// TaxType defines the rate the practice applies for a document tax
// scheme/category pair.
type TaxType struct {
	Scheme   string          `db:"scheme" json:"scheme"`
	Category string          `db:"category" json:"category"`
	Rate     decimal.Decimal `db:"rate" json:"rate"`
}

// UnitOfMeasure maps a UN/CEFACT unit code to the practice's package
// unit name.
type UnitOfMeasure struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

// Delivery records goods and services received against a supplier invoice.
// The mapper assembles it as a unit; nothing mutates it afterwards.
type Delivery struct {
	ID                int64           `db:"id" json:"id"`
	SupplierID        int64           `db:"supplier_id" json:"supplier_id"`
	StockLocationID   int64           `db:"stock_location_id" json:"stock_location_id"`
	SupplierInvoiceID string          `db:"supplier_invoice_id" json:"supplier_invoice_id"`
	IssueDate         time.Time       `db:"issue_date" json:"issue_date"`
	Notes             string          `db:"notes" json:"notes,omitempty"`
	Total             decimal.Decimal `db:"total" json:"total"`
	Tax               decimal.Decimal `db:"tax" json:"tax"`
	AuthorID          *int64          `db:"author_id" json:"author_id,omitempty"`
	OrderID           *int64          `db:"order_id" json:"order_id,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`

	Items []DeliveryItem `db:"-" json:"items"`
}

// DeliveryItem is a single received line. Items mapped from document-level
// charges carry no product reference and no invoice line id.
type DeliveryItem struct {
	ID                    int64           `db:"id" json:"id"`
	DeliveryID            int64           `db:"delivery_id" json:"delivery_id"`
	SupplierInvoiceLineID string          `db:"supplier_invoice_line_id" json:"supplier_invoice_line_id,omitempty"`
	Quantity              decimal.Decimal `db:"quantity" json:"quantity"`
	ListPrice             decimal.Decimal `db:"list_price" json:"list_price"`
	UnitPrice             decimal.Decimal `db:"unit_price" json:"unit_price"`
	PackageUnits          string          `db:"package_units" json:"package_units,omitempty"`
	ReorderCode           string          `db:"reorder_code" json:"reorder_code,omitempty"`
	ReorderDescription    string          `db:"reorder_description" json:"reorder_description,omitempty"`
	ProductID             *int64          `db:"product_id" json:"product_id,omitempty"`
	OrderItemID           *int64          `db:"order_item_id" json:"order_item_id,omitempty"`
	Total                 decimal.Decimal `db:"total" json:"total"`
	Tax                   decimal.Decimal `db:"tax" json:"tax"`
}
