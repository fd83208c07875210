// Package port defines the interfaces between the service/mapper layers and
// their infrastructure adapters. Implementations live under
// internal/repository, internal/storage and internal/email.
package port

import (
	"context"

	"escibridge/internal/domain"
)

// SupplierRepository looks up suppliers. Find methods return (nil, nil) when
// no row matches.
type SupplierRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Supplier, error)

	// HasESCIRelationship reports whether the supplier is configured to
	// deliver e-invoices to the stock location.
	HasESCIRelationship(ctx context.Context, supplierID, stockLocationID int64) (bool, error)
}

// StockLocationRepository looks up stock locations.
type StockLocationRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.StockLocation, error)
}

// ProductRepository resolves invoice line identifiers to catalog products.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)

	// FindByReorderCode resolves a supplier's re-order code to the linked
	// product.
	FindByReorderCode(ctx context.Context, supplierID int64, code string) (*domain.Product, error)
}

// OrderRepository looks up purchase orders and their lines.
type OrderRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	ListItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
}

// DeliveryRepository persists and queries deliveries. The two Find methods
// back duplicate detection and return (nil, nil) when no delivery matches.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *domain.Delivery) (*domain.Delivery, error)
	GetByID(ctx context.Context, id int64) (*domain.Delivery, error)
	List(ctx context.Context, supplierID int64, limit, offset int) ([]domain.Delivery, error)

	FindBySupplierInvoice(ctx context.Context, supplierID int64, supplierInvoiceID string) (*domain.Delivery, error)
	FindByOrderInvoice(ctx context.Context, orderID int64, supplierInvoiceID string) (*domain.Delivery, error)
}

// LookupRepository loads the reference tables the mapper consults.
type LookupRepository interface {
	ListTaxTypes(ctx context.Context) ([]domain.TaxType, error)
	ListUnitsOfMeasure(ctx context.Context) ([]domain.UnitOfMeasure, error)
}
