package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"escibridge/internal/domain"
	"escibridge/internal/port"
)

type deliveryRepo struct {
	db *sqlx.DB
}

// NewDeliveryRepo creates a new PostgreSQL-backed DeliveryRepository.
func NewDeliveryRepo(db *sqlx.DB) port.DeliveryRepository {
	return &deliveryRepo{db: db}
}

// Create persists the delivery and its items in one transaction. The
// partial unique indexes on (supplier_id, supplier_invoice_id) and
// (order_id, supplier_invoice_id) close the window between the mapper's
// duplicate check and the insert; a violation surfaces as
// domain.ErrDuplicateDelivery.
func (r *deliveryRepo) Create(ctx context.Context, delivery *domain.Delivery) (*domain.Delivery, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("deliveryRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	delivery.CreatedAt = time.Now().UTC()
	query := `INSERT INTO deliveries
			(supplier_id, stock_location_id, supplier_invoice_id, issue_date, notes, total, tax, author_id, order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		delivery.SupplierID, delivery.StockLocationID, delivery.SupplierInvoiceID,
		delivery.IssueDate, delivery.Notes, delivery.Total, delivery.Tax,
		delivery.AuthorID, delivery.OrderID, delivery.CreatedAt,
	).Scan(&delivery.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, domain.ErrDuplicateDelivery
		}
		return nil, fmt.Errorf("deliveryRepo.Create: %w", err)
	}

	itemQuery := `INSERT INTO delivery_items
			(delivery_id, supplier_invoice_line_id, quantity, list_price, unit_price,
			 package_units, reorder_code, reorder_description, product_id, order_item_id, total, tax)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	for i := range delivery.Items {
		item := &delivery.Items[i]
		item.DeliveryID = delivery.ID
		err = tx.QueryRowContext(ctx, itemQuery,
			item.DeliveryID, item.SupplierInvoiceLineID, item.Quantity, item.ListPrice,
			item.UnitPrice, item.PackageUnits, item.ReorderCode, item.ReorderDescription,
			item.ProductID, item.OrderItemID, item.Total, item.Tax,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("deliveryRepo.Create item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("deliveryRepo.Create commit: %w", err)
	}
	return delivery, nil
}

func (r *deliveryRepo) GetByID(ctx context.Context, id int64) (*domain.Delivery, error) {
	var delivery domain.Delivery
	err := r.db.GetContext(ctx, &delivery, "SELECT * FROM deliveries WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("deliveryRepo.GetByID: %w", err)
	}
	if err := r.loadItems(ctx, &delivery); err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *deliveryRepo) List(ctx context.Context, supplierID int64, limit, offset int) ([]domain.Delivery, error) {
	var deliveries []domain.Delivery
	err := r.db.SelectContext(ctx, &deliveries,
		"SELECT * FROM deliveries WHERE supplier_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		supplierID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("deliveryRepo.List: %w", err)
	}
	for i := range deliveries {
		if err := r.loadItems(ctx, &deliveries[i]); err != nil {
			return nil, err
		}
	}
	return deliveries, nil
}

func (r *deliveryRepo) FindBySupplierInvoice(ctx context.Context, supplierID int64, supplierInvoiceID string) (*domain.Delivery, error) {
	var delivery domain.Delivery
	err := r.db.GetContext(ctx, &delivery,
		"SELECT * FROM deliveries WHERE supplier_id = $1 AND supplier_invoice_id = $2 AND order_id IS NULL",
		supplierID, supplierInvoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("deliveryRepo.FindBySupplierInvoice: %w", err)
	}
	return &delivery, nil
}

func (r *deliveryRepo) FindByOrderInvoice(ctx context.Context, orderID int64, supplierInvoiceID string) (*domain.Delivery, error) {
	var delivery domain.Delivery
	err := r.db.GetContext(ctx, &delivery,
		"SELECT * FROM deliveries WHERE order_id = $1 AND supplier_invoice_id = $2",
		orderID, supplierInvoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("deliveryRepo.FindByOrderInvoice: %w", err)
	}
	return &delivery, nil
}

func (r *deliveryRepo) loadItems(ctx context.Context, delivery *domain.Delivery) error {
	err := r.db.SelectContext(ctx, &delivery.Items,
		"SELECT * FROM delivery_items WHERE delivery_id = $1 ORDER BY id", delivery.ID)
	if err != nil {
		return fmt.Errorf("deliveryRepo.loadItems: %w", err)
	}
	return nil
}
