package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"escibridge/internal/domain"
	"escibridge/internal/port"
)

type supplierRepo struct {
	db *sqlx.DB
}

// NewSupplierRepo creates a new PostgreSQL-backed SupplierRepository.
func NewSupplierRepo(db *sqlx.DB) port.SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) FindByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := r.db.GetContext(ctx, &supplier, "SELECT * FROM suppliers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("supplierRepo.FindByID: %w", err)
	}
	return &supplier, nil
}

func (r *supplierRepo) HasESCIRelationship(ctx context.Context, supplierID, stockLocationID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM supplier_stock_locations WHERE supplier_id = $1 AND stock_location_id = $2)",
		supplierID, stockLocationID)
	if err != nil {
		return false, fmt.Errorf("supplierRepo.HasESCIRelationship: %w", err)
	}
	return exists, nil
}
