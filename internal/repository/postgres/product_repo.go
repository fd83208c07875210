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

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("productRepo.FindByID: %w", err)
	}
	return &product, nil
}

func (r *productRepo) FindByReorderCode(ctx context.Context, supplierID int64, code string) (*domain.Product, error) {
	var product domain.Product
	query := `SELECT p.* FROM products p
		JOIN product_suppliers ps ON ps.product_id = p.id
		WHERE ps.supplier_id = $1 AND ps.reorder_code = $2`
	err := r.db.GetContext(ctx, &product, query, supplierID, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("productRepo.FindByReorderCode: %w", err)
	}
	return &product, nil
}
