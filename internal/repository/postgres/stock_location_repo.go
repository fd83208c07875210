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

type stockLocationRepo struct {
	db *sqlx.DB
}

// NewStockLocationRepo creates a new PostgreSQL-backed StockLocationRepository.
func NewStockLocationRepo(db *sqlx.DB) port.StockLocationRepository {
	return &stockLocationRepo{db: db}
}

func (r *stockLocationRepo) FindByID(ctx context.Context, id int64) (*domain.StockLocation, error) {
	var loc domain.StockLocation
	err := r.db.GetContext(ctx, &loc, "SELECT * FROM stock_locations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("stockLocationRepo.FindByID: %w", err)
	}
	return &loc, nil
}
