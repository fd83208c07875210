package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"escibridge/internal/domain"
	"escibridge/internal/port"
)

type lookupRepo struct {
	db *sqlx.DB
}

// NewLookupRepo creates a new PostgreSQL-backed LookupRepository.
func NewLookupRepo(db *sqlx.DB) port.LookupRepository {
	return &lookupRepo{db: db}
}

func (r *lookupRepo) ListTaxTypes(ctx context.Context) ([]domain.TaxType, error) {
	var types []domain.TaxType
	err := r.db.SelectContext(ctx, &types, "SELECT * FROM tax_types ORDER BY scheme, category")
	if err != nil {
		return nil, fmt.Errorf("lookupRepo.ListTaxTypes: %w", err)
	}
	return types, nil
}

func (r *lookupRepo) ListUnitsOfMeasure(ctx context.Context) ([]domain.UnitOfMeasure, error) {
	var units []domain.UnitOfMeasure
	err := r.db.SelectContext(ctx, &units, "SELECT * FROM units_of_measure ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("lookupRepo.ListUnitsOfMeasure: %w", err)
	}
	return units, nil
}
