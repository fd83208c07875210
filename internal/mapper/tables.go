package mapper

import (
	"strings"

	"github.com/shopspring/decimal"

	"escibridge/internal/domain"
)

type taxKey struct {
	scheme   string
	category string
}

// TaxTable resolves a document tax scheme/category pair to the practice's
// tax rate. Lookups are case-insensitive on both components.
type TaxTable struct {
	rates map[taxKey]decimal.Decimal
}

// NewTaxTable builds a table from the configured tax types.
func NewTaxTable(types []domain.TaxType) *TaxTable {
	rates := make(map[taxKey]decimal.Decimal, len(types))
	for _, t := range types {
		rates[taxKey{strings.ToUpper(t.Scheme), strings.ToUpper(t.Category)}] = t.Rate
	}
	return &TaxTable{rates: rates}
}

// Rate returns the rate for a scheme/category pair.
func (t *TaxTable) Rate(scheme, category string) (decimal.Decimal, bool) {
	rate, ok := t.rates[taxKey{strings.ToUpper(scheme), strings.ToUpper(category)}]
	return rate, ok
}

// UnitTable resolves UN/CEFACT unit codes to the practice's package unit
// names. Unknown codes resolve to the empty string; the delivery still
// records the quantity.
type UnitTable struct {
	names map[string]string
}

// NewUnitTable builds a table from the configured units of measure.
func NewUnitTable(units []domain.UnitOfMeasure) *UnitTable {
	names := make(map[string]string, len(units))
	for _, u := range units {
		names[strings.ToUpper(u.Code)] = u.Name
	}
	return &UnitTable{names: names}
}

// Name returns the package unit name for a unit code.
func (t *UnitTable) Name(code string) string {
	return t.names[strings.ToUpper(code)]
}
