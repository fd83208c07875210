package mapper

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escibridge/internal/domain"
)

func TestTaxTableLookupIsCaseInsensitive(t *testing.T) {
	table := NewTaxTable([]domain.TaxType{
		{Scheme: "GST", Category: "S", Rate: decimal.NewFromInt(10)},
	})

	rate, ok := table.Rate("gst", "s")
	require.True(t, ok)
	assert.Equal(t, "10", rate.String())

	_, ok = table.Rate("GST", "X")
	assert.False(t, ok)
}

func TestUnitTableUnknownCode(t *testing.T) {
	table := NewUnitTable([]domain.UnitOfMeasure{{Code: "EA", Name: "Each"}})

	assert.Equal(t, "Each", table.Name("ea"))
	assert.Empty(t, table.Name("ZZ"))
}
