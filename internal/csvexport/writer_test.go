package csvexport

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escibridge/internal/domain"
)

func TestWriteDeliveries(t *testing.T) {
	orderID := int64(7)
	productID := int64(100)
	deliveries := []domain.Delivery{{
		ID:                3,
		SupplierID:        1,
		StockLocationID:   2,
		SupplierInvoiceID: "INV-100",
		IssueDate:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Total:             decimal.RequireFromString("110"),
		Tax:               decimal.RequireFromString("10"),
		OrderID:           &orderID,
		CreatedAt:         time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC),
		Items: []domain.DeliveryItem{
			{
				SupplierInvoiceLineID: "1",
				Quantity:              decimal.NewFromInt(1),
				ListPrice:             decimal.RequireFromString("100"),
				UnitPrice:             decimal.RequireFromString("100"),
				PackageUnits:          "Each",
				ReorderCode:           "RC-1",
				ProductID:             &productID,
				Total:                 decimal.RequireFromString("110"),
				Tax:                   decimal.RequireFromString("10"),
			},
			{
				Quantity:           decimal.NewFromInt(1),
				ListPrice:          decimal.RequireFromString("10"),
				UnitPrice:          decimal.RequireFromString("10"),
				ReorderDescription: "Freight",
				Total:              decimal.RequireFromString("11"),
				Tax:                decimal.RequireFromString("1"),
			},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteDeliveries(&buf, deliveries))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, BOM), "output must start with the UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(out[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per item")

	header := records[0]
	assert.Equal(t, "Delivery ID", header[0])
	assert.Equal(t, "Created At", header[len(header)-1])

	row := records[1]
	require.Len(t, row, len(header))
	assert.Equal(t, "3", row[0])
	assert.Equal(t, "INV-100", row[3])
	assert.Equal(t, "2026-05-01", row[4])
	assert.Equal(t, "7", row[5])
	assert.Equal(t, "100", row[7])
	assert.Equal(t, "Each", row[11])
	assert.Equal(t, "110", row[15])

	charge := records[2]
	assert.Empty(t, charge[7], "charge rows have no product id")
	assert.Equal(t, "Freight", charge[9])
}

func TestWriteDeliveriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDeliveries(&buf, nil))

	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\n")
	assert.Len(t, lines, 1, "only the header is written")
}
