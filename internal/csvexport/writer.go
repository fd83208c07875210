// Package csvexport renders deliveries as CSV for spreadsheet import.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"escibridge/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first for Excel compatibility
// on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row, one row per delivery item.
var columns = []string{
	"Delivery ID",
	"Supplier ID",
	"Stock Location ID",
	"Supplier Invoice ID",
	"Issue Date",
	"Order ID",
	"Invoice Line ID",
	"Product ID",
	"Reorder Code",
	"Reorder Description",
	"Quantity",
	"Package Units",
	"List Price",
	"Unit Price",
	"Line Tax",
	"Line Total",
	"Delivery Tax",
	"Delivery Total",
	"Created At",
}

// Writer wraps csv.Writer for exporting deliveries as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDeliveries writes one row per delivery item.
func (w *Writer) WriteDeliveries(deliveries []domain.Delivery) error {
	for i := range deliveries {
		d := &deliveries[i]
		for j := range d.Items {
			if err := w.csv.Write(itemToRow(d, &d.Items[j])); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteDeliveries writes the BOM, header and all rows to w.
func WriteDeliveries(out io.Writer, deliveries []domain.Delivery) error {
	if _, err := out.Write(BOM); err != nil {
		return fmt.Errorf("csvexport: write BOM: %w", err)
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("csvexport: write header: %w", err)
	}
	if err := w.WriteDeliveries(deliveries); err != nil {
		return fmt.Errorf("csvexport: write rows: %w", err)
	}
	w.Flush()
	return w.Error()
}

func itemToRow(d *domain.Delivery, item *domain.DeliveryItem) []string {
	orderID := ""
	if d.OrderID != nil {
		orderID = strconv.FormatInt(*d.OrderID, 10)
	}
	productID := ""
	if item.ProductID != nil {
		productID = strconv.FormatInt(*item.ProductID, 10)
	}
	return []string{
		strconv.FormatInt(d.ID, 10),
		strconv.FormatInt(d.SupplierID, 10),
		strconv.FormatInt(d.StockLocationID, 10),
		d.SupplierInvoiceID,
		d.IssueDate.Format("2006-01-02"),
		orderID,
		item.SupplierInvoiceLineID,
		productID,
		item.ReorderCode,
		item.ReorderDescription,
		item.Quantity.String(),
		item.PackageUnits,
		item.ListPrice.String(),
		item.UnitPrice.String(),
		item.Tax.String(),
		item.Total.String(),
		d.Tax.String(),
		d.Total.String(),
		d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
