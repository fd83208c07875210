package mapper

import "fmt"

// Code classifies a mapping failure. Codes are stable: they appear in API
// responses, rejection notifications and logs.
//
// ESCI-01xx codes cover structural and identifier problems, ESCI-06xx cover
// business rule and reconciliation failures, ESCI-0700 wraps unexpected
// collaborator failures.
type Code string

const (
	CodeElementRequired    Code = "ESCI-0100"
	CodeInvalidCardinality Code = "ESCI-0101"
	CodeInvalidIdentifier  Code = "ESCI-0102"
	CodeInvalidValue       Code = "ESCI-0103"
	CodeInvalidAmount      Code = "ESCI-0104"
	CodeInvalidCurrency    Code = "ESCI-0105"
	CodeInvalidQuantity    Code = "ESCI-0106"
	CodeInvalidSupplier    Code = "ESCI-0107"
	CodeInvalidOrder       Code = "ESCI-0108"
	CodeInvalidTaxType     Code = "ESCI-0110"

	CodeInvalidStockLocation     Code = "ESCI-0600"
	CodeNoProduct                Code = "ESCI-0601"
	CodePayableMismatch          Code = "ESCI-0602"
	CodeLineExtensionTotal       Code = "ESCI-0603"
	CodeTaxMismatch              Code = "ESCI-0604"
	CodeLineExtensionMismatch    Code = "ESCI-0605"
	CodeInvalidOrderLine         Code = "ESCI-0606"
	CodeAllowanceNotSupported    Code = "ESCI-0607"
	CodeChargeTotalMismatch      Code = "ESCI-0608"
	CodeDuplicateInvoice         Code = "ESCI-0609"
	CodeTaxExclusiveMismatch     Code = "ESCI-0610"
	CodeDuplicateInvoiceForOrder Code = "ESCI-0611"
	CodeUnitCodeMismatch         Code = "ESCI-0612"

	CodeFailedToProcess Code = "ESCI-0700"
)

// Error is a classified invoice mapping failure. Exactly one is produced per
// rejected document; the pipeline stops at the first rule that fails.
type Error struct {
	Code    Code
	Message string

	// DocID is the supplier's invoice identifier, empty if the failure
	// precedes its extraction.
	DocID string

	// Path names the document element the failure relates to.
	Path string

	// Line is the 1-based invoice line index, 0 for document-level failures.
	Line int

	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Retryable reports whether resubmitting the same document could succeed.
// Only unexpected processing failures qualify.
func (e *Error) Retryable() bool {
	return e.Code == CodeFailedToProcess
}

// at marks the error as scoped to a 1-based invoice line.
func (e *Error) at(line int) *Error {
	e.Line = line
	return e
}

func errElementRequired(docID, path string) *Error {
	return &Error{
		Code:    CodeElementRequired,
		DocID:   docID,
		Path:    path,
		Message: fmt.Sprintf("Required element %s missing in invoice: %s", path, orUnknown(docID)),
	}
}

func errInvalidCardinality(docID, path, expected string, actual int) *Error {
	return &Error{
		Code:    CodeInvalidCardinality,
		DocID:   docID,
		Path:    path,
		Message: fmt.Sprintf("Expected %s occurrences of %s in invoice %s, but got %d", expected, path, orUnknown(docID), actual),
	}
}

func errInvalidIdentifier(docID, path, value string) *Error {
	return &Error{
		Code:    CodeInvalidIdentifier,
		DocID:   docID,
		Path:    path,
		Message: fmt.Sprintf("Invalid identifier '%s' for %s in invoice %s", value, path, orUnknown(docID)),
	}
}

func errInvalidValue(docID, path, value string) *Error {
	return &Error{
		Code:    CodeInvalidValue,
		DocID:   docID,
		Path:    path,
		Message: fmt.Sprintf("Invalid value '%s' for %s in invoice %s", value, path, orUnknown(docID)),
	}
}

func errInvalidAmount(docID, path, value string) *Error {
	return &Error{
		Code:    CodeInvalidAmount,
		DocID:   docID,
		Path:    path,
		Message: fmt.Sprintf("Invalid amount %s for %s in invoice %s: amounts must not be negative", value, path, orUnknown(docID)),
	}
}

func errInvalidCurrency(docID, path, currency, expected string) *Error {
	return &Error{
		Code:    CodeInvalidCurrency,
		DocID:   docID,
		Path:    path,
		Message: fmt.Sprintf("Invalid currency '%s' for %s in invoice %s: expected %s", currency, path, orUnknown(docID), expected),
	}
}

func errInvalidQuantity(docID, path, value string) *Error {
	return &Error{
		Code:    CodeInvalidQuantity,
		DocID:   docID,
		Path:    path,
		Message: fmt.Sprintf("Invalid quantity %s for %s in invoice %s: quantities must not be negative", value, path, orUnknown(docID)),
	}
}

func errInvalidSupplier(docID, path, value string) *Error {
	return &Error{
		Code:    CodeInvalidSupplier,
		DocID:   docID,
		Path:    path,
		Message: fmt.Sprintf("Invalid supplier '%s' referenced by %s in invoice %s", value, path, orUnknown(docID)),
	}
}

func errSupplierMismatch(docID, path, value string, submitterID int64) *Error {
	return &Error{
		Code:    CodeInvalidSupplier,
		DocID:   docID,
		Path:    path,
		Message: fmt.Sprintf("Supplier '%s' referenced by invoice %s does not match the submitting supplier (%d)", value, orUnknown(docID), submitterID),
	}
}

func errInvalidOrder(docID, value string) *Error {
	return &Error{
		Code:    CodeInvalidOrder,
		DocID:   docID,
		Path:    "OrderReference/ID",
		Message: fmt.Sprintf("Invalid order '%s' referenced by invoice %s", value, orUnknown(docID)),
	}
}

func errInvalidTaxType(docID, path, scheme, category string) *Error {
	return &Error{
		Code:    CodeInvalidTaxType,
		DocID:   docID,
		Path:    path,
		Message: fmt.Sprintf("Invalid tax scheme '%s' and category '%s' in invoice %s", scheme, category, orUnknown(docID)),
	}
}

func errInvalidStockLocation(docID, path, value string) *Error {
	return &Error{
		Code:    CodeInvalidStockLocation,
		DocID:   docID,
		Path:    path,
		Message: fmt.Sprintf("Invalid stock location '%s' referenced by %s in invoice %s", value, path, orUnknown(docID)),
	}
}

func errStockLocationMismatch(docID, path, value string, submitterID int64) *Error {
	return &Error{
		Code:    CodeInvalidStockLocation,
		DocID:   docID,
		Path:    path,
		Message: fmt.Sprintf("Stock location '%s' referenced by invoice %s does not match the submitting stock location (%d)", value, orUnknown(docID), submitterID),
	}
}

func errNoProduct(docID string, line int) *Error {
	return &Error{
		Code:    CodeNoProduct,
		DocID:   docID,
		Line:    line,
		Path:    "InvoiceLine/Item",
		Message: fmt.Sprintf("Invoice %s line %d has neither BuyersItemIdentification nor SellersItemIdentification", orUnknown(docID), line),
	}
}

func errPayableMismatch(docID, calculated, got string) *Error {
	return &Error{
		Code:    CodePayableMismatch,
		DocID:   docID,
		Path:    "LegalMonetaryTotal/PayableAmount",
		Message: fmt.Sprintf("Calculated payable amount: %s for invoice %s but got %s", calculated, orUnknown(docID), got),
	}
}

func errLineExtensionTotal(docID, calculated, got string) *Error {
	return &Error{
		Code:    CodeLineExtensionTotal,
		DocID:   docID,
		Path:    "LegalMonetaryTotal/LineExtensionAmount",
		Message: fmt.Sprintf("Sum of invoice line amounts: %s for invoice %s but LegalMonetaryTotal/LineExtensionAmount is %s", calculated, orUnknown(docID), got),
	}
}

func errTaxMismatch(docID, calculated, got string) *Error {
	return &Error{
		Code:    CodeTaxMismatch,
		DocID:   docID,
		Path:    "TaxTotal/TaxAmount",
		Message: fmt.Sprintf("Calculated tax: %s for invoice %s but TaxTotal/TaxAmount is %s", calculated, orUnknown(docID), got),
	}
}

func errLineTaxMismatch(docID string, line int, calculated, got string) *Error {
	return &Error{
		Code:    CodeTaxMismatch,
		DocID:   docID,
		Line:    line,
		Path:    "InvoiceLine/TaxTotal/TaxAmount",
		Message: fmt.Sprintf("Calculated tax: %s for invoice %s line %d but got %s", calculated, orUnknown(docID), line, got),
	}
}

func errLineExtensionMismatch(docID string, line int, calculated, got string) *Error {
	return &Error{
		Code:    CodeLineExtensionMismatch,
		DocID:   docID,
		Line:    line,
		Path:    "InvoiceLine/LineExtensionAmount",
		Message: fmt.Sprintf("Calculated line amount: %s for invoice %s line %d but got %s", calculated, orUnknown(docID), line, got),
	}
}

func errInvalidOrderLine(docID string, line int, lineID string, orderID int64) *Error {
	return &Error{
		Code:    CodeInvalidOrderLine,
		DocID:   docID,
		Line:    line,
		Path:    "InvoiceLine/OrderLineReference/LineID",
		Message: fmt.Sprintf("Invoice %s line %d references line '%s' which is not part of order %d", orUnknown(docID), line, lineID, orderID),
	}
}

func errAllowanceNotSupported(docID string) *Error {
	return &Error{
		Code:    CodeAllowanceNotSupported,
		DocID:   docID,
		Path:    "AllowanceCharge/ChargeIndicator",
		Message: fmt.Sprintf("Allowances are not supported: invoice %s", orUnknown(docID)),
	}
}

func errChargeTotalMismatch(docID, calculated, got string) *Error {
	return &Error{
		Code:    CodeChargeTotalMismatch,
		DocID:   docID,
		Path:    "LegalMonetaryTotal/ChargeTotalAmount",
		Message: fmt.Sprintf("Sum of charges: %s for invoice %s but ChargeTotalAmount is %s", calculated, orUnknown(docID), got),
	}
}

func errDuplicateInvoice(docID string, supplierID, deliveryID int64) *Error {
	return &Error{
		Code:    CodeDuplicateInvoice,
		DocID:   docID,
		Path:    "ID",
		Message: fmt.Sprintf("Duplicate invoice %s for supplier %d: already processed as delivery %d", orUnknown(docID), supplierID, deliveryID),
	}
}

func errTaxExclusiveMismatch(docID, calculated, got string) *Error {
	return &Error{
		Code:    CodeTaxExclusiveMismatch,
		DocID:   docID,
		Path:    "LegalMonetaryTotal/TaxExclusiveAmount",
		Message: fmt.Sprintf("Calculated tax-exclusive amount: %s for invoice %s but got %s", calculated, orUnknown(docID), got),
	}
}

func errDuplicateInvoiceForOrder(docID string, orderID, deliveryID int64) *Error {
	return &Error{
		Code:    CodeDuplicateInvoiceForOrder,
		DocID:   docID,
		Path:    "ID",
		Message: fmt.Sprintf("Duplicate invoice %s for order %d: already processed as delivery %d", orUnknown(docID), orderID, deliveryID),
	}
}

func errUnitCodeMismatch(docID string, line int, baseUnit, invoicedUnit string) *Error {
	return &Error{
		Code:    CodeUnitCodeMismatch,
		DocID:   docID,
		Line:    line,
		Path:    "InvoiceLine/Price/BaseQuantity",
		Message: fmt.Sprintf("Base quantity unit code '%s' for invoice %s line %d does not match invoiced quantity unit code '%s'", baseUnit, orUnknown(docID), line, invoicedUnit),
	}
}

func errFailedToProcess(docID string, cause error) *Error {
	return &Error{
		Code:    CodeFailedToProcess,
		DocID:   docID,
		Message: fmt.Sprintf("Failed to process invoice %s: %v", orUnknown(docID), cause),
		cause:   cause,
	}
}

func orUnknown(docID string) string {
	if docID == "" {
		return "<unknown>"
	}
	return docID
}
