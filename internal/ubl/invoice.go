// Package ubl holds the decoded UBL 2.0 invoice document model consumed by
// the mapper. Only the elements the mapper reads are represented; the wire
// codec that produces these values is out of scope.
package ubl

import "github.com/shopspring/decimal"

// Version is the only UBL version the mapper accepts.
const Version = "2.0"

// WholesalePriceType is the PriceTypeCode identifying a wholesale
// (list) price in a PricingReference.
const WholesalePriceType = "WS"

// Invoice is a decoded UBL invoice document.
type Invoice struct {
	UBLVersionID *string `json:"ubl_version_id,omitempty"`
	ID           *string `json:"id,omitempty"`
	IssueDate    *string `json:"issue_date,omitempty"`
	IssueTime    *string `json:"issue_time,omitempty"`

	Notes []string `json:"note,omitempty"`

	AccountingSupplierParty *SupplierParty `json:"accounting_supplier_party,omitempty"`
	AccountingCustomerParty *CustomerParty `json:"accounting_customer_party,omitempty"`

	OrderReference     *OrderReference   `json:"order_reference,omitempty"`
	LegalMonetaryTotal *MonetaryTotal    `json:"legal_monetary_total,omitempty"`
	TaxTotals          []TaxTotal        `json:"tax_total,omitempty"`
	AllowanceCharges   []AllowanceCharge `json:"allowance_charge,omitempty"`
	InvoiceLines       []InvoiceLine     `json:"invoice_line,omitempty"`
}

// SupplierParty identifies the invoicing supplier. CustomerAssignedAccountID
// is the id the practice assigned to the supplier; AdditionalAccountID is the
// supplier's own account id for the practice.
type SupplierParty struct {
	CustomerAssignedAccountID *string `json:"customer_assigned_account_id,omitempty"`
	AdditionalAccountID       *string `json:"additional_account_id,omitempty"`
}

// CustomerParty identifies the invoiced stock location.
type CustomerParty struct {
	CustomerAssignedAccountID *string `json:"customer_assigned_account_id,omitempty"`
	SupplierAssignedAccountID *string `json:"supplier_assigned_account_id,omitempty"`
}

// OrderReference points at the purchase order the invoice fulfils.
type OrderReference struct {
	ID *string `json:"id,omitempty"`
}

// MonetaryTotal carries the document totals.
type MonetaryTotal struct {
	LineExtensionAmount *Amount `json:"line_extension_amount,omitempty"`
	TaxExclusiveAmount  *Amount `json:"tax_exclusive_amount,omitempty"`
	TaxInclusiveAmount  *Amount `json:"tax_inclusive_amount,omitempty"`
	ChargeTotalAmount   *Amount `json:"charge_total_amount,omitempty"`
	PayableAmount       *Amount `json:"payable_amount,omitempty"`
}

// TaxTotal is a tax amount with its category breakdown.
type TaxTotal struct {
	TaxAmount    *Amount       `json:"tax_amount,omitempty"`
	TaxSubtotals []TaxSubtotal `json:"tax_subtotal,omitempty"`
}

// TaxSubtotal breaks a tax total down by category.
type TaxSubtotal struct {
	TaxableAmount *Amount      `json:"taxable_amount,omitempty"`
	TaxAmount     *Amount      `json:"tax_amount,omitempty"`
	TaxCategory   *TaxCategory `json:"tax_category,omitempty"`
}

// TaxCategory identifies a tax rate by scheme and category.
type TaxCategory struct {
	ID        *string          `json:"id,omitempty"`
	Percent   *decimal.Decimal `json:"percent,omitempty"`
	TaxScheme *TaxScheme       `json:"tax_scheme,omitempty"`
}

// TaxScheme identifies the taxation scheme via its type code.
type TaxScheme struct {
	TaxTypeCode *string `json:"tax_type_code,omitempty"`
}

// AllowanceCharge is a document-level charge (allowances are rejected).
type AllowanceCharge struct {
	ChargeIndicator       *bool      `json:"charge_indicator,omitempty"`
	AllowanceChargeReason *string    `json:"allowance_charge_reason,omitempty"`
	Amount                *Amount    `json:"amount,omitempty"`
	TaxTotals             []TaxTotal `json:"tax_total,omitempty"`
}

// InvoiceLine is a single invoiced line.
type InvoiceLine struct {
	ID                  *string              `json:"id,omitempty"`
	InvoicedQuantity    *Quantity            `json:"invoiced_quantity,omitempty"`
	LineExtensionAmount *Amount              `json:"line_extension_amount,omitempty"`
	OrderLineReferences []OrderLineReference `json:"order_line_reference,omitempty"`
	Item                *Item                `json:"item,omitempty"`
	Price               *Price               `json:"price,omitempty"`
	PricingReference    *PricingReference    `json:"pricing_reference,omitempty"`
	TaxTotals           []TaxTotal           `json:"tax_total,omitempty"`
}

// OrderLineReference points at a line of the referenced purchase order.
type OrderLineReference struct {
	LineID *string `json:"line_id,omitempty"`
}

// Item describes the invoiced product.
type Item struct {
	Name                      *string             `json:"name,omitempty"`
	BuyersItemIdentification  *ItemIdentification `json:"buyers_item_identification,omitempty"`
	SellersItemIdentification *ItemIdentification `json:"sellers_item_identification,omitempty"`
}

// ItemIdentification wraps an item identifier.
type ItemIdentification struct {
	ID *string `json:"id,omitempty"`
}

// Price is the unit price of a line, with an optional base quantity.
type Price struct {
	PriceAmount  *Amount   `json:"price_amount,omitempty"`
	BaseQuantity *Quantity `json:"base_quantity,omitempty"`
}

// PricingReference carries alternative prices, typically the wholesale price.
type PricingReference struct {
	AlternativeConditionPrices []AlternativePrice `json:"alternative_condition_price,omitempty"`
}

// AlternativePrice is a price qualified by a type code.
type AlternativePrice struct {
	PriceAmount   *Amount `json:"price_amount,omitempty"`
	PriceTypeCode *string `json:"price_type_code,omitempty"`
}

// Amount is a monetary value tagged with its currency.
type Amount struct {
	Value      decimal.Decimal `json:"value"`
	CurrencyID string          `json:"currency_id"`
}

// Quantity is a decimal quantity tagged with a UN/CEFACT unit code.
type Quantity struct {
	Value    decimal.Decimal `json:"value"`
	UnitCode string          `json:"unit_code,omitempty"`
}
