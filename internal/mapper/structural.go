package mapper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"escibridge/internal/ubl"
)

const (
	issueDateLayout = "2006-01-02"
	issueTimeLayout = "15:04:05"
)

// checkStructure verifies presence and cardinality of every required
// document element, extracts the document id, issue timestamp and notes,
// and seeds the per-line working state. It is a pure check against the
// document; nothing is resolved yet.
func (m *Mapper) checkStructure(_ context.Context, mc *docContext) error {
	doc := mc.doc

	// The document id comes first so every later failure can reference it.
	if doc.ID == nil || *doc.ID == "" {
		return errElementRequired("", "ID")
	}
	mc.docID = *doc.ID

	if doc.UBLVersionID == nil || *doc.UBLVersionID == "" {
		return errElementRequired(mc.docID, "UBLVersionID")
	}
	if *doc.UBLVersionID != ubl.Version {
		return errInvalidValue(mc.docID, "UBLVersionID", *doc.UBLVersionID)
	}

	if doc.IssueDate == nil || *doc.IssueDate == "" {
		return errElementRequired(mc.docID, "IssueDate")
	}
	issued, err := time.Parse(issueDateLayout, *doc.IssueDate)
	if err != nil {
		return errInvalidValue(mc.docID, "IssueDate", *doc.IssueDate)
	}
	if doc.IssueTime != nil && *doc.IssueTime != "" {
		t, err := time.Parse(issueTimeLayout, *doc.IssueTime)
		if err != nil {
			return errInvalidValue(mc.docID, "IssueTime", *doc.IssueTime)
		}
		issued = issued.Add(time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second)
	}
	mc.issueDate = issued
	mc.notes = strings.Join(doc.Notes, "\n")

	if doc.AccountingSupplierParty == nil {
		return errElementRequired(mc.docID, "AccountingSupplierParty")
	}
	if doc.AccountingCustomerParty == nil {
		return errElementRequired(mc.docID, "AccountingCustomerParty")
	}
	if doc.LegalMonetaryTotal == nil {
		return errElementRequired(mc.docID, "LegalMonetaryTotal")
	}
	if doc.LegalMonetaryTotal.PayableAmount == nil {
		return errElementRequired(mc.docID, "LegalMonetaryTotal/PayableAmount")
	}

	if len(doc.TaxTotals) != 1 {
		return errInvalidCardinality(mc.docID, "TaxTotal", "1", len(doc.TaxTotals))
	}
	if doc.TaxTotals[0].TaxAmount == nil {
		return errElementRequired(mc.docID, "TaxTotal/TaxAmount")
	}

	for i := range doc.AllowanceCharges {
		path := fmt.Sprintf("AllowanceCharge[%d]", i+1)
		charge := &doc.AllowanceCharges[i]
		if charge.ChargeIndicator == nil {
			return errElementRequired(mc.docID, path+"/ChargeIndicator")
		}
		if charge.Amount == nil {
			return errElementRequired(mc.docID, path+"/Amount")
		}
		if len(charge.TaxTotals) > 1 {
			return errInvalidCardinality(mc.docID, path+"/TaxTotal", "0..1", len(charge.TaxTotals))
		}
		if len(charge.TaxTotals) == 1 {
			if err := m.checkTaxStructure(mc, &charge.TaxTotals[0], path+"/TaxTotal", 0); err != nil {
				return err
			}
		}
	}

	if len(doc.InvoiceLines) == 0 {
		return errInvalidCardinality(mc.docID, "InvoiceLine", "1..*", 0)
	}
	mc.lines = make([]lineContext, 0, len(doc.InvoiceLines))
	for i := range doc.InvoiceLines {
		line := &doc.InvoiceLines[i]
		idx := i + 1
		if err := m.checkLineStructure(mc, line, idx); err != nil {
			return err
		}
		mc.lines = append(mc.lines, lineContext{src: line, index: idx, id: *line.ID})
	}
	return nil
}

func (m *Mapper) checkLineStructure(mc *docContext, line *ubl.InvoiceLine, idx int) error {
	if line.ID == nil || *line.ID == "" {
		return errElementRequired(mc.docID, "InvoiceLine/ID").at(idx)
	}
	if line.InvoicedQuantity == nil {
		return errElementRequired(mc.docID, "InvoiceLine/InvoicedQuantity").at(idx)
	}
	if line.LineExtensionAmount == nil {
		return errElementRequired(mc.docID, "InvoiceLine/LineExtensionAmount").at(idx)
	}
	if line.Item == nil {
		return errElementRequired(mc.docID, "InvoiceLine/Item").at(idx)
	}
	if line.Price == nil || line.Price.PriceAmount == nil {
		return errElementRequired(mc.docID, "InvoiceLine/Price/PriceAmount").at(idx)
	}
	if len(line.OrderLineReferences) > 1 {
		return errInvalidCardinality(mc.docID, "InvoiceLine/OrderLineReference", "0..1", len(line.OrderLineReferences)).at(idx)
	}

	// A line may omit tax entirely; when present the breakdown has exactly
	// one subtotal with a fully identified category.
	if len(line.TaxTotals) > 1 {
		return errInvalidCardinality(mc.docID, "InvoiceLine/TaxTotal", "0..1", len(line.TaxTotals)).at(idx)
	}
	if len(line.TaxTotals) == 1 {
		if err := m.checkTaxStructure(mc, &line.TaxTotals[0], "InvoiceLine/TaxTotal", idx); err != nil {
			return err
		}
	}
	return nil
}

// checkTaxStructure validates the shape of a tax total carried by a line or
// a charge.
func (m *Mapper) checkTaxStructure(mc *docContext, tt *ubl.TaxTotal, path string, idx int) error {
	if tt.TaxAmount == nil {
		return errElementRequired(mc.docID, path+"/TaxAmount").at(idx)
	}
	if len(tt.TaxSubtotals) != 1 {
		return errInvalidCardinality(mc.docID, path+"/TaxSubtotal", "1", len(tt.TaxSubtotals)).at(idx)
	}
	sub := &tt.TaxSubtotals[0]
	if sub.TaxAmount == nil {
		return errElementRequired(mc.docID, path+"/TaxSubtotal/TaxAmount").at(idx)
	}
	cat := sub.TaxCategory
	if cat == nil || cat.ID == nil || *cat.ID == "" {
		return errElementRequired(mc.docID, path+"/TaxSubtotal/TaxCategory/ID").at(idx)
	}
	if cat.TaxScheme == nil || cat.TaxScheme.TaxTypeCode == nil || *cat.TaxScheme.TaxTypeCode == "" {
		return errElementRequired(mc.docID, path+"/TaxSubtotal/TaxCategory/TaxScheme/TaxTypeCode").at(idx)
	}
	return nil
}
