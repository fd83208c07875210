package mapper

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"escibridge/internal/ubl"
)

// taxScale is the decimal scale tax amounts are rounded to before
// comparison.
const taxScale = 2

var hundred = decimal.NewFromInt(100)

// reconcileAmounts recomputes every aggregate from its parts and compares
// it to the declared value, using exact decimal arithmetic. Monetary
// elements must carry the practice currency; amounts and quantities must
// not be negative.
func (m *Mapper) reconcileAmounts(_ context.Context, mc *docContext) error {
	lineTotal := decimal.Zero
	taxTotal := decimal.Zero
	for i := range mc.lines {
		lc := &mc.lines[i]
		if err := m.reconcileLine(mc, lc); err != nil {
			return err
		}
		lineTotal = lineTotal.Add(lc.lineExtension)
		taxTotal = taxTotal.Add(lc.tax)
	}

	chargeTotal := decimal.Zero
	for i := range mc.doc.AllowanceCharges {
		cc, err := m.reconcileCharge(mc, &mc.doc.AllowanceCharges[i], i+1)
		if err != nil {
			return err
		}
		mc.charges = append(mc.charges, *cc)
		chargeTotal = chargeTotal.Add(cc.amount)
		taxTotal = taxTotal.Add(cc.tax)
	}

	totals := mc.doc.LegalMonetaryTotal

	declaredCharges := decimal.Zero
	if totals.ChargeTotalAmount != nil {
		var err error
		declaredCharges, err = m.amount(mc, totals.ChargeTotalAmount, "LegalMonetaryTotal/ChargeTotalAmount", 0)
		if err != nil {
			return err
		}
	}
	if !chargeTotal.Equal(declaredCharges) {
		return errChargeTotalMismatch(mc.docID, chargeTotal.String(), declaredCharges.String())
	}

	if totals.LineExtensionAmount != nil {
		declared, err := m.amount(mc, totals.LineExtensionAmount, "LegalMonetaryTotal/LineExtensionAmount", 0)
		if err != nil {
			return err
		}
		if !lineTotal.Equal(declared) {
			return errLineExtensionTotal(mc.docID, lineTotal.String(), declared.String())
		}
	}

	taxExclusive := lineTotal.Add(chargeTotal)
	if totals.TaxExclusiveAmount != nil {
		declared, err := m.amount(mc, totals.TaxExclusiveAmount, "LegalMonetaryTotal/TaxExclusiveAmount", 0)
		if err != nil {
			return err
		}
		if !taxExclusive.Equal(declared) {
			return errTaxExclusiveMismatch(mc.docID, taxExclusive.String(), declared.String())
		}
	}

	declaredTax, err := m.amount(mc, mc.doc.TaxTotals[0].TaxAmount, "TaxTotal/TaxAmount", 0)
	if err != nil {
		return err
	}
	if !taxTotal.Equal(declaredTax) {
		return errTaxMismatch(mc.docID, taxTotal.String(), declaredTax.String())
	}

	if totals.TaxInclusiveAmount != nil {
		declared, err := m.amount(mc, totals.TaxInclusiveAmount, "LegalMonetaryTotal/TaxInclusiveAmount", 0)
		if err != nil {
			return err
		}
		if !taxExclusive.Add(declaredTax).Equal(declared) {
			return errInvalidValue(mc.docID, "LegalMonetaryTotal/TaxInclusiveAmount", declared.String())
		}
	}

	payable, err := m.amount(mc, totals.PayableAmount, "LegalMonetaryTotal/PayableAmount", 0)
	if err != nil {
		return err
	}
	calculated := taxExclusive.Add(declaredTax)
	if !calculated.Equal(payable) {
		return errPayableMismatch(mc.docID, calculated.String(), payable.String())
	}

	mc.payable = payable
	mc.declaredTax = declaredTax
	return nil
}

// reconcileLine extracts and verifies a single line: quantity, prices, the
// price × quantity identity, unit code consistency, and the tax breakdown.
func (m *Mapper) reconcileLine(mc *docContext, lc *lineContext) error {
	line := lc.src
	idx := lc.index

	qty, err := m.quantity(mc, line.InvoicedQuantity, "InvoiceLine/InvoicedQuantity", idx)
	if err != nil {
		return err
	}
	lc.quantity = qty
	lc.unitCode = line.InvoicedQuantity.UnitCode
	lc.packageUnits = m.units.Name(lc.unitCode)

	price, err := m.amount(mc, line.Price.PriceAmount, "InvoiceLine/Price/PriceAmount", idx)
	if err != nil {
		return err
	}
	lc.unitPrice = price

	if base := line.Price.BaseQuantity; base != nil {
		if _, err := m.quantity(mc, base, "InvoiceLine/Price/BaseQuantity", idx); err != nil {
			return err
		}
		if base.UnitCode != "" && lc.unitCode != "" && base.UnitCode != lc.unitCode {
			return errUnitCodeMismatch(mc.docID, idx, base.UnitCode, lc.unitCode)
		}
	}

	lc.listPrice, err = m.wholesalePrice(mc, line, idx)
	if err != nil {
		return err
	}
	if lc.listPrice.IsZero() {
		lc.listPrice = price
	}

	lineExtension, err := m.amount(mc, line.LineExtensionAmount, "InvoiceLine/LineExtensionAmount", idx)
	if err != nil {
		return err
	}
	expected := price.Mul(qty)
	if !expected.Equal(lineExtension) {
		return errLineExtensionMismatch(mc.docID, idx, expected.String(), lineExtension.String())
	}
	lc.lineExtension = lineExtension

	if len(line.TaxTotals) == 1 {
		tax, err := m.verifyTax(mc, &line.TaxTotals[0], "InvoiceLine/TaxTotal", lineExtension, idx)
		if err != nil {
			return err
		}
		lc.tax = tax
	} else {
		lc.tax = decimal.Zero
	}
	return nil
}

// wholesalePrice returns the alternative-condition price when one is
// supplied. Its type code must be the wholesale designator.
func (m *Mapper) wholesalePrice(mc *docContext, line *ubl.InvoiceLine, idx int) (decimal.Decimal, error) {
	if line.PricingReference == nil || len(line.PricingReference.AlternativeConditionPrices) == 0 {
		return decimal.Zero, nil
	}
	alt := &line.PricingReference.AlternativeConditionPrices[0]
	path := "InvoiceLine/PricingReference/AlternativeConditionPrice"
	if alt.PriceTypeCode == nil || *alt.PriceTypeCode != ubl.WholesalePriceType {
		code := ""
		if alt.PriceTypeCode != nil {
			code = *alt.PriceTypeCode
		}
		return decimal.Zero, errInvalidValue(mc.docID, path+"/PriceTypeCode", code).at(idx)
	}
	if alt.PriceAmount == nil {
		return decimal.Zero, errElementRequired(mc.docID, path+"/PriceAmount").at(idx)
	}
	return m.amount(mc, alt.PriceAmount, path+"/PriceAmount", idx)
}

// reconcileCharge validates a document-level charge. Allowances are
// rejected outright: the pipeline only supports additive charges such as
// freight.
func (m *Mapper) reconcileCharge(mc *docContext, charge *ubl.AllowanceCharge, n int) (*chargeContext, error) {
	if !*charge.ChargeIndicator {
		return nil, errAllowanceNotSupported(mc.docID)
	}
	path := fmt.Sprintf("AllowanceCharge[%d]", n)
	amount, err := m.amount(mc, charge.Amount, path+"/Amount", 0)
	if err != nil {
		return nil, err
	}
	cc := &chargeContext{amount: amount}
	if charge.AllowanceChargeReason != nil {
		cc.reason = *charge.AllowanceChargeReason
	}
	if len(charge.TaxTotals) == 1 {
		tax, err := m.verifyTax(mc, &charge.TaxTotals[0], path+"/TaxTotal", amount, 0)
		if err != nil {
			return nil, err
		}
		cc.tax = tax
	}
	return cc, nil
}

// verifyTax checks a tax total against its single subtotal: the amounts
// must agree, the category/scheme pair must map to a known tax type, the
// declared percentage (when given) must match that type's rate, and for a
// non-zero tax the taxable amount at that rate must reproduce the declared
// tax at the domain scale.
func (m *Mapper) verifyTax(mc *docContext, tt *ubl.TaxTotal, path string, taxable decimal.Decimal, idx int) (decimal.Decimal, error) {
	tax, err := m.amount(mc, tt.TaxAmount, path+"/TaxAmount", idx)
	if err != nil {
		return decimal.Zero, err
	}
	sub := &tt.TaxSubtotals[0]
	subTax, err := m.amount(mc, sub.TaxAmount, path+"/TaxSubtotal/TaxAmount", idx)
	if err != nil {
		return decimal.Zero, err
	}
	if !tax.Equal(subTax) {
		return decimal.Zero, errInvalidValue(mc.docID, path+"/TaxSubtotal/TaxAmount", subTax.String()).at(idx)
	}

	cat := sub.TaxCategory
	scheme := *cat.TaxScheme.TaxTypeCode
	category := *cat.ID
	rate, ok := m.taxTypes.Rate(scheme, category)
	if !ok {
		return decimal.Zero, errInvalidTaxType(mc.docID, path+"/TaxSubtotal/TaxCategory", scheme, category).at(idx)
	}
	if cat.Percent != nil && !cat.Percent.Equal(rate) {
		return decimal.Zero, errInvalidValue(mc.docID, path+"/TaxSubtotal/TaxCategory/Percent", cat.Percent.String()).at(idx)
	}

	if !tax.IsZero() {
		calculated := taxable.Mul(rate).Div(hundred).Round(taxScale)
		if !calculated.Equal(tax.Round(taxScale)) {
			if idx > 0 {
				return decimal.Zero, errLineTaxMismatch(mc.docID, idx, calculated.String(), tax.String())
			}
			return decimal.Zero, errTaxMismatch(mc.docID, calculated.String(), tax.String())
		}
	}
	return tax, nil
}
