package mapper

import (
	"context"
	"strconv"
)

// resolveParties checks that the parties named by the document are the
// parties the caller authenticated. The supplier and stock location blocks
// each identify themselves either by the practice-assigned numeric id or by
// the account id agreed in the supplier's e-invoicing configuration;
// exactly one of the two must be present.
func (m *Mapper) resolveParties(ctx context.Context, mc *docContext) error {
	sp := mc.doc.AccountingSupplierParty
	switch {
	case hasValue(sp.CustomerAssignedAccountID):
		const path = "AccountingSupplierParty/CustomerAssignedAccountID"
		value := *sp.CustomerAssignedAccountID
		id, perr := parseID(mc.docID, path, value)
		if perr != nil {
			return perr
		}
		supplier, err := m.suppliers.FindByID(ctx, id)
		if err != nil {
			return errFailedToProcess(mc.docID, err)
		}
		if supplier == nil {
			return errInvalidSupplier(mc.docID, path, value)
		}
		if supplier.ID != mc.supplier.ID {
			return errSupplierMismatch(mc.docID, path, value, mc.supplier.ID)
		}
	case hasValue(sp.AdditionalAccountID):
		const path = "AccountingSupplierParty/AdditionalAccountID"
		value := *sp.AdditionalAccountID
		if mc.supplier.ESCIAccountID == "" || value != mc.supplier.ESCIAccountID {
			return errSupplierMismatch(mc.docID, path, value, mc.supplier.ID)
		}
	default:
		return errElementRequired(mc.docID, "AccountingSupplierParty/CustomerAssignedAccountID or AdditionalAccountID")
	}

	cp := mc.doc.AccountingCustomerParty
	switch {
	case hasValue(cp.CustomerAssignedAccountID):
		const path = "AccountingCustomerParty/CustomerAssignedAccountID"
		value := *cp.CustomerAssignedAccountID
		id, perr := parseID(mc.docID, path, value)
		if perr != nil {
			return perr
		}
		loc, err := m.stockLocations.FindByID(ctx, id)
		if err != nil {
			return errFailedToProcess(mc.docID, err)
		}
		if loc == nil {
			return errInvalidStockLocation(mc.docID, path, value)
		}
		if loc.ID != mc.stockLocation.ID {
			return errStockLocationMismatch(mc.docID, path, value, mc.stockLocation.ID)
		}
	case hasValue(cp.SupplierAssignedAccountID):
		const path = "AccountingCustomerParty/SupplierAssignedAccountID"
		value := *cp.SupplierAssignedAccountID
		if mc.supplier.ESCIAccountID == "" || value != mc.supplier.ESCIAccountID {
			return errStockLocationMismatch(mc.docID, path, value, mc.stockLocation.ID)
		}
	default:
		return errElementRequired(mc.docID, "AccountingCustomerParty/CustomerAssignedAccountID or SupplierAssignedAccountID")
	}
	return nil
}

// resolveProducts resolves each line's item identification to a catalog
// product. The buyer's identifier wins over the seller's. A present but
// unresolvable identifier is not fatal: the line degrades to a
// re-order-code-only line so supplier-only SKUs such as freight still map.
// Only a line with no identification at all is rejected.
func (m *Mapper) resolveProducts(ctx context.Context, mc *docContext) error {
	for i := range mc.lines {
		lc := &mc.lines[i]
		item := lc.src.Item

		if item.Name != nil {
			lc.reorderDescription = *item.Name
		}
		sellersID := ""
		if item.SellersItemIdentification != nil && hasValue(item.SellersItemIdentification.ID) {
			sellersID = *item.SellersItemIdentification.ID
			lc.reorderCode = sellersID
		}
		buyersID := ""
		if item.BuyersItemIdentification != nil && hasValue(item.BuyersItemIdentification.ID) {
			buyersID = *item.BuyersItemIdentification.ID
		}
		if buyersID == "" && sellersID == "" {
			return errNoProduct(mc.docID, lc.index)
		}

		if buyersID != "" {
			id, perr := parseID(mc.docID, "InvoiceLine/Item/BuyersItemIdentification/ID", buyersID)
			if perr != nil {
				return perr.at(lc.index)
			}
			product, err := m.products.FindByID(ctx, id)
			if err != nil {
				return errFailedToProcess(mc.docID, err)
			}
			lc.product = product
		}
		if lc.product == nil && sellersID != "" {
			product, err := m.products.FindByReorderCode(ctx, mc.supplier.ID, sellersID)
			if err != nil {
				return errFailedToProcess(mc.docID, err)
			}
			lc.product = product
		}
	}
	return nil
}

// parseID parses an identifier carried as a positive numeric string.
func parseID(docID, path, value string) (int64, *Error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidIdentifier(docID, path, value)
	}
	return id, nil
}

func hasValue(s *string) bool {
	return s != nil && *s != ""
}
