package mapper

import (
	"context"

	"escibridge/internal/domain"
)

// linkOrder resolves the document-level order reference and matches each
// line's order-line reference to a line of that order. The referenced order
// must belong to the submitting supplier. A line referencing an order line
// when the document references no order is a cardinality violation.
func (m *Mapper) linkOrder(ctx context.Context, mc *docContext) error {
	if ref := mc.doc.OrderReference; ref != nil {
		if !hasValue(ref.ID) {
			return errElementRequired(mc.docID, "OrderReference/ID")
		}
		value := *ref.ID
		id, perr := parseID(mc.docID, "OrderReference/ID", value)
		if perr != nil {
			return perr
		}
		order, err := m.orders.FindByID(ctx, id)
		if err != nil {
			return errFailedToProcess(mc.docID, err)
		}
		if order == nil || order.SupplierID != mc.supplier.ID {
			return errInvalidOrder(mc.docID, value)
		}
		mc.order = order

		items, err := m.orders.ListItems(ctx, order.ID)
		if err != nil {
			return errFailedToProcess(mc.docID, err)
		}
		mc.orderItems = make(map[int64]domain.OrderItem, len(items))
		for _, item := range items {
			mc.orderItems[item.ID] = item
		}
	}

	for i := range mc.lines {
		lc := &mc.lines[i]
		refs := lc.src.OrderLineReferences
		if len(refs) == 0 {
			continue
		}
		if mc.order == nil {
			return errInvalidCardinality(mc.docID, "InvoiceLine/OrderLineReference", "0", len(refs)).at(lc.index)
		}
		ref := &refs[0]
		if !hasValue(ref.LineID) {
			return errElementRequired(mc.docID, "InvoiceLine/OrderLineReference/LineID").at(lc.index)
		}
		lineID, perr := parseID(mc.docID, "InvoiceLine/OrderLineReference/LineID", *ref.LineID)
		if perr != nil {
			return perr.at(lc.index)
		}
		item, ok := mc.orderItems[lineID]
		if !ok {
			return errInvalidOrderLine(mc.docID, lc.index, *ref.LineID, mc.order.ID)
		}
		id := item.ID
		lc.orderItemID = &id
	}
	return nil
}
