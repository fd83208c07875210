package mapper

import "context"

// checkDuplicate rejects invoices already processed. The same invoice id
// may legitimately recur across unrelated, unordered deliveries over time,
// but never against the same order, so the with-order and no-order cases
// are checked separately.
//
// The check covers duplicates visible at call time; the storage layer's
// unique indexes close the race against a concurrent submission.
func (m *Mapper) checkDuplicate(ctx context.Context, mc *docContext) error {
	if mc.order != nil {
		existing, err := m.deliveries.FindByOrderInvoice(ctx, mc.order.ID, mc.docID)
		if err != nil {
			return errFailedToProcess(mc.docID, err)
		}
		if existing != nil {
			return errDuplicateInvoiceForOrder(mc.docID, mc.order.ID, existing.ID)
		}
		return nil
	}

	existing, err := m.deliveries.FindBySupplierInvoice(ctx, mc.supplier.ID, mc.docID)
	if err != nil {
		return errFailedToProcess(mc.docID, err)
	}
	if existing != nil {
		return errDuplicateInvoice(mc.docID, mc.supplier.ID, existing.ID)
	}
	return nil
}
