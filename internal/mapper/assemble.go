package mapper

import (
	"github.com/shopspring/decimal"

	"escibridge/internal/domain"
)

// resolveAuthor picks the delivery's responsible user: the order's author
// when an order was resolved and has one, otherwise the stock location's
// default author, otherwise none.
func (m *Mapper) resolveAuthor(mc *docContext) *int64 {
	if mc.order != nil && mc.order.AuthorID != nil {
		id := *mc.order.AuthorID
		return &id
	}
	if mc.stockLocation.DefaultAuthorID != nil {
		id := *mc.stockLocation.DefaultAuthorID
		return &id
	}
	return nil
}

// assemble builds the Delivery aggregate from fully validated, resolved
// state: one header plus one item per invoice line and one per accepted
// charge. No validation happens here; an inconsistency at this point is a
// defect in an earlier stage.
func (m *Mapper) assemble(mc *docContext, existing *domain.Delivery) *domain.Delivery {
	delivery := &domain.Delivery{
		SupplierID:        mc.supplier.ID,
		StockLocationID:   mc.stockLocation.ID,
		SupplierInvoiceID: mc.docID,
		IssueDate:         mc.issueDate,
		Notes:             mc.notes,
		Total:             mc.payable,
		Tax:               mc.declaredTax,
		AuthorID:          m.resolveAuthor(mc),
	}
	if existing != nil {
		delivery.ID = existing.ID
		delivery.CreatedAt = existing.CreatedAt
	}
	if mc.order != nil {
		id := mc.order.ID
		delivery.OrderID = &id
	}

	delivery.Items = make([]domain.DeliveryItem, 0, len(mc.lines)+len(mc.charges))
	for i := range mc.lines {
		lc := &mc.lines[i]
		item := domain.DeliveryItem{
			SupplierInvoiceLineID: lc.id,
			Quantity:              lc.quantity,
			ListPrice:             lc.listPrice,
			UnitPrice:             lc.unitPrice,
			PackageUnits:          lc.packageUnits,
			ReorderCode:           lc.reorderCode,
			ReorderDescription:    lc.reorderDescription,
			OrderItemID:           lc.orderItemID,
			Total:                 lc.lineExtension.Add(lc.tax),
			Tax:                   lc.tax,
		}
		if lc.product != nil {
			id := lc.product.ID
			item.ProductID = &id
		}
		delivery.Items = append(delivery.Items, item)
	}

	// Charges become product-less items: quantity 1, the charge amount as
	// unit price, the charge reason as description.
	for _, cc := range mc.charges {
		delivery.Items = append(delivery.Items, domain.DeliveryItem{
			Quantity:           decimal.NewFromInt(1),
			ListPrice:          cc.amount,
			UnitPrice:          cc.amount,
			ReorderDescription: cc.reason,
			Total:              cc.amount.Add(cc.tax),
			Tax:                cc.tax,
		})
	}
	return delivery
}
