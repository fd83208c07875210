package service

import (
	"context"
	"errors"

	"escibridge/internal/domain"
	"escibridge/internal/port"
)

type stubSuppliers struct {
	supplier *domain.Supplier
	linked   bool
	err      error
}

func (s *stubSuppliers) FindByID(_ context.Context, id int64) (*domain.Supplier, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.supplier != nil && s.supplier.ID == id {
		return s.supplier, nil
	}
	return nil, nil
}

func (s *stubSuppliers) HasESCIRelationship(context.Context, int64, int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.linked, nil
}

type stubStockLocations struct {
	loc *domain.StockLocation
	err error
}

func (s *stubStockLocations) FindByID(_ context.Context, id int64) (*domain.StockLocation, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.loc != nil && s.loc.ID == id {
		return s.loc, nil
	}
	return nil, nil
}

type stubProducts struct {
	product *domain.Product
}

func (s *stubProducts) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	if s.product != nil && s.product.ID == id {
		return s.product, nil
	}
	return nil, nil
}

func (s *stubProducts) FindByReorderCode(context.Context, int64, string) (*domain.Product, error) {
	return nil, nil
}

type stubOrders struct{}

func (stubOrders) FindByID(context.Context, int64) (*domain.Order, error) { return nil, nil }

func (stubOrders) ListItems(context.Context, int64) ([]domain.OrderItem, error) { return nil, nil }

type stubDeliveries struct {
	created    []*domain.Delivery
	getResult  *domain.Delivery
	listResult []domain.Delivery
	listLimits []int
	err        error
}

func (s *stubDeliveries) Create(_ context.Context, d *domain.Delivery) (*domain.Delivery, error) {
	if s.err != nil {
		return nil, s.err
	}
	d.ID = int64(len(s.created) + 101)
	s.created = append(s.created, d)
	return d, nil
}

func (s *stubDeliveries) GetByID(context.Context, int64) (*domain.Delivery, error) {
	if s.getResult == nil {
		return nil, domain.ErrNotFound
	}
	return s.getResult, nil
}

func (s *stubDeliveries) List(_ context.Context, _ int64, limit, _ int) ([]domain.Delivery, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.listLimits = append(s.listLimits, limit)
	return s.listResult, nil
}

func (s *stubDeliveries) FindBySupplierInvoice(context.Context, int64, string) (*domain.Delivery, error) {
	return nil, nil
}

func (s *stubDeliveries) FindByOrderInvoice(context.Context, int64, string) (*domain.Delivery, error) {
	return nil, nil
}

type stubStorage struct {
	uploads []port.UploadInput
	err     error
}

func (s *stubStorage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.uploads = append(s.uploads, input)
	return &port.UploadOutput{}, nil
}

func (s *stubStorage) Download(context.Context, string, string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

type stubEmail struct {
	sent []port.EmailMessage
	err  error
}

func (s *stubEmail) Send(_ context.Context, msg port.EmailMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}
