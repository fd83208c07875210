package service

import (
	"context"
	"fmt"
	"io"

	"escibridge/internal/csvexport"
	"escibridge/internal/domain"
	"escibridge/internal/port"
)

const defaultListLimit = 50

// DeliveryService exposes a supplier's own deliveries.
type DeliveryService interface {
	Get(ctx context.Context, supplierID, id int64) (*domain.Delivery, error)
	List(ctx context.Context, supplierID int64, limit, offset int) ([]domain.Delivery, error)
	ExportCSV(ctx context.Context, supplierID int64, w io.Writer) error
}

type deliveryService struct {
	deliveries port.DeliveryRepository
}

// NewDeliveryService creates a new DeliveryService.
func NewDeliveryService(deliveries port.DeliveryRepository) DeliveryService {
	return &deliveryService{deliveries: deliveries}
}

func (s *deliveryService) Get(ctx context.Context, supplierID, id int64) (*domain.Delivery, error) {
	delivery, err := s.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// A supplier only ever sees its own deliveries.
	if delivery.SupplierID != supplierID {
		return nil, domain.ErrNotFound
	}
	return delivery, nil
}

func (s *deliveryService) List(ctx context.Context, supplierID int64, limit, offset int) ([]domain.Delivery, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	deliveries, err := s.deliveries.List(ctx, supplierID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("deliveryService.List: %w", err)
	}
	return deliveries, nil
}

func (s *deliveryService) ExportCSV(ctx context.Context, supplierID int64, w io.Writer) error {
	deliveries, err := s.deliveries.List(ctx, supplierID, 500, 0)
	if err != nil {
		return fmt.Errorf("deliveryService.ExportCSV: %w", err)
	}
	return csvexport.WriteDeliveries(w, deliveries)
}
