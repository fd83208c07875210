package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"escibridge/internal/domain"
	"escibridge/internal/mapper"
	"escibridge/internal/port"
	"escibridge/internal/ubl"
)

// InvoiceService runs the submission flow: archive the raw document, map it
// to a delivery, persist, and notify on rejection.
type InvoiceService interface {
	Submit(ctx context.Context, doc *ubl.Invoice, supplierID, stockLocationID int64) (*domain.Delivery, error)
}

type invoiceService struct {
	suppliers      port.SupplierRepository
	stockLocations port.StockLocationRepository
	deliveries     port.DeliveryRepository
	mapper         *mapper.Mapper
	storage        port.ObjectStorage
	email          port.EmailSender
	bucket         string
	contactEmail   string
	logger         zerolog.Logger
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	suppliers port.SupplierRepository,
	stockLocations port.StockLocationRepository,
	deliveries port.DeliveryRepository,
	m *mapper.Mapper,
	storage port.ObjectStorage,
	email port.EmailSender,
	bucket, contactEmail string,
	logger zerolog.Logger,
) InvoiceService {
	return &invoiceService{
		suppliers:      suppliers,
		stockLocations: stockLocations,
		deliveries:     deliveries,
		mapper:         m,
		storage:        storage,
		email:          email,
		bucket:         bucket,
		contactEmail:   contactEmail,
		logger:         logger,
	}
}

func (s *invoiceService) Submit(ctx context.Context, doc *ubl.Invoice, supplierID, stockLocationID int64) (*domain.Delivery, error) {
	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.Submit: %w", err)
	}
	if supplier == nil {
		return nil, domain.ErrUnauthorized
	}
	if !supplier.Active {
		return nil, domain.ErrSupplierInactive
	}
	loc, err := s.stockLocations.FindByID(ctx, stockLocationID)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.Submit: %w", err)
	}
	if loc == nil {
		return nil, domain.ErrUnauthorized
	}
	linked, err := s.suppliers.HasESCIRelationship(ctx, supplier.ID, loc.ID)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.Submit: %w", err)
	}
	if !linked {
		return nil, domain.ErrESCINotConfigured
	}

	// Archive the raw document before anything can reject it, so failed
	// submissions can be audited and compared with resubmissions. Archive
	// failures are logged, not fatal.
	key := s.archive(ctx, doc, supplier.ID)

	delivery, err := s.mapper.Map(ctx, doc, supplier, loc, nil)
	if err != nil {
		var mapErr *mapper.Error
		if errors.As(err, &mapErr) {
			s.logger.Warn().
				Str("code", string(mapErr.Code)).
				Str("invoice_id", mapErr.DocID).
				Int64("supplier_id", supplier.ID).
				Str("archive_key", key).
				Msg("invoice rejected")
			s.notifyRejection(ctx, supplier, mapErr)
		}
		return nil, err
	}

	persisted, err := s.deliveries.Create(ctx, delivery)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.Submit: %w", err)
	}
	s.logger.Info().
		Int64("delivery_id", persisted.ID).
		Int64("supplier_id", supplier.ID).
		Str("invoice_id", persisted.SupplierInvoiceID).
		Msg("invoice mapped to delivery")
	return persisted, nil
}

// archive stores the submitted document as JSON and returns the object key,
// or "" when archiving failed or no storage is configured.
func (s *invoiceService) archive(ctx context.Context, doc *ubl.Invoice, supplierID int64) string {
	if s.storage == nil {
		return ""
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		s.logger.Error().Err(err).Msg("archive: marshal invoice")
		return ""
	}
	key := fmt.Sprintf("invoices/%d/%s.json", supplierID, uuid.New())
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(raw),
		ContentType: "application/json",
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("archive: upload invoice")
		return ""
	}
	return key
}

// notifyRejection emails the practice contact about a rejected invoice.
// Best effort: a delivery failure is logged and otherwise ignored.
func (s *invoiceService) notifyRejection(ctx context.Context, supplier *domain.Supplier, mapErr *mapper.Error) {
	if s.email == nil || s.contactEmail == "" {
		return
	}
	msg := port.EmailMessage{
		To:      []string{s.contactEmail},
		Subject: fmt.Sprintf("Invoice %s from %s rejected (%s)", mapErr.DocID, supplier.Name, mapErr.Code),
		Body: fmt.Sprintf(
			"An electronic invoice submitted by %s (supplier %d) was rejected.\n\nCode: %s\nMessage: %s\n",
			supplier.Name, supplier.ID, mapErr.Code, mapErr.Message,
		),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("invoice_id", mapErr.DocID).Msg("send rejection notification")
	}
}
