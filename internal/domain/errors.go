package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSupplierInactive   = errors.New("supplier is inactive")
	ErrESCINotConfigured  = errors.New("supplier has no e-invoicing relationship with the stock location")
	ErrDuplicateDelivery  = errors.New("delivery already exists for this supplier invoice")
)
