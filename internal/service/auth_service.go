package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"escibridge/internal/config"
	"escibridge/internal/domain"
	"escibridge/internal/port"
)

// Claims are the JWT claims carried by a supplier token. The invoice
// endpoint trusts only these to identify the submitter; document content
// never does.
type Claims struct {
	SupplierID      int64 `json:"supplier_id"`
	StockLocationID int64 `json:"stock_location_id"`
	jwt.RegisteredClaims
}

// AuthService authenticates suppliers and issues/validates their tokens.
type AuthService interface {
	// IssueToken exchanges a supplier's e-invoicing API key for a token
	// scoped to one stock location.
	IssueToken(ctx context.Context, supplierID, stockLocationID int64, apiKey string) (string, time.Time, error)

	ValidateToken(token string) (*Claims, error)
}

type authService struct {
	suppliers      port.SupplierRepository
	stockLocations port.StockLocationRepository
	cfg            *config.JWTConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(suppliers port.SupplierRepository, stockLocations port.StockLocationRepository, cfg *config.JWTConfig) AuthService {
	return &authService{suppliers: suppliers, stockLocations: stockLocations, cfg: cfg}
}

func (s *authService) IssueToken(ctx context.Context, supplierID, stockLocationID int64, apiKey string) (string, time.Time, error) {
	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("authService.IssueToken: %w", err)
	}
	if supplier == nil || supplier.ESCIKeyHash == "" {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}
	if !supplier.Active {
		return "", time.Time{}, domain.ErrSupplierInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(supplier.ESCIKeyHash), []byte(apiKey)); err != nil {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	loc, err := s.stockLocations.FindByID(ctx, stockLocationID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("authService.IssueToken: %w", err)
	}
	if loc == nil {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}
	linked, err := s.suppliers.HasESCIRelationship(ctx, supplier.ID, loc.ID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("authService.IssueToken: %w", err)
	}
	if !linked {
		return "", time.Time{}, domain.ErrESCINotConfigured
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.TokenExpiry)
	claims := Claims{
		SupplierID:      supplier.ID,
		StockLocationID: loc.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   fmt.Sprintf("supplier:%d", supplier.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("authService.IssueToken sign: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.SupplierID == 0 || claims.StockLocationID == 0 {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
