package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"escibridge/internal/config"
	"escibridge/internal/email/noop"
	"escibridge/internal/email/ses"
	"escibridge/internal/handler"
	"escibridge/internal/mapper"
	"escibridge/internal/port"
	"escibridge/internal/repository/postgres"
	"escibridge/internal/router"
	"escibridge/internal/service"
	s3storage "escibridge/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(&cfg.Log)
	log.Logger = logger

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	supplierRepo := postgres.NewSupplierRepo(db)
	stockLocationRepo := postgres.NewStockLocationRepo(db)
	productRepo := postgres.NewProductRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	deliveryRepo := postgres.NewDeliveryRepo(db)
	lookupRepo := postgres.NewLookupRepo(db)

	// Load the reference tables the mapper consults.
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	taxTypes, err := lookupRepo.ListTaxTypes(loadCtx)
	if err != nil {
		return fmt.Errorf("failed to load tax types: %w", err)
	}
	units, err := lookupRepo.ListUnitsOfMeasure(loadCtx)
	if err != nil {
		return fmt.Errorf("failed to load units of measure: %w", err)
	}

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Initialize the mapping engine
	invoiceMapper := mapper.New(mapper.Config{
		Suppliers:      supplierRepo,
		StockLocations: stockLocationRepo,
		Products:       productRepo,
		Orders:         orderRepo,
		Deliveries:     deliveryRepo,
		Currency:       cfg.Practice.Currency,
		TaxTypes:       taxTypes,
		UnitsOfMeasure: units,
	})

	// Initialize services
	authSvc := service.NewAuthService(supplierRepo, stockLocationRepo, &cfg.JWT)
	invoiceSvc := service.NewInvoiceService(
		supplierRepo, stockLocationRepo, deliveryRepo,
		invoiceMapper, s3Client, emailSender,
		cfg.S3.Bucket, cfg.Practice.ContactEmail, logger,
	)
	deliverySvc := service.NewDeliveryService(deliveryRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	deliveryH := handler.NewDeliveryHandler(deliverySvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(logger, authSvc, authH, invoiceH, deliveryH, healthH)

	logger.Info().Str("addr", cfg.Server.Port).Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func newLogger(cfg *config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
