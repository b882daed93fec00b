package config

import (
	"pdf-text-extractor/internal/domain"
	"pdf-text-extractor/internal/repository"
	"pdf-text-extractor/internal/service"
	"pdf-text-extractor/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config             domain.Config
	Logger             domain.Logger
	DB                 *repository.DB
	DocumentRepository domain.DocumentRepository
	ExtractionCache    domain.ExtractionCache
	PDFService         *service.PDFService
	ExtractionService  domain.ExtractionService
	DocumentService    domain.DocumentService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	db, err := repository.Open(config.GetDatabasePath())
	if err != nil {
		return nil, err
	}

	// Repositories
	documentRepo := repository.NewDocumentRepository(db, appLogger)
	extractionCache := repository.NewExtractionCache(db, appLogger)

	// Extraction pipeline
	pdfService := service.NewPDFService(config.GetUploadPath(), appLogger)
	detector := service.NewGarbleDetector(config.GetGarbledThreshold(), appLogger)
	resolver := service.NewLanguageResolver()
	ocrExtractor := service.NewOCRExtractor(service.NewTesseractEngine(), appLogger)
	visionExtractor := service.NewVisionExtractor(
		config.GetVisionAPIKey(),
		config.GetVisionEndpoint(),
		config.GetVisionJPEGQuality(),
		appLogger,
	)
	extractionService := service.NewExtractionService(
		extractionCache,
		pdfService,
		ocrExtractor,
		visionExtractor,
		detector,
		resolver,
		appLogger,
		config.IsFallbackEnabled(),
		config.GetFallbackEngine(),
		config.GetExtractTimeout(),
	)

	documentService := service.NewDocumentService(
		documentRepo,
		extractionCache,
		pdfService,
		extractionService,
		appLogger,
		config.GetUploadPath(),
		config.GetMaxFileSize(),
		config.GetExtractWorkers(),
	)

	return &Container{
		Config:             config,
		Logger:             appLogger,
		DB:                 db,
		DocumentRepository: documentRepo,
		ExtractionCache:    extractionCache,
		PDFService:         pdfService,
		ExtractionService:  extractionService,
		DocumentService:    documentService,
	}, nil
}

// Close releases the container's resources
func (c *Container) Close() error {
	return c.DB.Close()
}
