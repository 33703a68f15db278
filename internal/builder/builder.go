package builder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/futig/multimodal-rag/internal/api"
	ragapi "github.com/futig/multimodal-rag/internal/api/rag"
	"github.com/futig/multimodal-rag/internal/config"
	"github.com/futig/multimodal-rag/internal/integration/gemini"
	"github.com/futig/multimodal-rag/internal/observability/metrics"
	"github.com/futig/multimodal-rag/internal/pkg/validator"
	"github.com/futig/multimodal-rag/internal/repository"
	"github.com/futig/multimodal-rag/internal/synthetic"
	ragusecase "github.com/futig/multimodal-rag/internal/usecase/rag"
	"go.uber.org/zap"
)

const serviceName = "rag-gateway"

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Upload scratch directory must exist before the server accepts requests
	scratch, err := repository.NewScratchDir(cfg.FileUploadCfg.ScratchDir)
	if err != nil {
		return nil, fmt.Errorf("setup scratch dir: %w", err)
	}
	fileStore := repository.NewFileMemory(cfg.FileStoreCfg.TTL)
	logger.Info("Repositories initialized",
		zap.String("scratch_dir", scratch.Path()),
		zap.Duration("file_ttl", cfg.FileStoreCfg.TTL),
	)

	var closers []io.Closer

	// Initialize model gateway (with mock support)
	var gateway ragusecase.ModelGateway
	switch {
	case cfg.EnableMocks:
		logger.Info("Using mock connector for the model gateway")
		gateway = gemini.NewMockConnector(logger)
	case cfg.GeminiConnectorCfg.Driver == config.GeminiDriverSDK:
		logger.Info("Using Gemini SDK connector", zap.String("model", cfg.GeminiConnectorCfg.Model))
		sdk, err := gemini.NewSDKConnector(ctx, cfg.GeminiConnectorCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("create gemini sdk client: %w", err)
		}
		gateway = sdk
		closers = append(closers, sdk)
	default:
		logger.Info("Using Gemini REST connector", zap.String("model", cfg.GeminiConnectorCfg.Model))
		gateway = gemini.NewConnector(cfg.GeminiConnectorCfg, logger)
	}

	// Initialize validators
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)

	serverMetrics := metrics.NewServerMetrics(serviceName)

	// Initialize use cases
	ragUC := ragusecase.NewUsecase(
		fileStore,
		gateway,
		synthetic.NewMetricsSynthesizer(nil),
		synthetic.NewSourceSynthesizer(nil),
		scratch,
		fileValidator,
		serverMetrics,
		cfg.FileUploadCfg.DefaultEmbeddingSet,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	ragHandler := ragapi.NewHandler(ragUC, fileValidator, cfg.FileUploadCfg)

	// Setup router
	router := api.SetupRouter(ragHandler, serverMetrics, cfg.RequestTimeout, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server. Writes must outlive the request timeout so the
	// timeout middleware can still answer.
	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:  server,
		closers: closers,
		logger:  logger,
	}, nil
}
