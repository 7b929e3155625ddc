package bootstrap

import (
	"time"

	"chromalyzer-be/internal/config"
	"chromalyzer-be/internal/controller"
	"chromalyzer-be/internal/pkg/logger"
	"chromalyzer-be/internal/repository/memory"
	"chromalyzer-be/internal/service"
	"chromalyzer-be/pkg/plot"
	"chromalyzer-be/pkg/tabular"
)

type Container struct {
	// Controllers
	UploadController   controller.IUploadController
	AnalysisController controller.IAnalysisController
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. In-Memory Upload Storage
	uploadRepo := memory.NewUploadRepository(time.Duration(cfg.Upload.TTLMinutes) * time.Minute)

	// 3. Services
	parser := tabular.NewParser()
	renderer := plot.NewRenderer()

	ingestService := service.NewIngestService(uploadRepo, parser, cfg.Upload.PreviewRows, sysLogger)
	analysisService := service.NewAnalysisService(
		ingestService,
		renderer,
		cfg.Analysis.PeakEngineEnabled, // Capability flag, injected so tests can flip it
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		UploadController:   controller.NewUploadController(ingestService),
		AnalysisController: controller.NewAnalysisController(analysisService),
	}
}
