package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"carpet-estimator/internal/common/middleware"
	"carpet-estimator/internal/estimator/detection"
	"carpet-estimator/internal/estimator/handlers"
	"carpet-estimator/internal/estimator/metrics"
	"carpet-estimator/internal/estimator/repository"
	"carpet-estimator/internal/estimator/service"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the estimator HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		return serve()
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "3000", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		return fmt.Errorf("init db: %w", err)
	}

	metrics.Init()

	sessions := service.NewSessionManager(engineSettings())
	analyzer := detection.NewClient(cfg.AnalyzerURL, time.Duration(cfg.AnalyzerTimeout)*time.Second)
	estimatorHandler := handlers.NewEstimatorHandler(sessions, analyzer, repo)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    20 * 1024 * 1024,
		AppName:      "Carpet Estimator",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health, Metrics & Docs Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe(db))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/docs", handlers.SwaggerUI(fmt.Sprintf("Carpet Estimator API (%s)", cfg.Environment), "/docs/openapi.yaml"))
	app.Get("/docs/openapi.yaml", handlers.OpenAPISpec)

	// ============================================================
	// Estimator Routes
	// ============================================================

	estimatorHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Carpet Estimator on %s (env: %s, analyzer: %s)", addr, cfg.Environment, cfg.AnalyzerURL)

	return app.Listen(addr)
}
