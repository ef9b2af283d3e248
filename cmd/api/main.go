package main

import (
	"fmt"
	"net/http"
	"time"

	"database/sql"

	"github.com/dkrylov/irrbb-service/internal/config"
	"github.com/dkrylov/irrbb-service/internal/engine"
	"github.com/dkrylov/irrbb-service/internal/handler"
	"github.com/dkrylov/irrbb-service/internal/integrations/rates"
	"github.com/dkrylov/irrbb-service/internal/middleware"
	"github.com/dkrylov/irrbb-service/internal/repository"
	"github.com/dkrylov/irrbb-service/internal/scheduler"
	"github.com/dkrylov/irrbb-service/internal/service"
	"github.com/dkrylov/irrbb-service/internal/utils/email"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load .env if present; environment variables take precedence
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using environment")
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	ratesClient := rates.NewClient(cfg, logger)
	mailer := email.NewSender(cfg, logger)
	eng := engine.New(logger)
	svc := service.NewService(repo, logger, cfg, eng, ratesClient, mailer)
	h := handler.NewHandler(svc)

	// Scheduled revaluation
	sched := scheduler.NewScheduler(svc, logger)
	if cfg.RevalSchedule != "" {
		if err := sched.Start(cfg.RevalSchedule); err != nil {
			logger.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/portfolio/generate", h.GeneratePortfolio).Methods("POST")
	authRouter.HandleFunc("/positions", h.UploadPositions).Methods("POST")
	authRouter.HandleFunc("/positions", h.ListPositions).Methods("GET")
	authRouter.HandleFunc("/valuation/run", h.RunValuation).Methods("POST")
	authRouter.HandleFunc("/valuation/latest", h.GetLatestRun).Methods("GET")
	authRouter.HandleFunc("/valuation/curve", h.GetCurve).Methods("GET")
	authRouter.HandleFunc("/valuation/cashflows", h.GetCashFlows).Methods("GET")
	authRouter.HandleFunc("/valuation/gap", h.GetGapTable).Methods("GET")
	authRouter.HandleFunc("/valuation/report", h.GetReport).Methods("GET")
	authRouter.HandleFunc("/export/report.csv", h.ExportReportCSV).Methods("GET")
	authRouter.HandleFunc("/export/gap.csv", h.ExportGapTableCSV).Methods("GET")
	authRouter.HandleFunc("/export/cashflows.csv", h.ExportCashFlowsCSV).Methods("GET")
	authRouter.HandleFunc("/export/curve.csv", h.ExportCurveCSV).Methods("GET")
	authRouter.HandleFunc("/export/excluded.csv", h.ExportExcludedCSV).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
