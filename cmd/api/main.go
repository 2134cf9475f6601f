package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/RibbonBlockchain/TradelineAI/internal/config"
	"github.com/RibbonBlockchain/TradelineAI/internal/handler"
	"github.com/RibbonBlockchain/TradelineAI/internal/integrations/riskmodel"
	"github.com/RibbonBlockchain/TradelineAI/internal/middleware"
	"github.com/RibbonBlockchain/TradelineAI/internal/repository"
	"github.com/RibbonBlockchain/TradelineAI/internal/service"
	"github.com/RibbonBlockchain/TradelineAI/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

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
	riskClient := riskmodel.NewClient(cfg, logger)
	mailSender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, riskClient, mailSender, logger, cfg)
	h := handler.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/tradelines/{id}/performance", h.PerformanceHistory).Methods("GET")
	r.HandleFunc("/tradelines/{id}/risk", h.TradelineRisk).Methods("GET")
	r.HandleFunc("/reports/tradeline-risk", h.RiskReport).Methods("GET")
	r.HandleFunc("/agents/{id}/credit-score", h.CreditScore).Methods("GET")
	r.HandleFunc("/agents/{id}/credit-trend", h.CreditTrend).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/tradelines/{id}/performance", h.RecordPerformance).Methods("POST")
	authRouter.HandleFunc("/agents/{id}/credit-score", h.UpdateCreditScore).Methods("POST")

	// Scheduled jobs: nightly performance snapshots and repayment sweep
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SnapshotSchedule, func() {
		if _, err := svc.RecordAllTradelinePerformance(context.Background()); err != nil {
			logger.Errorf("Snapshot job failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule snapshot job: %v", err)
	}
	if _, err := scheduler.AddFunc(cfg.SweepSchedule, func() {
		if err := svc.SweepRepayments(context.Background()); err != nil {
			logger.Errorf("Repayment sweep failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule repayment sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
