package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/flowiq/cashflow-service/internal/cashflow"
	"github.com/flowiq/cashflow-service/internal/config"
	"github.com/flowiq/cashflow-service/internal/handler"
	"github.com/flowiq/cashflow-service/internal/integrations/aiservice"
	"github.com/flowiq/cashflow-service/internal/integrations/rates"
	"github.com/flowiq/cashflow-service/internal/repository"
	"github.com/flowiq/cashflow-service/internal/service"
	"github.com/flowiq/cashflow-service/internal/utils/email"
	_ "github.com/lib/pq"
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
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, logger, cfg, sender, nil)
	calc := cashflow.NewCalculator(repo, repo, logger, nil)
	aiClient := aiservice.NewClient(cfg, logger)
	ratesClient := rates.NewClient(cfg, logger)
	h := handler.NewHandler(svc, calc, aiClient, ratesClient, logger)

	// Expired OTP codes are cleared hourly
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		n, err := repo.PurgeExpiredOTPs(context.Background(), time.Now())
		if err != nil {
			logger.Errorf("Failed to purge expired OTPs: %v", err)
			return
		}
		if n > 0 {
			logger.Infof("Purged %d expired OTP codes", n)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule OTP purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Routes(h, cfg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
