package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sesp-cea/reajuste-service/internal/config"
	"github.com/sesp-cea/reajuste-service/internal/handler"
	"github.com/sesp-cea/reajuste-service/internal/jobs"
	"github.com/sesp-cea/reajuste-service/internal/repository"
	"github.com/sesp-cea/reajuste-service/internal/service"
	"github.com/sesp-cea/reajuste-service/internal/utils/email"
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
	if err := repo.Migrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	svc := service.NewService(repo, repo, repo, logger)
	h := handler.NewHandler(svc)

	if cfg.SeedDemoData {
		if err := svc.SeedDemoData(); err != nil {
			logger.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Daily eligibility scan, with optional SMTP notices
	var notifier jobs.Notifier
	if cfg.SMTPHost != "" {
		notifier = email.NewSender(cfg, logger)
	}
	scanner := jobs.NewEligibilityScanner(repo, notifier, cfg.NotifyEmail, logger)
	scheduler := cron.New()
	if _, err := scheduler.AddJob(cfg.EligibilityCron, scanner); err != nil {
		logger.Fatalf("Failed to schedule eligibility scan: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/indices", h.CreateIndex).Methods("POST")
	r.HandleFunc("/indices", h.ListIndices).Methods("GET")
	r.HandleFunc("/indices/{date}", h.GetIndex).Methods("GET")
	r.HandleFunc("/indices/{date}", h.DeleteIndex).Methods("DELETE")
	r.HandleFunc("/contracts", h.CreateContract).Methods("POST")
	r.HandleFunc("/contracts", h.ListContracts).Methods("GET")
	r.HandleFunc("/contracts/{id}", h.GetContract).Methods("GET")
	r.HandleFunc("/contracts/{id}", h.DeleteContract).Methods("DELETE")
	r.HandleFunc("/contracts/{id}/calculations", h.Calculate).Methods("POST")
	r.HandleFunc("/contracts/{id}/calculations", h.ListCalculations).Methods("GET")
	r.HandleFunc("/contracts/{id}/eligibility", h.Eligibility).Methods("GET")
	r.HandleFunc("/calculations/{id}/report", h.Report).Methods("GET")

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
