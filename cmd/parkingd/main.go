package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"parking-maintenance-backend/config"
	"parking-maintenance-backend/internal/api"
	"parking-maintenance-backend/internal/db"
	"parking-maintenance-backend/internal/maintenance"
	"parking-maintenance-backend/internal/notification"
	"parking-maintenance-backend/internal/render"
	"parking-maintenance-backend/internal/report"
	"parking-maintenance-backend/internal/reservation"
	"parking-maintenance-backend/internal/store"
	"parking-maintenance-backend/internal/transport"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "parking-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pushCtx, pushCancel := context.WithCancel(context.Background())
	defer pushCancel()

	appStore := store.WithTimeout(store.NewGormStore(gormDB), cfg.Maintenance.StoreTimeout)
	logger.Println("data store initialized")

	// Reports are announced over web push when VAPID keys are configured.
	var webpushOptions *webpush.Options
	var sender transport.Sender = transport.LogSender{}
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions)
		// Workers outlive the scheduler so a report finished during shutdown is still announced.
		workerPool.Start(pushCtx)
		sender = workerPool
	} else {
		logger.Println("VAPID keys are not configured; report notifications are disabled")
	}

	publisher := report.NewPublisher(cfg.Maintenance.ReportsDir, render.NewPDF(), sender)
	generator := report.NewGenerator(appStore, publisher, cfg.Maintenance.ReportKind, cfg.Maintenance.Location)

	// Run the maintenance scheduler in the background
	scheduler := maintenance.NewService(cfg, appStore, generator)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scheduler.Run(ctx)
	}()

	// Initialize router
	handler := api.NewHandler(appStore, webpushOptions, publisher, generator,
		reservation.NewService(appStore), cfg.Maintenance.Location)
	router := api.NewRouter(cfg.Server, handler)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Let an in-flight maintenance job finish before going down.
	cancel()
	wg.Wait()
	logger.Println("Maintenance scheduler stopped")
	pushCancel()

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
