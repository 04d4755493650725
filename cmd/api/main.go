package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"edunest/internal/config"
	"edunest/internal/database"
	"edunest/internal/domain"
	"edunest/internal/logger"
	"edunest/internal/server"
	"edunest/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Admin.PIN == config.DefaultAdminPIN && !cfg.App.Debug {
		logr.Warn("ADMIN_PIN is the built-in default; set ADMIN_PIN in production")
	}

	logr.Info("starting",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.Bool("debug", cfg.App.Debug),
	)

	db, err := database.Open(&cfg.Database, logr.Named("db"), &domain.Inquiry{}, &domain.Admission{})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		logr.Info("closing database connections")
		if err := database.Close(db); err != nil {
			logr.Error("error closing database", zap.Error(err))
		}
	}()

	emailSvc := services.NewEmailService(&cfg.Email, logr.Named("email"))
	handler := server.New(cfg, server.Services{
		Health:    services.NewHealthService(db),
		Inquiry:   services.NewInquiryService(db, emailSvc, logr.Named("inquiry")),
		Admission: services.NewAdmissionService(db, emailSvc, logr.Named("admission")),
		Admin:     services.NewAdminService(db, logr.Named("admin")),
	}, logr.Named("http"))

	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     zap.NewStdLog(logr.Named("http")),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logr.Info("server listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server error: %w", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		logr.Info("received signal, starting graceful shutdown", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logr.Error("error during graceful shutdown", zap.Error(err))
		if errors.Is(err, context.DeadlineExceeded) {
			_ = httpServer.Close()
		}
	}

	logr.Info("server shutdown complete")
	return nil
}
