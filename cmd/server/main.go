package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/leadform/backend/internal/config"
	"github.com/leadform/backend/internal/handler"
	"github.com/leadform/backend/internal/logging"
	"github.com/leadform/backend/internal/metrics"
	"github.com/leadform/backend/internal/notify"
	"github.com/leadform/backend/internal/repository"
	"github.com/leadform/backend/internal/service"
	"github.com/leadform/backend/pkg/auth"
)

func main() {
	_ = godotenv.Load()
	logging.Setup("leadform-api")

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	// The store is connected on first use so the server starts even when
	// Postgres is briefly unavailable.
	db := repository.NewConnector(cfg.DatabaseURL)
	defer db.Close()

	cred, err := auth.NewCredential(cfg.Admin)
	if err != nil {
		logging.Fatal("invalid admin credential", "error", err)
	}
	if none, ok := cred.(auth.NoCredential); ok {
		slog.Warn("admin login disabled", "reason", none.Reason)
	} else {
		slog.Info("admin credential loaded", "kind", cred.Kind())
	}

	m := metrics.New()
	contactRepo := repository.NewPgContactRepository(db)
	contactService := service.NewContactService(contactRepo, notify.New(cfg.Email), m)
	adminAuthService := service.NewAdminAuthService(cred, m)

	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.Production)
	limiter := handler.NewRateLimiter(cfg.RateLimit)
	defer limiter.Close()

	router := handler.NewRouter(handler.Routes{
		Base:          handler.New(db, cfg.FrontendURL),
		Contacts:      handler.NewContactHandler(contactService),
		AdminAuth:     handler.NewAdminAuthHandler(adminAuthService, sessions),
		AdminContacts: handler.NewAdminContactHandler(contactService),
		Sessions:      sessions,
		Limiter:       limiter,
		Metrics:       m.Handler(),
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "production", cfg.Production)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
