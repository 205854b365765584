package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/contratos/internal/app"
	"github.com/MrJamesThe3rd/contratos/internal/config"
	contratosHttp "github.com/MrJamesThe3rd/contratos/internal/http"
	contractHandler "github.com/MrJamesThe3rd/contratos/internal/http/contract"
	entityHandler "github.com/MrJamesThe3rd/contratos/internal/http/entity"
	exportHandler "github.com/MrJamesThe3rd/contratos/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/contratos/internal/http/importcsv"
	invoiceHandler "github.com/MrJamesThe3rd/contratos/internal/http/invoice"
	notificationHandler "github.com/MrJamesThe3rd/contratos/internal/http/notification"
	supplementHandler "github.com/MrJamesThe3rd/contratos/internal/http/supplement"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	router := contratosHttp.New(
		contratosHttp.Config{
			CORSOrigins: cfg.Server.CORSOrigins,
			JWTSecret:   []byte(cfg.Auth.JWTSecret),
			JWTIssuer:   cfg.Auth.Issuer,
		},
		contratosHttp.Handlers{
			Contracts:     contractHandler.NewHandler(a.Contracts, cfg.Server.MaxUpload),
			Supplements:   supplementHandler.NewHandler(a.Supplements),
			Invoices:      invoiceHandler.NewHandler(a.Invoices),
			Notifications: notificationHandler.NewHandler(a.Notifications),
			Entities:      entityHandler.NewHandler(a.Entities),
			Import:        importHandler.NewHandler(a.Import, cfg.Server.MaxUpload),
			Export:        exportHandler.NewHandler(a.Export),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           http.TimeoutHandler(router, cfg.Server.Timeout, "request timed out"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("starting server", "port", server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}
}
