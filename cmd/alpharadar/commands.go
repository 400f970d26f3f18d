package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"alpha_radar/internal/app/service"
	"alpha_radar/internal/domain/entity"
	"alpha_radar/internal/infrastructure/restapi"
	"alpha_radar/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newScanCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run a single scan, deliver the results and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := buildApplication(ctx, *configPath)
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.runOnce(ctx); err != nil {
				if entity.IsConfigError(err) {
					return err
				}
				logger.Warn("Scan did not complete", "error", err)
			}
			return nil
		},
	}
}

func newWatchCmd(configPath *string) *cobra.Command {
	var (
		interval time.Duration
		serve    bool
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Scan on a fixed interval, optionally serving the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := buildApplication(ctx, *configPath)
			if err != nil {
				return err
			}
			defer app.close()

			if interval <= 0 {
				interval = time.Duration(app.cfg.Scan.IntervalMinutes) * time.Minute
			}

			var srv *http.Server
			if serve {
				srv = app.startServer()
			}

			err = app.watch(ctx, interval)

			if srv != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
					logger.Error("HTTP server shutdown failed", "error", shutdownErr)
				} else {
					logger.Info("HTTP server stopped")
				}
			}
			logger.Info("alpha radar stopped")
			return err
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "time between scans (default from scan.intervalMinutes)")
	cmd.Flags().BoolVar(&serve, "serve", false, "serve the HTTP API while watching")
	return cmd
}

// watch runs a scan immediately and then on every tick until ctx is cancelled.
// A config error stops the loop; anything else is logged and retried next tick.
func (a *application) watch(ctx context.Context, interval time.Duration) error {
	a.log.Info("Watching", "interval", interval.String())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := a.runOnce(ctx); err != nil {
			if entity.IsConfigError(err) {
				return err
			}
			if ctx.Err() == nil {
				a.log.Warn("Scan did not complete", "error", err)
			}
		}
		select {
		case <-ctx.Done():
			a.log.Info("Shutdown signal received")
			return nil
		case <-ticker.C:
		}
	}
}

func (a *application) startServer() *http.Server {
	if a.cfg.Env == "production" || a.cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := restapi.NewOpportunityHandler(
		a.scanner,
		a.runner,
		a.registry,
		logger.NewNamedAdapter("RestAPI"),
		time.Duration(a.cfg.Scan.TimeoutSeconds)*time.Second,
	)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", a.cfg.Server.Port),
		Handler:      restapi.SetupRouter(handler),
		ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(a.cfg.Server.WriteTimeoutSeconds)*time.Second + time.Duration(a.cfg.Scan.TimeoutSeconds)*time.Second,
	}
	go func() {
		logger.Info("Starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()
	return srv
}

func newTestTelegramCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "test-telegram",
		Short: "Send a test message to the configured Telegram chat",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, zl, err := loadSettings(*configPath)
			if err != nil {
				return err
			}
			if !cfg.TelegramConfigured() {
				logger.Warn("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is not set; nothing sent")
				return nil
			}
			if err := newNotifier(cfg, zl).Send(cmd.Context(), service.TelegramTestMessage); err != nil {
				logger.Error("Test message failed", "error", err)
				return nil
			}
			logger.Info("Test message sent")
			return nil
		},
	}
}
