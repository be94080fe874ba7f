package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/tradewatch-io/signal-relay-gateway/pkg/api"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/config"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/services"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/telegram"
)

// @title Signal Relay Gateway API
// @version 1.0
// @description Accepts TradingView-style alert webhooks and relays them to Telegram and a companion analysis process
// @BasePath /

func main() {
	// Configure Log Level from Environment Variable
	logLevelStr := os.Getenv("LOG_LEVEL")
	switch strings.ToLower(logLevelStr) {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn", "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
	logrus.Infof("Log level set to: %s", logrus.GetLevel().String())

	// Load .env if present; real deployments configure the environment directly
	if err := godotenv.Load(); err == nil {
		logrus.Debug("Loaded environment from .env")
	}

	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Set up the Telegram notifier. A missing token disables notifications
	// but never blocks startup.
	notifier := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.TriggerChatID)

	// Set up the alert log directory once, at startup
	alertLogger, err := services.NewAlertLogger(cfg.Alerts.LogDir)
	if err != nil {
		logrus.Fatalf("Failed to create alert logger: %v", err)
	}
	logrus.Infof("Alert logs will be written to %s", alertLogger.Dir())

	// Initialize the relay dispatcher
	relayService := services.NewRelayService(cfg, notifier)
	if cfg.Relay.TriggerURL == "" {
		logrus.Warn("TRIGGER_URL not set, relying on telegram marker fallback only")
	}

	// Set up the Echo server
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// API routes
	apiHandler := api.NewAPIHandler(cfg, notifier, relayService, alertLogger)
	apiHandler.SetupRoutes(e)

	// Prometheus metrics
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Swagger documentation
	e.GET("/swagger/*", echo.WrapHandler(httpSwagger.Handler()))

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Server.Port)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Shutdown the server
	if err := e.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}
