package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/tradewatch-io/signal-relay-gateway/pkg/config"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/metrics"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/models"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/services"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/telegram"
)

// ServiceName reported by the status probe.
const ServiceName = "signal-relay-gateway"

// Relayer forwards an alert downstream.
// This allows us to mock the dispatcher for testing.
type Relayer interface {
	Relay(ctx context.Context, alert models.Alert) models.RelayResult
}

// Ensure RelayService implements Relayer
var _ Relayer = (*services.RelayService)(nil)

// APIHandler handles HTTP API requests
type APIHandler struct {
	cfg      *config.Config
	notifier telegram.Notifier
	relayer  Relayer
	logger   *services.AlertLogger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(cfg *config.Config, notifier telegram.Notifier, relayer Relayer, logger *services.AlertLogger) *APIHandler {
	return &APIHandler{
		cfg:      cfg,
		notifier: notifier,
		relayer:  relayer,
		logger:   logger,
	}
}

// Status reports liveness and which collaborators are configured. Booleans
// only; credential values never appear in a response.
func (h *APIHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":              "ok",
		"service":             ServiceName,
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
		"telegram_configured": h.notifier.Configured(),
		"trigger_configured":  h.cfg.Relay.TriggerURL != "",
	})
}

// Health is the platform health check
func (h *APIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// Webhook accepts one inbound alert. The body may be a JSON object or raw
// text; either way the alert is acknowledged immediately and relayed plus
// persisted in the background. The alert source only cares about a fast 200.
func (h *APIHandler) Webhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		logrus.Errorf("Error reading webhook body: %v", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Could not read request body"})
	}

	alert := models.ParseAlert(body)
	now := time.Now().UTC()
	alert.StampReceived(now)
	metrics.AlertsReceived.Inc()
	logrus.Infof("Alert received: ticker=%s condition=%s", alert.Ticker(), alert.Condition())

	go h.process(alert)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"received":  true,
		"timestamp": now.Format(time.RFC3339Nano),
	})
}

// process relays and persists one alert after the webhook response has been
// sent. Outcomes are only logged; a panic here must never take the process
// down or reach the alert source.
func (h *APIHandler) process(alert models.Alert) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Recovered from panic while processing alert: %v", r)
		}
	}()

	result := h.relayer.Relay(context.Background(), alert)

	path, err := h.logger.Persist(alert, result)
	if err != nil {
		logrus.Errorf("Failed to persist alert log: %v", err)
		return
	}
	logrus.Debugf("Alert log written to %s", path)
}

// TestRequest is the body of the manual test endpoint.
type TestRequest struct {
	Ticker string  `json:"ticker"`
	Price  float64 `json:"price"`
}

// TestNotification synthesizes a canned alert and analysis, formats them and
// sends the result to the primary chat synchronously, bypassing the relay
// dispatcher.
func (h *APIHandler) TestNotification(c echo.Context) error {
	var req TestRequest
	if err := c.Bind(&req); err != nil {
		logrus.Errorf("Error binding test request: %v", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.Ticker == "" {
		req.Ticker = "BTCUSDT"
	}
	if req.Price == 0 {
		req.Price = 65000
	}

	alert := models.Alert{
		"ticker":    req.Ticker,
		"price":     req.Price,
		"condition": "manual test",
		"time":      time.Now().UTC().Format(time.RFC3339),
	}
	analysis := models.Analysis{
		"setup": map[string]interface{}{
			"type":       "long",
			"entry":      req.Price,
			"stop":       req.Price * 0.98,
			"tp1":        req.Price * 1.01,
			"tp2":        req.Price * 1.03,
			"tp3":        req.Price * 1.05,
			"riskReward": "2.5",
			"winRate":    "62%",
		},
		"indicators": map[string]interface{}{
			"rsi":   54.2,
			"macd":  0.8,
			"ema50": req.Price * 0.99,
		},
		"recommendation": "Test notification only, not a trade signal.",
	}

	sent := h.notifier.SendToPrimary(telegram.FormatAnalysisMessage(alert, analysis))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"test":          true,
		"telegram_sent": sent,
		"alert":         alert,
	})
}

// SetupRoutes sets up the API routes
func (h *APIHandler) SetupRoutes(e *echo.Echo) {
	e.GET("/", h.Status)
	e.GET("/health", h.Health)
	e.POST("/webhook", h.Webhook)
	e.POST("/test", h.TestNotification)
}
