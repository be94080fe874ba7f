package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradewatch-io/signal-relay-gateway/pkg/config"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/models"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/services"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/telegram"
)

// MockNotifier is a mock implementation of the telegram.Notifier interface
type MockNotifier struct {
	mock.Mock
}

var _ telegram.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) SendMessage(chatID int64, text string) bool {
	args := m.Called(chatID, text)
	return args.Bool(0)
}

func (m *MockNotifier) SendToPrimary(text string) bool {
	args := m.Called(text)
	return args.Bool(0)
}

func (m *MockNotifier) SendToTriggerChannel(text string) bool {
	args := m.Called(text)
	return args.Bool(0)
}

func (m *MockNotifier) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

// stubRelayer lets a test hold the background relay open to prove the
// webhook response does not wait for it.
type stubRelayer struct {
	started chan models.Alert
	release chan struct{}
	result  models.RelayResult
}

func newStubRelayer(result models.RelayResult) *stubRelayer {
	return &stubRelayer{
		started: make(chan models.Alert, 1),
		release: make(chan struct{}),
		result:  result,
	}
}

func (s *stubRelayer) Relay(_ context.Context, alert models.Alert) models.RelayResult {
	s.started <- alert
	<-s.release
	return s.result
}

func setupTestRouter(t *testing.T, notifier telegram.Notifier, relayer Relayer) (*echo.Echo, *services.AlertLogger) {
	t.Helper()

	logger, err := services.NewAlertLogger(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{}
	e := echo.New()
	handler := NewAPIHandler(cfg, notifier, relayer, logger)
	handler.SetupRoutes(e)
	return e, logger
}

func TestWebhookAcknowledgesBeforeRelayCompletes(t *testing.T) {
	relayer := newStubRelayer(models.RelayResult{Relayed: true, Method: models.RelayMethodHTTPTrigger})
	notifier := new(MockNotifier)
	router, logger := setupTestRouter(t, notifier, relayer)

	body := []byte(`{"ticker":"BTCUSDT","condition":"crossing up","price":70000}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	// The acknowledgement arrives while the relay is still blocked.
	assert.Equal(t, http.StatusOK, rec.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, true, response["received"])
	assert.NotEmpty(t, response["timestamp"])

	select {
	case alert := <-relayer.started:
		assert.Equal(t, "BTCUSDT", alert.Ticker())
		assert.NotEmpty(t, alert["receivedAt"])
	case <-time.After(2 * time.Second):
		t.Fatal("relay was never invoked")
	}
	close(relayer.release)

	// The log file lands after the relay finishes.
	require.Eventually(t, func() bool {
		files, err := os.ReadDir(logger.Dir())
		return err == nil && len(files) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWebhookWrapsRawTextBody(t *testing.T) {
	relayer := newStubRelayer(models.RelayResult{Relayed: false, Error: "http_trigger: not configured"})
	close(relayer.release)
	notifier := new(MockNotifier)
	router, logger := setupTestRouter(t, notifier, relayer)

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString("BUY ETH NOW"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	select {
	case alert := <-relayer.started:
		assert.Equal(t, "BUY ETH NOW", alert["message"])
		assert.NotEmpty(t, alert["receivedAt"])
	case <-time.After(2 * time.Second):
		t.Fatal("relay was never invoked")
	}

	// Failed relays still produce exactly one log file.
	require.Eventually(t, func() bool {
		files, err := os.ReadDir(logger.Dir())
		return err == nil && len(files) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStatus(t *testing.T) {
	relayer := newStubRelayer(models.RelayResult{})
	notifier := new(MockNotifier)
	notifier.On("Configured").Return(false)
	router, _ := setupTestRouter(t, notifier, relayer)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, ServiceName, response["service"])
	assert.Equal(t, false, response["telegram_configured"])
	assert.Equal(t, false, response["trigger_configured"])
	assert.NotEmpty(t, response["timestamp"])
}

func TestHealth(t *testing.T) {
	router, _ := setupTestRouter(t, new(MockNotifier), newStubRelayer(models.RelayResult{}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestTestNotification(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		sendOK   bool
		wantSent bool
		wantText string
	}{
		{
			name:     "custom ticker delivered",
			body:     `{"ticker":"ETHUSDT","price":3200}`,
			sendOK:   true,
			wantSent: true,
			wantText: "ETHUSDT",
		},
		{
			name:     "defaults applied and send failure reported",
			body:     `{}`,
			sendOK:   false,
			wantSent: false,
			wantText: "BTCUSDT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := new(MockNotifier)
			notifier.On("SendToPrimary", mock.AnythingOfType("string")).Return(tt.sendOK)
			router, _ := setupTestRouter(t, notifier, newStubRelayer(models.RelayResult{}))

			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, true, response["test"])
			assert.Equal(t, tt.wantSent, response["telegram_sent"])

			sentText := notifier.Calls[0].Arguments.String(0)
			assert.Contains(t, sentText, tt.wantText)
			assert.Contains(t, sentText, "Setup")
		})
	}
}
