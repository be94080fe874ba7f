package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tradewatch-io/signal-relay-gateway/pkg/config"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/metrics"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/models"
	"github.com/tradewatch-io/signal-relay-gateway/pkg/telegram"
)

// FallbackMarker prefixes the fallback message so the companion process can
// recognize relay requests while watching the chat.
const FallbackMarker = "⚡ANALYZE"

// Quote-currency suffixes stripped from tickers when synthesizing a prompt,
// longest first so USDT wins over USD.
var quoteSuffixes = []string{"USDT", "USDC", "PERP", "USD"}

// RelayService forwards inbound alerts to the companion analysis process.
// The companion may be reachable directly over HTTP or only indirectly
// through a marker message in a shared chat; the dispatcher tries the direct
// path first and degrades to the marker convention.
type RelayService struct {
	cfg      *config.Config
	notifier telegram.Notifier
	client   *http.Client
}

// NewRelayService creates a new relay service
func NewRelayService(cfg *config.Config, notifier telegram.Notifier) *RelayService {
	return &RelayService{
		cfg:      cfg,
		notifier: notifier,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Relay forwards one alert downstream and reports the outcome. It never
// returns an error and never panics; every failure degrades to the next
// strategy or to a failure record.
func (s *RelayService) Relay(ctx context.Context, alert models.Alert) models.RelayResult {
	prompt := alert.Prompt()
	if prompt == "" {
		prompt = DefaultPrompt(alert.Ticker())
	}

	result := models.RelayResult{
		Prompt: prompt,
		Ticker: alert.Ticker(),
	}

	var failures []string

	if url := s.cfg.Relay.TriggerURL; url != "" {
		if err := s.postTrigger(ctx, url, prompt, alert.Ticker()); err != nil {
			logrus.Warnf("Trigger endpoint failed, falling back to telegram: %v", err)
			failures = append(failures, fmt.Sprintf("http_trigger: %v", err))
		} else {
			result.Relayed = true
			result.Method = models.RelayMethodHTTPTrigger
			metrics.RelaysTotal.WithLabelValues(result.Method).Inc()
			// Informational only: no marker, so the companion ignores it.
			s.notifier.SendToPrimary(fmt.Sprintf("🔁 Relayed %s for analysis via trigger endpoint.", orUnknown(alert.Ticker())))
			return result
		}
	} else {
		failures = append(failures, "http_trigger: not configured")
	}

	if s.sendFallback(prompt) {
		result.Relayed = true
		result.Method = models.RelayMethodMessageFallback
		metrics.RelaysTotal.WithLabelValues(result.Method).Inc()
		return result
	}
	failures = append(failures, "message_fallback: telegram send failed")

	result.Error = strings.Join(failures, "; ")
	metrics.RelayFailures.Inc()
	logrus.Errorf("Alert for %s could not be relayed: %s", orUnknown(alert.Ticker()), result.Error)
	return result
}

// sendFallback posts the marker message. The trigger channel is preferred
// when one is configured; otherwise the marker goes to the primary chat.
func (s *RelayService) sendFallback(prompt string) bool {
	text := FallbackMarker + " " + prompt
	if s.cfg.Telegram.TriggerChatID != 0 {
		return s.notifier.SendToTriggerChannel(text)
	}
	return s.notifier.SendToPrimary(text)
}

// postTrigger POSTs the prompt to the companion trigger endpoint. Any 2xx
// response counts as accepted.
func (s *RelayService) postTrigger(ctx context.Context, url, prompt, ticker string) error {
	if !strings.HasSuffix(url, "/trigger") {
		url = strings.TrimRight(url, "/") + "/trigger"
	}

	body, err := json.Marshal(map[string]string{
		"prompt":  prompt,
		"message": prompt,
		"ticker":  ticker,
	})
	if err != nil {
		return errors.Wrap(err, "marshal trigger request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build trigger request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "post trigger request")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("trigger endpoint returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// DefaultPrompt synthesizes the relay prompt for an alert that carries no
// explicit message, stripping the quote currency from the ticker.
func DefaultPrompt(ticker string) string {
	base := ticker
	upper := strings.ToUpper(ticker)
	for _, suffix := range quoteSuffixes {
		if strings.HasSuffix(upper, suffix) && len(upper) > len(suffix) {
			base = ticker[:len(ticker)-len(suffix)]
			break
		}
	}
	if base == "" {
		base = "the market"
	}
	return fmt.Sprintf("Run the trade-analysis skill for %s and post the setup to the trading channel.", base)
}

func orUnknown(ticker string) string {
	if ticker == "" {
		return "unknown"
	}
	return ticker
}
