package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultGatewayURL = "http://localhost:8080"

var tickers = []string{"BTCUSDT", "ETHUSDT", "SOLUSDT", "LINKUSDT"}

// main posts a handful of sample alerts at a running gateway: JSON objects
// as TradingView sends them, plus one raw-text body to exercise the
// plain-text fallback.
func main() {
	gatewayURL := getEnv("GATEWAY_URL", defaultGatewayURL)
	client := &http.Client{Timeout: 10 * time.Second}

	for i := 0; i < 3; i++ {
		ticker := tickers[rand.Intn(len(tickers))]
		alert := map[string]interface{}{
			"ticker":    ticker,
			"condition": "RSI crossing down 30",
			"price":     20000 + rand.Float64()*50000,
			"time":      time.Now().UTC().Format(time.RFC3339),
			"alert":     "oversold bounce",
		}
		body, err := json.Marshal(alert)
		if err != nil {
			logrus.Fatalf("Failed to marshal alert: %v", err)
		}
		post(client, gatewayURL+"/webhook", "application/json", body)
		time.Sleep(500 * time.Millisecond)
	}

	post(client, gatewayURL+"/webhook", "text/plain", []byte("manual note: watch BTC funding rates"))
}

func post(client *http.Client, url, contentType string, body []byte) {
	resp, err := client.Post(url, contentType, bytes.NewReader(body))
	if err != nil {
		logrus.Errorf("POST %s failed: %v", url, err)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("POST %s -> %d %s\n", url, resp.StatusCode, string(respBody))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
