package models

import "time"

// Relay methods reported in RelayResult.Method.
const (
	RelayMethodHTTPTrigger     = "http_trigger"
	RelayMethodMessageFallback = "message_fallback"
)

// RelayResult records the outcome of forwarding one alert downstream.
type RelayResult struct {
	Relayed bool   `json:"relayed"`
	Prompt  string `json:"prompt,omitempty"`
	Ticker  string `json:"ticker,omitempty"`
	Method  string `json:"method,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LogEntry is the on-disk record written for every inbound alert, one file
// per alert.
type LogEntry struct {
	Timestamp time.Time   `json:"timestamp"`
	Alert     Alert       `json:"alert"`
	Analysis  RelayResult `json:"analysis"`
}
