package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Alert is an inbound trading signal payload. The upstream source is not
// bound to a schema, so the payload stays an open map and well-known fields
// are read through accessors that tolerate absence and wrong types.
type Alert map[string]interface{}

// ParseAlert decodes a webhook body into an Alert. Bodies that are not a
// JSON object are kept as-is, wrapped under the "message" key, so no inbound
// payload is ever rejected.
func ParseAlert(body []byte) Alert {
	var alert Alert
	if err := json.Unmarshal(body, &alert); err == nil && alert != nil {
		return alert
	}
	return Alert{"message": strings.TrimSpace(string(body))}
}

// StampReceived attaches the receipt timestamp. Called exactly once, before
// the alert is handed to the relay pipeline.
func (a Alert) StampReceived(t time.Time) {
	a["receivedAt"] = t.UTC().Format(time.RFC3339Nano)
}

func (a Alert) stringField(keys ...string) string {
	for _, k := range keys {
		if s, ok := a[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Ticker returns the instrument symbol, or "" when absent.
func (a Alert) Ticker() string {
	return a.stringField("ticker", "symbol")
}

// Condition returns the alert condition text, or "" when absent.
func (a Alert) Condition() string {
	return a.stringField("condition", "alert")
}

// Price returns the price field rendered as text, or "" when absent.
// TradingView sends prices as either strings or JSON numbers.
func (a Alert) Price() string {
	switch v := a["price"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	}
	return ""
}

// Prompt returns an explicit relay prompt carried on the alert, or "" when
// the dispatcher should synthesize one.
func (a Alert) Prompt() string {
	return a.stringField("message", "prompt")
}

// Time returns the alert's own timestamp field, falling back to the receipt
// timestamp, or "" when neither is present.
func (a Alert) Time() string {
	return a.stringField("time", "receivedAt")
}
