package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tradewatch-io/signal-relay-gateway/pkg/models"
)

// AlertLogger persists one pretty-printed JSON file per inbound alert. The
// log directory is created once at construction; files are never rotated or
// consolidated.
type AlertLogger struct {
	dir string
}

// NewAlertLogger creates the alert logger and its target directory.
func NewAlertLogger(dir string) (*AlertLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "could not create alert log directory %s", dir)
	}
	return &AlertLogger{dir: dir}, nil
}

// Dir returns the log directory path.
func (l *AlertLogger) Dir() string {
	return l.dir
}

// Persist writes the log entry for one alert and returns the file path.
// The filename carries a nanosecond timestamp plus a short unique suffix, so
// two alerts for the same ticker in the same instant get distinct files.
func (l *AlertLogger) Persist(alert models.Alert, result models.RelayResult) (string, error) {
	entry := models.LogEntry{
		Timestamp: time.Now().UTC(),
		Alert:     alert,
		Analysis:  result,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshal alert log entry")
	}

	name := fmt.Sprintf("%s_%s_%s_analysis.json",
		sanitizeStamp(entry.Timestamp),
		sanitizeTicker(alert.Ticker()),
		uuid.NewString()[:8],
	)
	path := filepath.Join(l.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "write alert log %s", path)
	}
	return path, nil
}

// sanitizeStamp makes an RFC3339Nano timestamp filesystem safe.
func sanitizeStamp(t time.Time) string {
	return strings.NewReplacer(":", "-", ".", "-").Replace(t.Format(time.RFC3339Nano))
}

func sanitizeTicker(ticker string) string {
	if ticker == "" {
		return "unknown"
	}
	var b strings.Builder
	for _, r := range ticker {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
