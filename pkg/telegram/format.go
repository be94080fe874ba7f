package telegram

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tradewatch-io/signal-relay-gateway/pkg/models"
)

// Placeholder rendered for any missing alert or analysis field.
const Placeholder = "n/a"

// FormatAnalysisMessage renders one alert and its optional analysis result
// as a plain-text Telegram message. Section order is fixed: header, setup,
// indicators, recommendation. Formatting never fails on missing data; every
// absent field falls back to Placeholder.
func FormatAnalysisMessage(alert models.Alert, analysis models.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 %s | %s\n", orPlaceholder(alert.Ticker()), orPlaceholder(alert.Condition()))
	fmt.Fprintf(&b, "Price: %s\n", orPlaceholder(alert.Price()))
	fmt.Fprintf(&b, "Time: %s\n", orPlaceholder(alert.Time()))

	if analysis == nil {
		b.WriteString("\n⏳ Analysis pending.")
		return b.String()
	}

	if setup := analysis.Setup(); setup != nil {
		fmt.Fprintf(&b, "\n🎯 Setup: %s\n", field(setup, "type"))
		fmt.Fprintf(&b, "Entry: %s | Stop: %s\n", field(setup, "entry"), field(setup, "stop"))
		fmt.Fprintf(&b, "TP1: %s | TP2: %s | TP3: %s\n", field(setup, "tp1"), field(setup, "tp2"), field(setup, "tp3"))
		fmt.Fprintf(&b, "R/R: %s | Win rate: %s\n", field(setup, "riskReward"), field(setup, "winRate"))
	} else {
		b.WriteString("\n⚠️ No setup detected.\n")
	}

	if indicators := analysis.Indicators(); len(indicators) > 0 {
		b.WriteString("\n📈 Indicators\n")
		keys := make([]string, 0, len(indicators))
		for k := range indicators {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", k, formatValue(indicators[k]))
		}
	}

	if rec := analysis.Recommendation(); rec != "" {
		fmt.Fprintf(&b, "\n💡 %s\n", rec)
	}

	return strings.TrimRight(b.String(), "\n")
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

func field(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return Placeholder
	}
	return orPlaceholder(formatValue(v))
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
