package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// AlertsReceived counts inbound webhook alerts.
	AlertsReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tradewatch",
		Subsystem: "relay_gateway",
		Name:      "alerts_received_total",
		Help:      "The total number of alerts received on the webhook endpoint",
	})

	// RelaysTotal counts successful relays by delivery method.
	RelaysTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradewatch",
		Subsystem: "relay_gateway",
		Name:      "relays_total",
		Help:      "The total number of successfully relayed alerts per method",
	}, []string{"method"})

	// RelayFailures counts alerts whose relay failed on every strategy.
	RelayFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tradewatch",
		Subsystem: "relay_gateway",
		Name:      "relay_failures_total",
		Help:      "The total number of alerts that could not be relayed",
	})

	// TelegramMessagesSent counts delivered Telegram messages.
	TelegramMessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tradewatch",
		Subsystem: "relay_gateway",
		Name:      "telegram_messages_sent_total",
		Help:      "The total number of telegram messages delivered",
	})

	// TelegramSendFailures counts Telegram sends rejected by the API or the network.
	TelegramSendFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tradewatch",
		Subsystem: "relay_gateway",
		Name:      "telegram_send_failures_total",
		Help:      "The total number of failed telegram sends",
	})
)

func init() {
	prometheus.MustRegister(
		AlertsReceived,
		RelaysTotal,
		RelayFailures,
		TelegramMessagesSent,
		TelegramSendFailures,
	)
}
