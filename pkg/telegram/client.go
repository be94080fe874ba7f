package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tradewatch-io/signal-relay-gateway/pkg/metrics"
)

// Client is the Telegram Bot API implementation of Notifier. A client built
// without a usable token stays disabled: every send returns false without a
// network call.
type Client struct {
	bot           *tgbotapi.BotAPI
	chatID        int64
	triggerChatID int64
}

// Ensure Client implements Notifier
var _ Notifier = (*Client)(nil)

// NewClient creates a Telegram client for the configured destinations.
// A missing or rejected token disables the client instead of failing startup.
func NewClient(token string, chatID, triggerChatID int64) *Client {
	c := &Client{chatID: chatID, triggerChatID: triggerChatID}

	if token == "" {
		log.Warn("TELEGRAM_BOT_TOKEN not set, telegram notifications disabled")
		return c
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Warn(errors.Wrap(err, "could not create telegram bot, notifications disabled"))
		return c
	}
	c.bot = bot
	log.Infof("Telegram bot connected as @%s", bot.Self.UserName)
	return c
}

// Configured reports whether a bot credential is loaded.
func (c *Client) Configured() bool {
	return c.bot != nil
}

// SendMessage sends text to an explicit chat.
func (c *Client) SendMessage(chatID int64, text string) bool {
	if c.bot == nil || chatID == 0 {
		log.Debug("Telegram not configured, dropping message")
		return false
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := c.bot.Send(msg); err != nil {
		metrics.TelegramSendFailures.Inc()
		log.Warn(errors.Wrapf(err, "could not send telegram message to chat %d", chatID))
		return false
	}
	metrics.TelegramMessagesSent.Inc()
	return true
}

// SendToPrimary sends text to the primary notification chat.
func (c *Client) SendToPrimary(text string) bool {
	return c.SendMessage(c.chatID, text)
}

// SendToTriggerChannel sends text to the side channel watched by the
// companion automation process.
func (c *Client) SendToTriggerChannel(text string) bool {
	return c.SendMessage(c.triggerChatID, text)
}
