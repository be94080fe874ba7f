package telegram

// Notifier delivers formatted text to Telegram destinations.
// Sends are best-effort: every failure is logged and reported as a false
// return, never as an error. This allows us to mock the notifier for testing.
type Notifier interface {
	// SendMessage sends text to an explicit chat.
	SendMessage(chatID int64, text string) bool
	// SendToPrimary sends text to the primary notification chat.
	SendToPrimary(text string) bool
	// SendToTriggerChannel sends text to the side channel watched by the
	// companion automation process.
	SendToTriggerChannel(text string) bool
	// Configured reports whether a bot credential is loaded.
	Configured() bool
}
