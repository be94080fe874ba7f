package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the application configuration. It is loaded once at startup
// and passed explicitly to every component; nothing reads it after that.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Relay    RelayConfig    `mapstructure:"relay"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Port            string `mapstructure:"port"`
	ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
}

// TelegramConfig holds the Telegram bot credentials and destinations.
// ChatID is the primary notification chat; TriggerChatID is the side
// channel watched by the companion automation process.
type TelegramConfig struct {
	BotToken      string `mapstructure:"botToken"`
	ChatID        int64  `mapstructure:"chatID"`
	TriggerChatID int64  `mapstructure:"triggerChatID"`
}

// RelayConfig holds the companion trigger endpoint settings.
type RelayConfig struct {
	TriggerURL string `mapstructure:"triggerURL"`
}

// AlertsConfig holds the alert log settings.
type AlertsConfig struct {
	LogDir string `mapstructure:"logDir"`
}

// LoadConfig loads the application configuration from file or environment variables
func LoadConfig(configPath string) (*Config, error) {
	var config Config

	// Set default values
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.shutdownTimeout", 10)
	viper.SetDefault("telegram.botToken", "")
	viper.SetDefault("telegram.chatID", 0)
	viper.SetDefault("telegram.triggerChatID", 0)
	viper.SetDefault("relay.triggerURL", "")
	viper.SetDefault("alerts.logDir", "./alert-logs")

	// Allow environment variables to override config file
	viper.SetEnvPrefix("RELAY")
	viper.AutomaticEnv()

	// Conventional unprefixed names used by the deployment platform
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("telegram.botToken", "TELEGRAM_BOT_TOKEN")
	viper.BindEnv("telegram.chatID", "TELEGRAM_CHAT_ID")
	viper.BindEnv("telegram.triggerChatID", "TELEGRAM_TRIGGER_CHAT_ID")
	viper.BindEnv("relay.triggerURL", "TRIGGER_URL")
	viper.BindEnv("alerts.logDir", "ALERT_LOG_DIR")

	// If config file is provided, read it
	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			logrus.Warnf("Error reading config file: %v", err)
		}
	}

	// Unmarshal config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
