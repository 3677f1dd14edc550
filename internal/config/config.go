package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrEmptyToken = errors.New(
		"error getting RW_TELEGRAM_TOKEN: variable not specified or contains an empty string")
	ErrEmptyAnnounceChat = errors.New(
		"error getting RW_ANNOUNCE_CHAT_ID: variable not specified or is zero")
	ErrEmptyForwardChat = errors.New(
		"error getting RW_FORWARD_CHAT_ID: variable not specified or is zero")
)

type Config struct {
	Env         string // Env is the current environment: local, dev, prod.
	DataDir     string // DataDir holds snapshot files and derived pngs.
	StoragePath string // StoragePath is the sqlite history database file.
	Scraper     Scraper
	Tg          Telegram
}

type Telegram struct {
	Token        string        // Token is an unique telegram bot token.
	Timeout      time.Duration // Timeout is a poller timeout duration.
	AnnounceChat int64         // AnnounceChat receives notification cards.
	ForwardChat  int64         // ForwardChat receives forwarded cards.
	GateTimeout  time.Duration // GateTimeout bounds every action gate.
}

type Scraper struct {
	Command   string // Command is the external scraper executable.
	Converter string // Converter is the external image post-processor.
	Schedule  string // Schedule is the cron expression for daily scrapes.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("RW")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")
	viper.SetDefault("GATE_TIMEOUT", "60s")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("STORAGE_PATH", "data/renderwatch.db")
	viper.SetDefault("SCRAPER_CMD", "scraper")
	viper.SetDefault("CONVERTER_CMD", "tebown")
	viper.SetDefault("SCHEDULE", "0 0 * * *")

	if viper.GetString("TELEGRAM_TOKEN") == "" {
		panic(ErrEmptyToken)
	}
	if viper.GetInt64("ANNOUNCE_CHAT_ID") == 0 {
		panic(ErrEmptyAnnounceChat)
	}
	if viper.GetInt64("FORWARD_CHAT_ID") == 0 {
		panic(ErrEmptyForwardChat)
	}

	return &Config{
		Env:         viper.GetString("ENV"),
		DataDir:     viper.GetString("DATA_DIR"),
		StoragePath: viper.GetString("STORAGE_PATH"),
		Scraper: Scraper{
			Command:   viper.GetString("SCRAPER_CMD"),
			Converter: viper.GetString("CONVERTER_CMD"),
			Schedule:  viper.GetString("SCHEDULE"),
		},
		Tg: Telegram{
			Token:        viper.GetString("TELEGRAM_TOKEN"),
			Timeout:      viper.GetDuration("TELEGRAM_TIMEOUT"),
			AnnounceChat: viper.GetInt64("ANNOUNCE_CHAT_ID"),
			ForwardChat:  viper.GetInt64("FORWARD_CHAT_ID"),
			GateTimeout:  viper.GetDuration("GATE_TIMEOUT"),
		},
	}
}
