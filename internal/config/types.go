package config

import "time"

// Config is the process-wide configuration, loaded once at startup and passed
// explicitly into the components that need it.
type Config struct {
	// LeaderboardID is the private leaderboard id (ADVENT_OF_CODE_LEADERBOARD_ID).
	LeaderboardID string
	// SessionID is the adventofcode.com session cookie (do not log).
	SessionID string
	Year      int
	BaseURL   string

	// LoopSleep is the delay between runs. Zero means run once and exit.
	LoopSleep time.Duration
	// LoopSchedule optionally overrides LoopSleep with a cron expression or
	// interval (see package schedule).
	LoopSchedule string

	CacheFile   string
	HTTPTimeout time.Duration

	// Sender selects the notification sender by key ("webhook", "telegram", "discord", "log").
	Sender string
	// MaxContentLength caps a notification's length in characters.
	MaxContentLength int

	Webhook  WebhookConfig
	Telegram TelegramConfig
	Discord  DiscordConfig
	Message  MessageConfig
	Logging  LoggingConfig
}

type WebhookConfig struct {
	URL string
}

type TelegramConfig struct {
	Token      string // do not log
	ChatIDs    []string
	APIURL     string
	RatePerSec int
}

type DiscordConfig struct {
	WebhookURL string // embeds the webhook token; do not log
}

type MessageConfig struct {
	Template         string
	OverflowTemplate string
	PartEmojis       []string
}

type LoggingConfig struct {
	Level string
	File  string
}

// Looping reports whether the process should keep running after the first run.
func (c *Config) Looping() bool {
	return c.LoopSleep > 0 || c.LoopSchedule != ""
}
