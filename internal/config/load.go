package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment variable names.
const (
	EnvConfigFile       = "CONFIG_FILE"
	EnvLeaderboardID    = "ADVENT_OF_CODE_LEADERBOARD_ID"
	EnvSessionID        = "ADVENT_OF_CODE_SESSION_ID"
	EnvYear             = "ADVENT_OF_CODE_YEAR"
	EnvBaseURL          = "ADVENT_OF_CODE_BASE_URL"
	EnvLoopSleepSeconds = "LOOP_SLEEP_SECONDS"
	EnvLoopSchedule     = "LOOP_SCHEDULE"
	EnvCacheFile        = "CACHE_FILE"
	EnvHTTPTimeout      = "HTTP_TIMEOUT"
	EnvSender           = "NOTIFICATION_SENDER"
	EnvMaxContentLength = "WEBHOOK_MAX_CONTENT_LENGTH"
	EnvWebhookURL       = "WEBHOOK_URL"
	EnvTelegramToken    = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatIDs  = "TELEGRAM_CHAT_IDS"
	EnvTelegramAPIURL   = "TELEGRAM_API_URL"
	EnvTelegramRate     = "TELEGRAM_RATE_PER_SEC"
	EnvDiscordWebhook   = "DISCORD_WEBHOOK_URL"
	EnvMessageTemplate  = "MESSAGE_TEMPLATE"
	EnvOverflowTemplate = "OVERFLOW_TEMPLATE"
	EnvPartEmojis       = "PART_EMOJIS"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFile          = "LOG_FILE"
)

// Defaults.
const (
	DefaultBaseURL          = "https://adventofcode.com"
	DefaultCacheFile        = "./cache.json"
	DefaultHTTPTimeout      = 30 * time.Second
	DefaultSender           = "webhook"
	DefaultMaxContentLength = 2000
	DefaultTelegramAPIURL   = "https://api.telegram.org"
	DefaultTelegramRate     = 20
	DefaultMessageTemplate  = "{member} solved day {day} part {part} {part_emoji} after {after}"
	DefaultOverflowTemplate = "The diff is too big, check the leaderboard: {url}"
	DefaultPartEmojis       = "⭐,🌟"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnv loads the configuration from the process environment.
func LoadEnv() (*Config, error) {
	return Load(os.LookupEnv, time.Now())
}

// Load builds a Config from lookup, falling back to the optional CONFIG_FILE
// and then to defaults. now drives the default year.
//
// All problems are reported together; a non-nil error means the process must
// not start.
func Load(lookup LookupFunc, now time.Time) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	src := source{env: lookup}
	if path, ok := lookup(EnvConfigFile); ok && strings.TrimSpace(path) != "" {
		m, err := readFile(strings.TrimSpace(path))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvConfigFile, err)
		}
		src.file = m
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	cfg := &Config{
		LeaderboardID: src.get(EnvLeaderboardID),
		SessionID:     src.get(EnvSessionID),
		BaseURL:       strings.TrimRight(src.getOr(EnvBaseURL, DefaultBaseURL), "/"),
		LoopSchedule:  src.get(EnvLoopSchedule),
		CacheFile:     src.getOr(EnvCacheFile, DefaultCacheFile),
		Sender:        strings.ToLower(src.getOr(EnvSender, DefaultSender)),
		Webhook:       WebhookConfig{URL: src.get(EnvWebhookURL)},
		Telegram: TelegramConfig{
			Token:   src.get(EnvTelegramToken),
			ChatIDs: splitList(src.get(EnvTelegramChatIDs)),
			APIURL:  strings.TrimRight(src.getOr(EnvTelegramAPIURL, DefaultTelegramAPIURL), "/"),
		},
		Discord: DiscordConfig{WebhookURL: src.get(EnvDiscordWebhook)},
		Message: MessageConfig{
			Template:         src.getRawOr(EnvMessageTemplate, DefaultMessageTemplate),
			OverflowTemplate: src.getRawOr(EnvOverflowTemplate, DefaultOverflowTemplate),
			PartEmojis:       splitList(src.getOr(EnvPartEmojis, DefaultPartEmojis)),
		},
		Logging: LoggingConfig{
			Level: src.getOr(EnvLogLevel, "INFO"),
			File:  src.get(EnvLogFile),
		},
	}

	if cfg.LeaderboardID == "" {
		collect(fmt.Errorf("%s missing", EnvLeaderboardID))
	}
	if cfg.SessionID == "" {
		collect(fmt.Errorf("%s missing", EnvSessionID))
	}

	var err error
	cfg.Year, err = ParseIntOrDefault(EnvYear, src.get(EnvYear), DefaultYear(now))
	collect(err)
	if err == nil && cfg.Year < 2015 {
		collect(fmt.Errorf("%s: %d is before the first event (2015)", EnvYear, cfg.Year))
	}

	cfg.LoopSleep, err = ParseSecondsField(EnvLoopSleepSeconds, src.get(EnvLoopSleepSeconds))
	collect(err)

	cfg.HTTPTimeout, err = ParseDurationOrDefault(EnvHTTPTimeout, src.get(EnvHTTPTimeout), DefaultHTTPTimeout)
	collect(err)

	cfg.MaxContentLength, err = ParseIntOrDefault(EnvMaxContentLength, src.get(EnvMaxContentLength), DefaultMaxContentLength)
	collect(err)
	if err == nil && cfg.MaxContentLength <= 0 {
		collect(fmt.Errorf("%s must be > 0", EnvMaxContentLength))
	}

	cfg.Telegram.RatePerSec, err = ParseIntOrDefault(EnvTelegramRate, src.get(EnvTelegramRate), DefaultTelegramRate)
	collect(err)
	if cfg.Telegram.RatePerSec <= 0 {
		cfg.Telegram.RatePerSec = DefaultTelegramRate
	}

	switch cfg.Sender {
	case "webhook":
		if cfg.Webhook.URL == "" {
			collect(fmt.Errorf("%s missing", EnvWebhookURL))
		}
	case "telegram":
		if cfg.Telegram.Token == "" {
			collect(fmt.Errorf("%s missing, ask @BotFather for it", EnvTelegramToken))
		}
		if len(cfg.Telegram.ChatIDs) == 0 {
			collect(fmt.Errorf("%s missing, a comma-separated list of chat ids is expected", EnvTelegramChatIDs))
		}
	case "discord":
		if cfg.Discord.WebhookURL == "" {
			collect(fmt.Errorf("%s missing", EnvDiscordWebhook))
		}
	default:
		// Unknown keys are rejected by the notifier registry, which knows the full list.
	}

	if strings.TrimSpace(cfg.Message.Template) == "" {
		collect(fmt.Errorf("%s must not be empty", EnvMessageTemplate))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// DefaultYear is the current year during December, otherwise the previous one.
func DefaultYear(now time.Time) int {
	if now.Month() == time.December {
		return now.Year()
	}
	return now.Year() - 1
}

type source struct {
	env  LookupFunc
	file map[string]string
}

func (s source) getRaw(key string) (string, bool) {
	if v, ok := s.env(key); ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	if v, ok := s.file[key]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	return "", false
}

func (s source) get(key string) string {
	v, _ := s.getRaw(key)
	return strings.TrimSpace(v)
}

func (s source) getOr(key, def string) string {
	if v := s.get(key); v != "" {
		return v
	}
	return def
}

// getRawOr keeps surrounding whitespace (templates).
func (s source) getRawOr(key, def string) string {
	if v, ok := s.getRaw(key); ok {
		return v
	}
	return def
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
