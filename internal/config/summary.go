package config

import (
	"strings"

	logx "aocnotify/pkg/logx"
)

// LogFields returns safe structured attrs describing cfg.
// Secrets (session cookie, bot token, webhook URLs) are never included.
func (c *Config) LogFields() []logx.Field {
	if c == nil {
		return nil
	}
	return []logx.Field{
		logx.String("leaderboard_id", c.LeaderboardID),
		logx.Int("year", c.Year),
		logx.String("base_url", c.BaseURL),
		logx.Duration("loop_sleep", c.LoopSleep),
		logx.String("loop_schedule", c.LoopSchedule),
		logx.String("cache_file", c.CacheFile),
		logx.String("sender", c.Sender),
		logx.Int("max_content_length", c.MaxContentLength),
		logx.Int("telegram_chats", len(c.Telegram.ChatIDs)),
		logx.Bool("webhook_url_set", strings.TrimSpace(c.Webhook.URL) != ""),
		logx.Bool("discord_webhook_set", strings.TrimSpace(c.Discord.WebhookURL) != ""),
	}
}
