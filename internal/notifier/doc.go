// Package notifier delivers a formatted notification to an external channel.
//
// Every channel implements Sender. The concrete sender is picked once at
// startup by key (see New), so the run loop never depends on a specific
// messaging platform.
//
// # Senders
//
//   - "webhook": generic JSON webhook ({"content": text}), e.g. Slack/Discord-compatible endpoints
//   - "telegram": Telegram Bot API broadcast to one or more chats
//   - "discord": Discord webhook through disgo
//   - "log": writes the text to the logger only (dry run)
package notifier
