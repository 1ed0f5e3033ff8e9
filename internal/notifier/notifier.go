package notifier

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	logx "aocnotify/pkg/logx"
)

// ErrAllFailed is returned by multi-destination senders when no destination
// accepted the message.
var ErrAllFailed = errors.New("notifier: every destination failed")

// Sender delivers text to one channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, text string) error
}

// Config holds the credentials of every sender; only the selected one is read.
type Config struct {
	HTTPTimeout time.Duration

	WebhookURL string

	TelegramToken      string
	TelegramChatIDs    []string
	TelegramAPIURL     string
	TelegramRatePerSec int

	DiscordWebhookURL string
}

// Factory builds a sender from cfg.
type Factory func(cfg Config, log logx.Logger) (Sender, error)

var factories = map[string]Factory{
	"webhook":  NewWebhook,
	"telegram": NewTelegram,
	"discord":  NewDiscord,
	"log":      NewLog,
}

// Names lists the known sender keys, sorted.
func Names() []string {
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// New builds the sender registered under name.
func New(name string, cfg Config, log logx.Logger) (Sender, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	f, ok := factories[key]
	if !ok {
		return nil, fmt.Errorf("unknown notification sender %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	s, err := f(cfg, log.With(logx.String("sender", key)))
	if err != nil {
		return nil, fmt.Errorf("sender %s: %w", key, err)
	}
	return s, nil
}

// Close releases sender resources when the sender holds any.
func Close(ctx context.Context, s Sender) {
	if c, ok := s.(interface{ Close(context.Context) }); ok {
		c.Close(ctx)
	}
}

func httpTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}
