package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"aocnotify/internal/config"
	"aocnotify/internal/leaderboard"
	"aocnotify/internal/message"
	"aocnotify/internal/notifier"
	"aocnotify/internal/schedule"
	"aocnotify/internal/storage"
	logx "aocnotify/pkg/logx"
	"aocnotify/pkg/systemd"
)

// Fetcher retrieves the current leaderboard.
type Fetcher interface {
	Fetch(ctx context.Context) (*leaderboard.Snapshot, error)
}

// App wires fetch -> diff -> format -> send -> persist.
type App struct {
	log  logx.Logger
	logs *logx.Service

	fetcher   Fetcher
	store     storage.Store
	formatter *message.Formatter
	sender    notifier.Sender

	// sched is nil in run-once mode.
	sched cron.Schedule

	sd  *systemd.Notifier
	now func() time.Time
}

// deps are the collaborators of an App; tests pass fakes.
type deps struct {
	Log       logx.Logger
	Fetcher   Fetcher
	Store     storage.Store
	Formatter *message.Formatter
	Sender    notifier.Sender
	Schedule  cron.Schedule
}

// New builds the application from cfg. Every configuration problem surfaces
// here, before the first run.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}

	logSvc, log := logx.New(mapLogConfig(cfg))
	log.Info("configuration loaded", append(cfg.LogFields(), logx.Bool("loop", cfg.Looping()))...)

	client := leaderboard.NewClient(leaderboard.ClientConfig{
		BaseURL:       cfg.BaseURL,
		LeaderboardID: cfg.LeaderboardID,
		SessionID:     cfg.SessionID,
		Year:          cfg.Year,
		Timeout:       cfg.HTTPTimeout,
	}, log.With(logx.String("comp", "leaderboard")))

	fail := func(err error) (*App, error) {
		_ = logSvc.Close()
		return nil, err
	}

	formatter, err := message.New(message.Config{
		Year:             cfg.Year,
		Template:         cfg.Message.Template,
		OverflowTemplate: cfg.Message.OverflowTemplate,
		PartEmojis:       cfg.Message.PartEmojis,
		MaxContentLength: cfg.MaxContentLength,
		LeaderboardURL:   client.PageURL(),
	})
	if err != nil {
		return fail(fmt.Errorf("message template: %w", err))
	}

	sched, err := schedule.Resolve(cfg.LoopSleep, cfg.LoopSchedule, message.ReleaseZone)
	if err != nil {
		return fail(fmt.Errorf("%s: %w", config.EnvLoopSchedule, err))
	}

	sender, err := notifier.New(cfg.Sender, mapNotifierConfig(cfg), log.With(logx.String("comp", "notifier")))
	if err != nil {
		return fail(err)
	}

	store, err := storage.Open(storage.Config{Driver: "file", Path: cfg.CacheFile}, log.With(logx.String("comp", "storage")))
	if err != nil {
		notifier.Close(context.Background(), sender)
		return fail(err)
	}

	a := newApp(deps{
		Log:       log.With(logx.String("comp", "app")),
		Fetcher:   client,
		Store:     store,
		Formatter: formatter,
		Sender:    sender,
		Schedule:  sched,
	})
	a.logs = logSvc
	a.sd = systemd.New()
	return a, nil
}

func newApp(d deps) *App {
	log := d.Log
	if log.IsZero() {
		log = logx.Nop()
	}
	return &App{
		log:       log,
		fetcher:   d.Fetcher,
		store:     d.Store,
		formatter: d.Formatter,
		sender:    d.Sender,
		sched:     d.Schedule,
		now:       time.Now,
	}
}

// Close releases the store, sender and log sinks.
func (a *App) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.sender != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		notifier.Close(ctx, a.sender)
		cancel()
	}
	if a.logs != nil {
		errs = append(errs, a.logs.Close())
	}
	return errors.Join(errs...)
}

func mapLogConfig(cfg *config.Config) logx.Config {
	return logx.Config{
		Level:   cfg.Logging.Level,
		Console: true,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File != "",
			Path:    cfg.Logging.File,
		},
	}
}

func mapNotifierConfig(cfg *config.Config) notifier.Config {
	return notifier.Config{
		HTTPTimeout:        cfg.HTTPTimeout,
		WebhookURL:         cfg.Webhook.URL,
		TelegramToken:      cfg.Telegram.Token,
		TelegramChatIDs:    cfg.Telegram.ChatIDs,
		TelegramAPIURL:     cfg.Telegram.APIURL,
		TelegramRatePerSec: cfg.Telegram.RatePerSec,
		DiscordWebhookURL:  cfg.Discord.WebhookURL,
	}
}
