package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/disgo/webhook"

	logx "aocnotify/pkg/logx"
)

type discordSender struct {
	client webhook.Client
	log    logx.Logger
}

// NewDiscord returns a sender posting through a Discord webhook
// (https://discord.com/api/webhooks/<id>/<token>).
func NewDiscord(cfg Config, log logx.Logger) (Sender, error) {
	u := strings.TrimSpace(cfg.DiscordWebhookURL)
	if u == "" {
		return nil, errors.New("discord webhook url is empty")
	}
	client, err := webhook.NewWithURL(u)
	if err != nil {
		return nil, fmt.Errorf("discord webhook url: %w", err)
	}
	return &discordSender{client: client, log: log}, nil
}

func (s *discordSender) Name() string { return "discord" }

func (s *discordSender) Send(ctx context.Context, text string) error {
	msg, err := s.client.CreateContent(text, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("discord webhook: %w", err)
	}
	s.log.Debug("discord webhook delivered", logx.String("message_id", msg.ID.String()))
	return nil
}

func (s *discordSender) Close(ctx context.Context) {
	s.client.Close(ctx)
}
