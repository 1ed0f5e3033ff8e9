package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	logx "aocnotify/pkg/logx"
)

type webhookSender struct {
	url  string
	http *http.Client
	log  logx.Logger
}

type webhookPayload struct {
	Content string `json:"content"`
}

// NewWebhook returns a sender that POSTs {"content": text} to cfg.WebhookURL.
func NewWebhook(cfg Config, log logx.Logger) (Sender, error) {
	u := strings.TrimSpace(cfg.WebhookURL)
	if u == "" {
		return nil, errors.New("webhook url is empty")
	}
	return &webhookSender{
		url:  u,
		http: &http.Client{Timeout: httpTimeout(cfg.HTTPTimeout)},
		log:  log,
	}, nil
}

func (s *webhookSender) Name() string { return "webhook" }

func (s *webhookSender) Send(ctx context.Context, text string) error {
	b, err := json.Marshal(webhookPayload{Content: text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook post failed: http=%d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	s.log.Debug("webhook delivered", logx.Int("status", resp.StatusCode), logx.Int("bytes", len(b)))
	return nil
}
