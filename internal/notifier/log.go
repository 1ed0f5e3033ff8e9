package notifier

import (
	"context"

	logx "aocnotify/pkg/logx"
)

type logSender struct {
	log logx.Logger
}

// NewLog returns a sender that only logs the notification.
func NewLog(_ Config, log logx.Logger) (Sender, error) {
	return &logSender{log: log}, nil
}

func (s *logSender) Name() string { return "log" }

func (s *logSender) Send(_ context.Context, text string) error {
	s.log.Info("notification", logx.String("text", text))
	return nil
}
