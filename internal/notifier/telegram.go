package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"

	logx "aocnotify/pkg/logx"
)

const telegramTextLimit = 4000

// chatRef addresses a chat by numeric id ("-100123") or public username ("@channel").
type chatRef string

func (c chatRef) Recipient() string { return string(c) }

type telegramSender struct {
	bot     *tele.Bot
	chats   []chatRef
	limiter *rate.Limiter
	log     logx.Logger
}

// BroadcastResult summarizes one Telegram fan-out.
type BroadcastResult struct {
	Total    int
	Failed   int
	Failures []string
	Took     time.Duration
}

// NewTelegram returns a sender that broadcasts to every chat in cfg.TelegramChatIDs.
func NewTelegram(cfg Config, log logx.Logger) (Sender, error) {
	token := strings.TrimSpace(cfg.TelegramToken)
	if token == "" {
		return nil, errors.New("telegram token is empty")
	}
	chats := make([]chatRef, 0, len(cfg.TelegramChatIDs))
	for _, id := range cfg.TelegramChatIDs {
		if id = strings.TrimSpace(id); id != "" {
			chats = append(chats, chatRef(id))
		}
	}
	if len(chats) == 0 {
		return nil, errors.New("telegram chat id list is empty")
	}

	apiURL := strings.TrimRight(strings.TrimSpace(cfg.TelegramAPIURL), "/")
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}
	// Offline: we only send, so skip the getMe round trip at startup.
	b, err := tele.NewBot(tele.Settings{
		URL:     apiURL,
		Token:   token,
		Client:  &http.Client{Timeout: httpTimeout(cfg.HTTPTimeout)},
		Offline: true,
	})
	if err != nil {
		return nil, err
	}

	rps := cfg.TelegramRatePerSec
	if rps <= 0 {
		rps = 20
	}
	return &telegramSender{
		bot:     b,
		chats:   chats,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		log:     log,
	}, nil
}

func (s *telegramSender) Name() string { return "telegram" }

// Send delivers text to every chat. A failing chat is logged and skipped;
// the error is non-nil only when no chat received the message.
func (s *telegramSender) Send(ctx context.Context, text string) error {
	res, last := s.broadcast(ctx, text)

	fields := []logx.Field{
		logx.Int("total", res.Total),
		logx.Int("failed", res.Failed),
		logx.Duration("dur", res.Took),
	}
	if res.Failed > 0 {
		s.log.Warn("telegram broadcast finished with failures", append(fields, logx.Strs("failures", res.Failures))...)
	} else {
		s.log.Debug("telegram broadcast finished", fields...)
	}

	if res.Failed == res.Total {
		return fmt.Errorf("telegram: %w", errors.Join(ErrAllFailed, last))
	}
	return nil
}

func (s *telegramSender) broadcast(ctx context.Context, text string) (BroadcastResult, error) {
	start := time.Now()
	res := BroadcastResult{Total: len(s.chats)}
	var last error
	for i, chat := range s.chats {
		if err := ctx.Err(); err != nil {
			// Remaining chats would fail the same way.
			for _, rest := range s.chats[i:] {
				res.Failed++
				res.Failures = append(res.Failures, string(rest))
			}
			last = err
			break
		}
		if err := s.sendOne(ctx, chat, text); err != nil {
			last = err
			res.Failed++
			res.Failures = append(res.Failures, string(chat))
			s.log.Warn("failed to send notification to chat", logx.String("chat_id", string(chat)), logx.Err(err))
		}
	}
	res.Took = time.Since(start)
	return res, last
}

func (s *telegramSender) sendOne(ctx context.Context, chat chatRef, text string) error {
	for _, chunk := range splitTelegramText(text, telegramTextLimit) {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		if _, err := s.bot.Send(chat, chunk, &tele.SendOptions{DisableWebPagePreview: true}); err != nil {
			return err
		}
	}
	return nil
}

// splitTelegramText splits long messages into chunks Telegram accepts,
// preferring newline boundaries.
func splitTelegramText(s string, limit int) []string {
	if limit <= 0 {
		limit = telegramTextLimit
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return []string{s}
	}

	out := make([]string, 0, (len(rs)+limit-1)/limit)
	start := 0
	for start < len(rs) {
		end := start + limit
		if end > len(rs) {
			end = len(rs)
		}

		// Prefer splitting on a newline near the end of the window.
		if end < len(rs) {
			for i := end - 1; i > start; i-- {
				// Avoid extremely small chunks.
				if rs[i] == '\n' && i-start >= limit/3 {
					end = i + 1
					break
				}
			}
		}

		out = append(out, strings.TrimRight(string(rs[start:end]), "\n"))

		start = end
		for start < len(rs) && rs[start] == '\n' {
			start++
		}
	}
	return out
}
