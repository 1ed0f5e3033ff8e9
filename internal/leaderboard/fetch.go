package leaderboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	logx "aocnotify/pkg/logx"
)

// ErrUnauthorized means the session cookie was rejected (expired or wrong
// leaderboard). Upstream answers with a redirect or 4xx rather than JSON.
var ErrUnauthorized = errors.New("leaderboard: session rejected")

const (
	userAgent        = "aocnotify (leaderboard notifier)"
	maxResponseBytes = 16 << 20
)

// ClientConfig configures Client.
type ClientConfig struct {
	BaseURL       string // e.g. https://adventofcode.com
	LeaderboardID string
	SessionID     string
	Year          int
	Timeout       time.Duration
}

// Client fetches a private leaderboard over HTTP.
type Client struct {
	cfg  ClientConfig
	http *http.Client
	log  logx.Logger
}

func NewClient(cfg ClientConfig, log logx.Logger) *Client {
	if log.IsZero() {
		log = logx.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		log: log,
		http: &http.Client{
			Timeout: timeout,
			// A redirect means the session is not valid; don't follow it to the login page.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// PageURL is the human-facing leaderboard page.
func (c *Client) PageURL() string { return c.url("") }

// JSONURL is the leaderboard API endpoint.
func (c *Client) JSONURL() string { return c.url(".json") }

func (c *Client) url(ext string) string {
	return fmt.Sprintf("%s/%d/leaderboard/private/view/%s%s", c.cfg.BaseURL, c.cfg.Year, c.cfg.LeaderboardID, ext)
}

// Fetch retrieves and decodes the current leaderboard.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.JSONURL(), nil)
	if err != nil {
		return nil, err
	}
	req.AddCookie(&http.Cookie{Name: "session", Value: c.cfg.SessionID})
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden,
		resp.StatusCode >= 300 && resp.StatusCode < 400:
		return nil, fmt.Errorf("fetch leaderboard: http=%d: %w", resp.StatusCode, ErrUnauthorized)
	case resp.StatusCode/100 != 2:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch leaderboard: http=%d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("fetch leaderboard: empty response")
	}
	snap, err := Parse(body)
	if err != nil {
		return nil, err
	}

	c.log.Debug("leaderboard fetched",
		logx.Int("members", len(snap.Members)),
		logx.Int("bytes", len(body)),
		logx.Duration("took", time.Since(start)),
	)
	return snap, nil
}
