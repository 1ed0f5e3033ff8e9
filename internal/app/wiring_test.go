package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"aocnotify/internal/config"
)

const leaderboardJSON = `{
  "event": "2023",
  "owner_id": 1,
  "members": {
    "1": {"id": 1, "name": "alice", "stars": 1, "local_score": 1, "global_score": 0, "last_star_ts": 1701406865,
          "completion_day_level": {"1": {"1": {"get_star_ts": 1701406865, "star_index": 10}}}},
    "2": {"id": 2, "name": null, "stars": 0, "local_score": 0, "global_score": 0, "last_star_ts": 0,
          "completion_day_level": {}}
  }
}`

func TestNewWiresWebhookEndToEnd(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var posted []string
	var cookie string

	mux := http.NewServeMux()
	mux.HandleFunc("/2023/leaderboard/private/view/99.json", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil {
			mu.Lock()
			cookie = c.Value
			mu.Unlock()
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(leaderboardJSON))
	})
	mux.HandleFunc("/hook", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mu.Lock()
		posted = append(posted, body.Content)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cache := filepath.Join(t.TempDir(), "cache.json")
	env := map[string]string{
		config.EnvLeaderboardID: "99",
		config.EnvSessionID:     "s3cret",
		config.EnvYear:          "2023",
		config.EnvBaseURL:       srv.URL,
		config.EnvWebhookURL:    srv.URL + "/hook",
		config.EnvCacheFile:     cache,
		config.EnvLogLevel:      "ERROR",
	}
	cfg, err := config.Load(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}, time.Date(2023, time.December, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = a.Close() }()

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if cookie != "s3cret" {
		t.Fatalf("session cookie=%q", cookie)
	}
	if len(posted) != 1 || !strings.HasPrefix(posted[0], "alice solved day 1 part 1") || !strings.HasSuffix(posted[0], "after 00:01:05") {
		t.Fatalf("posted %q", posted)
	}
	if _, err := os.Stat(cache); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
}

func TestNewRejectsBadTemplate(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		config.EnvLeaderboardID:   "99",
		config.EnvSessionID:       "s",
		config.EnvWebhookURL:      "http://127.0.0.1/hook",
		config.EnvMessageTemplate: "{member} {nope}",
		config.EnvLogLevel:        "ERROR",
		config.EnvCacheFile:       filepath.Join(t.TempDir(), "cache.json"),
	}
	cfg, err := config.Load(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}, time.Now())
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if _, err := New(cfg); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("err=%v, want unknown placeholder error", err)
	}
}
