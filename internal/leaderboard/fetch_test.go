package leaderboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	logx "aocnotify/pkg/logx"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{
		BaseURL:       srv.URL + "/",
		LeaderboardID: "12345",
		SessionID:     "s3cr3t",
		Year:          2023,
		Timeout:       5 * time.Second,
	}, logx.Nop())
}

func TestClientURLs(t *testing.T) {
	t.Parallel()
	c := NewClient(ClientConfig{BaseURL: "https://adventofcode.com/", LeaderboardID: "99", Year: 2022}, logx.Nop())
	if got, want := c.JSONURL(), "https://adventofcode.com/2022/leaderboard/private/view/99.json"; got != want {
		t.Fatalf("JSONURL = %q, want %q", got, want)
	}
	if got, want := c.PageURL(), "https://adventofcode.com/2022/leaderboard/private/view/99"; got != want {
		t.Fatalf("PageURL = %q, want %q", got, want)
	}
}

func TestFetchSendsSessionCookie(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2023/leaderboard/private/view/12345.json" {
			http.NotFound(w, r)
			return
		}
		ck, err := r.Cookie("session")
		if err != nil || ck.Value != "s3cr3t" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"event":"2023","members":{"7":{"id":7,"name":"bob","completion_day_level":{"1":{"1":{"get_star_ts":1000}}}}}}`))
	})

	snap, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if snap.MemberName("7") != "bob" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if len(snap.Raw) == 0 {
		t.Fatal("Raw should be retained")
	}
}

func TestFetchRedirectIsUnauthorized(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/2023/leaderboard/private", http.StatusFound)
	})
	_, err := c.Fetch(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestFetchServerError(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})
	_, err := c.Fetch(context.Background())
	if err == nil || errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want non-auth error", err)
	}
}

func TestFetchBadJSON(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFetchEmptyBody(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for empty body")
	}
}
