package schedule

import (
	"testing"
	"time"
)

func TestParseVariants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		raw      string
		kind     SpecKind
		source   string
		duration time.Duration
	}{
		{name: "cron", raw: "*/15 * * * *", kind: SpecCron, source: "cron"},
		{name: "prefixed cron", raw: "cron:0 0 1-25 12 *", kind: SpecCron, source: "cron"},
		{name: "descriptor", raw: "@hourly", kind: SpecCron, source: "cron"},
		{name: "duration", raw: "15m", kind: SpecInterval, source: "duration", duration: 15 * time.Minute},
		{name: "prefixed interval", raw: "interval:45s", kind: SpecInterval, source: "duration", duration: 45 * time.Second},
		{name: "every prefix", raw: "every:00:30", kind: SpecInterval, source: "hhmm", duration: 30 * time.Minute},
		{name: "hhmm", raw: "01:30", kind: SpecInterval, source: "hhmm", duration: 90 * time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.raw, err)
			}
			if got.Kind != tt.kind {
				t.Fatalf("Kind = %v, want %v", got.Kind, tt.kind)
			}
			if got.Source != tt.source {
				t.Fatalf("Source = %s, want %s", got.Source, tt.source)
			}
			if tt.kind == SpecInterval && got.Every != tt.duration {
				t.Fatalf("Every = %v, want %v", got.Every, tt.duration)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "not-a-schedule", "interval:-5m", "00:00", "cron:"} {
		if _, err := Parse(raw); err == nil {
			t.Errorf("Parse(%q): expected error", raw)
		}
	}
}

func TestParseHHMM(t *testing.T) {
	t.Parallel()
	h, m, err := parseHHMM("23:15")
	if err != nil {
		t.Fatalf("parseHHMM error: %v", err)
	}
	if h != 23 || m != 15 {
		t.Fatalf("unexpected result: %d:%d", h, m)
	}
	if _, _, err := parseHHMM("10:60"); err == nil {
		t.Fatal("expected error for invalid minutes")
	}
}

func TestResolveRunOnce(t *testing.T) {
	t.Parallel()
	s, err := Resolve(0, "", time.UTC)
	if err != nil || s != nil {
		t.Fatalf("Resolve(0, \"\") = %v, %v; want nil, nil", s, err)
	}
}

func TestResolveSleep(t *testing.T) {
	t.Parallel()
	s, err := Resolve(15*time.Minute, "", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	from := time.Date(2024, time.December, 1, 10, 0, 0, 0, time.UTC)
	if got := s.Next(from); !got.Equal(from.Add(15 * time.Minute)) {
		t.Fatalf("Next = %v", got)
	}
}

func TestResolveCronInLocation(t *testing.T) {
	t.Parallel()
	est := time.FixedZone("EST", -5*3600)
	// Every day at release time, five past midnight.
	s, err := Resolve(time.Hour, "5 0 * * *", est)
	if err != nil {
		t.Fatal(err)
	}
	from := time.Date(2024, time.December, 1, 12, 0, 0, 0, time.UTC)
	want := time.Date(2024, time.December, 2, 0, 5, 0, 0, est)
	if got := s.Next(from); !got.Equal(want) {
		t.Fatalf("Next = %v, want %v", got, want)
	}
}

func TestResolveBadCron(t *testing.T) {
	t.Parallel()
	if _, err := Resolve(0, "61 * * * *", time.UTC); err == nil {
		t.Fatal("expected error for invalid cron")
	}
}
