// Package message renders completion events into notification text.
package message

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"aocnotify/internal/leaderboard"
)

// Placeholders available in the per-event template.
const (
	FieldMember    = "member"
	FieldMemberID  = "member_id"
	FieldDay       = "day"
	FieldPart      = "part"
	FieldPartEmoji = "part_emoji"
	FieldMMSS      = "mmss"
	FieldAfter     = "after"

	// FieldURL is only available in the overflow template.
	FieldURL = "url"
)

var eventFields = []string{FieldMember, FieldMemberID, FieldDay, FieldPart, FieldPartEmoji, FieldMMSS, FieldAfter}

// Config configures a Formatter.
type Config struct {
	Year             int
	Template         string
	OverflowTemplate string
	PartEmojis       []string
	// MaxContentLength caps the rendered batch, in characters. <= 0 disables the cap.
	MaxContentLength int
	// LeaderboardURL is the human leaderboard page, linked when a batch is too long.
	LeaderboardURL string
}

// Formatter turns completion events into notification lines.
type Formatter struct {
	cfg      Config
	line     *Template
	overflow *Template
}

// New compiles the templates in cfg.
func New(cfg Config) (*Formatter, error) {
	if strings.TrimSpace(cfg.Template) == "" {
		return nil, errors.New("message template is empty")
	}
	line, err := Compile(cfg.Template, eventFields...)
	if err != nil {
		return nil, err
	}
	overflow, err := Compile(cfg.OverflowTemplate, FieldURL)
	if err != nil {
		return nil, err
	}
	return &Formatter{cfg: cfg, line: line, overflow: overflow}, nil
}

// Fields computes the placeholder values for ev. snap is used for name lookups.
func (f *Formatter) Fields(snap *leaderboard.Snapshot, ev leaderboard.CompletionEvent) map[string]string {
	return map[string]string{
		FieldMember:    snap.MemberName(ev.MemberID),
		FieldMemberID:  ev.MemberID,
		FieldDay:       ev.Day,
		FieldPart:      ev.Part,
		FieldPartEmoji: f.partEmoji(ev),
		FieldMMSS:      formatMMSS(ev.Timestamp),
		FieldAfter:     f.after(ev),
	}
}

// Format renders one event.
func (f *Formatter) Format(snap *leaderboard.Snapshot, ev leaderboard.CompletionEvent) string {
	return f.line.Execute(f.Fields(snap, ev))
}

// FormatBatch renders every event, one per line, in the given order.
func (f *Formatter) FormatBatch(snap *leaderboard.Snapshot, events []leaderboard.CompletionEvent) string {
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		lines = append(lines, f.Format(snap, ev))
	}
	return strings.Join(lines, "\n")
}

// Fit applies the size guard: text longer than MaxContentLength is replaced as
// a whole by the overflow message pointing at the leaderboard. The bool
// reports whether the replacement happened.
func (f *Formatter) Fit(text string) (string, bool) {
	if f.cfg.MaxContentLength <= 0 || utf8.RuneCountInString(text) <= f.cfg.MaxContentLength {
		return text, false
	}
	return f.overflow.Execute(map[string]string{FieldURL: f.cfg.LeaderboardURL}), true
}

// Render is FormatBatch followed by Fit.
func (f *Formatter) Render(snap *leaderboard.Snapshot, events []leaderboard.CompletionEvent) (string, bool) {
	return f.Fit(f.FormatBatch(snap, events))
}

func (f *Formatter) partEmoji(ev leaderboard.CompletionEvent) string {
	if n, ok := ev.PartNumber(); ok && n >= 1 && n <= len(f.cfg.PartEmojis) {
		return f.cfg.PartEmojis[n-1]
	}
	return ev.Part
}

func (f *Formatter) after(ev leaderboard.CompletionEvent) string {
	day, ok := ev.DayNumber()
	if !ok {
		return "?"
	}
	return FormatUnixTimedelta(ev.Timestamp - ReleaseTime(f.cfg.Year, day).Unix())
}

// String is used in logs.
func (f *Formatter) String() string {
	return "year=" + strconv.Itoa(f.cfg.Year) + " template=" + strconv.Quote(f.line.String())
}
