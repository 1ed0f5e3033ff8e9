// Package leaderboard models an Advent of Code private leaderboard, fetches
// it, and computes which stars are new between two snapshots.
package leaderboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Snapshot is a point-in-time leaderboard document.
//
// Raw holds the exact bytes the snapshot was decoded from; stores persist it
// verbatim so fields this package does not model survive a round trip.
type Snapshot struct {
	Event   string            `json:"event"`
	OwnerID int64             `json:"owner_id"`
	Members map[string]Member `json:"members"`

	Raw json.RawMessage `json:"-"`
}

// Member is one leaderboard participant.
type Member struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"` // null for anonymous users
	Stars       int     `json:"stars"`
	LocalScore  int     `json:"local_score"`
	GlobalScore int     `json:"global_score"`
	LastStarTS  int64   `json:"last_star_ts"`

	// CompletionDayLevel maps day -> part -> star.
	CompletionDayLevel map[string]map[string]Star `json:"completion_day_level"`
}

// Star is one completed puzzle part.
type Star struct {
	GetStarTS int64 `json:"get_star_ts"`
	StarIndex int64 `json:"star_index"`
}

// Parse decodes a leaderboard document. Empty input yields an empty snapshot.
func Parse(raw []byte) (*Snapshot, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return &Snapshot{}, nil
	}
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	s.Raw = append(json.RawMessage(nil), raw...)
	return &s, nil
}

// IsEmpty reports whether s holds no members (nil included).
func (s *Snapshot) IsEmpty() bool {
	return s == nil || len(s.Members) == 0
}

// MemberName returns the display name of memberID.
// Anonymous or unknown members render as "anonymous user #<id>".
func (s *Snapshot) MemberName(memberID string) string {
	if s != nil {
		if m, ok := s.Members[memberID]; ok && m.Name != nil && *m.Name != "" {
			return *m.Name
		}
	}
	return "anonymous user #" + memberID
}

// CompletionEvent is one star earned: member finished part of a day at Timestamp
// (seconds since epoch). The timestamp is part of the identity.
type CompletionEvent struct {
	MemberID  string
	Day       string
	Part      string
	Timestamp int64
}

// DayNumber returns Day as an int (ok=false if it is not numeric).
func (e CompletionEvent) DayNumber() (int, bool) { return atoi(e.Day) }

// PartNumber returns Part as an int (ok=false if it is not numeric).
func (e CompletionEvent) PartNumber() (int, bool) { return atoi(e.Part) }

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
