package leaderboard

import (
	"cmp"
	"slices"
)

// EventSet is the set of completion events extractable from a snapshot.
type EventSet map[CompletionEvent]struct{}

// Events flattens s (members -> days -> parts) into its event set.
// A nil snapshot yields an empty set.
func Events(s *Snapshot) EventSet {
	set := EventSet{}
	if s == nil {
		return set
	}
	for memberID, m := range s.Members {
		for day, parts := range m.CompletionDayLevel {
			for part, star := range parts {
				set[CompletionEvent{
					MemberID:  memberID,
					Day:       day,
					Part:      part,
					Timestamp: star.GetStarTS,
				}] = struct{}{}
			}
		}
	}
	return set
}

// Diff returns the events present in next but absent in prev, oldest first.
//
// Either snapshot may be nil. With an empty prev every event of next is new.
// A star whose timestamp changed is reported again: the timestamp is part of
// the event identity.
func Diff(prev, next *Snapshot) []CompletionEvent {
	old := Events(prev)
	out := make([]CompletionEvent, 0)
	for ev := range Events(next) {
		if _, seen := old[ev]; !seen {
			out = append(out, ev)
		}
	}
	SortEvents(out)
	return out
}

// SortEvents orders events by completion time. Ties (same second) are broken
// by day, part and member id so the output does not depend on map order.
func SortEvents(events []CompletionEvent) {
	slices.SortStableFunc(events, func(a, b CompletionEvent) int {
		if c := cmp.Compare(a.Timestamp, b.Timestamp); c != 0 {
			return c
		}
		if c := compareNumeric(a.Day, b.Day); c != 0 {
			return c
		}
		if c := compareNumeric(a.Part, b.Part); c != 0 {
			return c
		}
		return compareNumeric(a.MemberID, b.MemberID)
	})
}

// compareNumeric compares numerically when both sides are integers, so "9" < "10".
func compareNumeric(a, b string) int {
	x, okA := atoi(a)
	y, okB := atoi(b)
	if okA && okB {
		return cmp.Compare(x, y)
	}
	return cmp.Compare(a, b)
}
