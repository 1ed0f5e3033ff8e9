package message

import (
	"fmt"
	"time"
)

// Puzzles unlock at midnight US Eastern Standard Time (UTC-5), every day of
// December. DST never applies in December, so a fixed offset is exact.
const (
	releaseHour   = 0
	releaseOffset = -5 * 60 * 60
)

// ReleaseZone is the fixed timezone puzzles are released in.
var ReleaseZone = time.FixedZone("UTC-5", releaseOffset)

// ReleaseTime returns the unlock instant of the given puzzle day.
func ReleaseTime(year, day int) time.Time {
	return time.Date(year, time.December, day, releaseHour, 0, 0, 0, ReleaseZone)
}

// FormatUnixTimedelta renders a duration in seconds as "[Dd ]HH:MM:SS".
// Negative durations (clock skew) render as "-" followed by the absolute value.
func FormatUnixTimedelta(seconds int64) string {
	if seconds < 0 {
		// seconds+1 keeps math.MinInt64 from overflowing on negation.
		return "-" + formatSeconds(uint64(-(seconds+1))+1)
	}
	return formatSeconds(uint64(seconds))
}

func formatSeconds(s uint64) string {
	days := s / 86400
	s %= 86400
	hms := fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
	if days > 0 {
		return fmt.Sprintf("%dd %s", days, hms)
	}
	return hms
}

// formatMMSS renders minute:second of ts in the release timezone.
func formatMMSS(ts int64) string {
	return time.Unix(ts, 0).In(ReleaseZone).Format("04:05")
}
