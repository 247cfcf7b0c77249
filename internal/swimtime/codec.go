package swimtime

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatError reports a race-time string that cannot be parsed.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Input, e.Reason)
}

// Parse converts "SS.ff" or "M:SS.ff" into milliseconds. The last segment
// is seconds with a mandatory 1-2 digit fraction; any segment before the
// colon is whole minutes.
func Parse(text string) (int64, error) {
	segments := strings.Split(text, ":")
	if len(segments) > 2 {
		return 0, &FormatError{Input: text, Reason: "too many colon segments"}
	}

	var minutes int64
	if len(segments) == 2 {
		m, err := strconv.ParseInt(segments[0], 10, 64)
		if err != nil || m < 0 {
			return 0, &FormatError{Input: text, Reason: "minutes segment not a number"}
		}
		minutes = m
	}

	secText := segments[len(segments)-1]
	whole, frac, ok := strings.Cut(secText, ".")
	if !ok {
		return 0, &FormatError{Input: text, Reason: "fractional seconds required"}
	}
	if len(frac) == 0 || len(frac) > 2 {
		return 0, &FormatError{Input: text, Reason: "fraction must be 1-2 digits"}
	}

	seconds, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || seconds < 0 {
		return 0, &FormatError{Input: text, Reason: "seconds segment not a number"}
	}
	if len(segments) == 2 && seconds >= 60 {
		return 0, &FormatError{Input: text, Reason: "seconds must be below 60"}
	}

	fracValue, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, &FormatError{Input: text, Reason: "fraction not a number"}
	}
	if len(frac) == 1 {
		fracValue *= 10
	}

	return minutes*60_000 + seconds*1_000 + fracValue*10, nil
}

// Format renders milliseconds as "M:SS.ff", omitting the minutes segment
// when zero. Sub-hundredth precision is truncated.
func Format(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hundredths := (ms / 10) % 100
	seconds := (ms / 1_000) % 60
	minutes := ms / 60_000

	if minutes == 0 {
		return fmt.Sprintf("%02d.%02d", seconds, hundredths)
	}
	return fmt.Sprintf("%d:%02d.%02d", minutes, seconds, hundredths)
}
