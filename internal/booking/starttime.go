package booking

import (
	"errors"
	"strings"
	"time"
)

// ErrStartTime is returned for show times that match no accepted layout.
var ErrStartTime = errors.New("invalid start time")

// StartTimeLayouts lists the accepted show time inputs. The first one is
// what the show form pre-fills.
var StartTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04",
}

// ParseStartTime parses a submitted show time. Inputs without a zone are
// read as UTC; the result is always UTC and truncated to whole seconds.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range StartTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, ErrStartTime
}
