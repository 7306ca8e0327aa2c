// Package dates validates and defaults the from/to query range. Defaults
// are resolved here, once, so the cache key and the upstream fetch always
// see the same pair.
package dates

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// Window is the default-range policy for one query type.
type Window struct {
	// Kind prefixes the cache key so insider and earnings ranges never
	// collide.
	Kind string
	// Back extends the window this many days back from the anchor date.
	Back int
	// Forward extends the window this many days forward.
	Forward int
}

var (
	// InsiderWindow defaults to a trailing 30-day window.
	InsiderWindow = Window{Kind: "insider", Back: 30}
	// EarningsWindow defaults to the 7 days ahead.
	EarningsWindow = Window{Kind: "earnings", Forward: 7}
)

// Range is a resolved, validated date pair.
type Range struct {
	Kind string
	From string
	To   string
}

// Key is the canonical cache key for the range.
func (r Range) Key() string {
	return r.Kind + ":" + r.From + ":" + r.To
}

// RangeError is a caller-input rejection, safe to surface to the client.
type RangeError struct {
	msg string
}

func (e *RangeError) Error() string { return e.msg }

func rangeErrorf(format string, args ...any) *RangeError {
	return &RangeError{msg: fmt.Sprintf(format, args...)}
}

// ParseDay parses a strict YYYY-MM-DD calendar date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, rangeErrorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Resolve validates from/to and fills missing ends per the window policy.
// A trailing window anchors on to (default today) and reaches Back days
// behind it; a forward window anchors on from (default today) and reaches
// Forward days past it.
func Resolve(from, to string, w Window, now time.Time) (Range, error) {
	var fromT, toT time.Time
	var err error

	if from != "" {
		if fromT, err = ParseDay(from); err != nil {
			return Range{}, err
		}
	}
	if to != "" {
		if toT, err = ParseDay(to); err != nil {
			return Range{}, err
		}
	}
	if from != "" && to != "" && !toT.After(fromT) {
		return Range{}, rangeErrorf("invalid range: to %q must be after from %q", to, from)
	}

	today := now.Truncate(24 * time.Hour)
	if w.Forward > 0 {
		if from == "" {
			fromT = today
		}
		if to == "" {
			toT = fromT.AddDate(0, 0, w.Forward)
		}
	} else {
		if to == "" {
			toT = today
		}
		if from == "" {
			fromT = toT.AddDate(0, 0, -w.Back)
		}
	}
	if !toT.After(fromT) {
		return Range{}, rangeErrorf("invalid range: to %q must be after from %q",
			toT.Format(Layout), fromT.Format(Layout))
	}

	return Range{
		Kind: w.Kind,
		From: fromT.Format(Layout),
		To:   toT.Format(Layout),
	}, nil
}
