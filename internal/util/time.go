package util

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// DateFormat is the format expiry dates are stored and entered in.
	DateFormat = "2006-01-02"

	// DateTimeFormat is used for timestamps shown in the UI.
	DateTimeFormat = "2006-01-02 15:04:05"

	// isoMillisFormat is the millisecond ISO form some imported lists carry.
	isoMillisFormat = "2006-01-02T15:04:05.000Z"
)

// Clock supplies the current time. Code that decides whether something has
// expired takes a Clock so tests can pin "now".
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock is a Clock that only moves when told to.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// Now returns the frozen time.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// ParseExpiry parses an expiry string. Dates are read as UTC midnight.
// Accepted forms are "2006-01-02", RFC3339 and ISO with milliseconds.
func ParseExpiry(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty expiry")
	}
	for _, layout := range []string{DateFormat, time.RFC3339Nano, isoMillisFormat} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised expiry %q", s)
}

// IsExpired reports whether expiry is strictly before now. Empty and
// malformed expiries never expire.
func IsExpired(expiry string, now time.Time) bool {
	t, err := ParseExpiry(expiry)
	if err != nil {
		return false
	}
	return t.Before(now)
}

// ExpiresWithin reports whether expiry falls in [now, now+days].
func ExpiresWithin(expiry string, now time.Time, days int) bool {
	t, err := ParseExpiry(expiry)
	if err != nil || t.Before(now) {
		return false
	}
	return DaysUntil(now, t) <= days
}

// FormatDate formats a time as a date string.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// FormatDateTime formats a time as a datetime string.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeFormat)
}

// DaysUntil returns the number of calendar days from one date to another,
// negative when to is in the past.
func DaysUntil(from, to time.Time) int {
	from = StartOfDay(from.UTC())
	to = StartOfDay(to.UTC())
	return int(to.Sub(from).Hours() / 24)
}

// StartOfDay returns midnight of the given day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ExpiryLabel renders an expiry relative to now, e.g. "in 3 days".
func ExpiryLabel(expiry string, now time.Time) string {
	t, err := ParseExpiry(expiry)
	if err != nil {
		return expiry
	}
	days := DaysUntil(now, t)
	switch {
	case days < -1:
		return fmt.Sprintf("%d days ago", -days)
	case days == -1:
		return "yesterday"
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days < 14:
		return fmt.Sprintf("in %d days", days)
	default:
		weeks := days / 7
		return fmt.Sprintf("in %d weeks", weeks)
	}
}
