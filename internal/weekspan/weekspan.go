// Package weekspan computes the Monday–Friday reporting window.
package weekspan

import "time"

// Span covers Monday 00:00 through Saturday 00:00 (exclusive) in the
// invoking user's local timezone.
type Span struct {
	Start time.Time
	End   time.Time
}

// Current returns the span for the week containing now.
func Current(now time.Time) Span {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := midnight.AddDate(0, 0, -daysSinceMonday)
	return Span{Start: monday, End: monday.AddDate(0, 0, 5)}
}

func (s Span) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// Friday is the last working day of the span, the report's nominal date.
func (s Span) Friday() time.Time {
	return s.Start.AddDate(0, 0, 4)
}

// DateLabel is the report date in ISO form, e.g. "2026-08-28".
func (s Span) DateLabel() string {
	return s.Friday().Format("2006-01-02")
}

// Label is a human week label, e.g. "Aug 24 to Aug 28, 2026".
func (s Span) Label() string {
	return s.Start.Format("Jan 2") + " to " + s.Friday().Format("Jan 2, 2006")
}
