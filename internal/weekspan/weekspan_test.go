package weekspan

import (
	"testing"
	"time"
)

func TestCurrentFromEachWeekday(t *testing.T) {
	t.Parallel()

	wantMonday := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	for day := 24; day <= 30; day++ {
		now := time.Date(2026, time.August, day, 15, 30, 0, 0, time.UTC)
		span := Current(now)
		if !span.Start.Equal(wantMonday) {
			t.Fatalf("Current(%s).Start = %s, want %s", now, span.Start, wantMonday)
		}
		if want := wantMonday.AddDate(0, 0, 5); !span.End.Equal(want) {
			t.Fatalf("Current(%s).End = %s, want %s", now, span.End, want)
		}
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	span := Current(time.Date(2026, time.August, 26, 9, 0, 0, 0, time.UTC))
	cases := []struct {
		at   time.Time
		want bool
	}{
		{time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2026, time.August, 28, 23, 59, 0, 0, time.UTC), true},
		{time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := span.Contains(tc.at); got != tc.want {
			t.Fatalf("Contains(%s) = %v, want %v", tc.at, got, tc.want)
		}
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()

	span := Current(time.Date(2026, time.August, 26, 9, 0, 0, 0, time.UTC))
	if got := span.DateLabel(); got != "2026-08-28" {
		t.Fatalf("DateLabel = %q, want %q", got, "2026-08-28")
	}
	if got := span.Label(); got != "Aug 24 to Aug 28, 2026" {
		t.Fatalf("Label = %q, want %q", got, "Aug 24 to Aug 28, 2026")
	}
}
