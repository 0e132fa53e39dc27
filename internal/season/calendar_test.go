package season

import (
	"testing"
	"time"
)

func TestTransferWindowOpen(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date time.Time
		want bool
	}{
		{time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := TransferWindowOpen(tc.date); got != tc.want {
			t.Fatalf("window on %s: got=%v want=%v", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestCalendarOrdering(t *testing.T) {
	t.Parallel()

	first := FirstHalfStart(2025)
	second := SecondHalfStart(2025)
	rollover := RolloverDate(2025)

	if !first.Before(second) || !second.Before(rollover) {
		t.Fatalf("calendar out of order: %s, %s, %s", first, second, rollover)
	}
	if second.Year() != 2026 || rollover.Year() != 2026 {
		t.Fatal("second half and rollover belong to the following calendar year")
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	a := time.Date(2025, time.August, 10, 9, 30, 0, 0, time.UTC)
	b := time.Date(2025, time.August, 10, 23, 0, 0, 0, time.UTC)
	c := time.Date(2025, time.August, 11, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Fatal("same calendar day should match regardless of clock")
	}
	if SameDay(a, c) {
		t.Fatal("different days matched")
	}
}
