package season

import "time"

// The season calendar is fixed: the first half of the league campaign
// starts in August, the second resumes in February after the winter
// break, and the season rolls over in June.
const (
	firstHalfStartMonth  = time.August
	firstHalfStartDay    = 10
	secondHalfStartMonth = time.February
	secondHalfStartDay   = 10
	// Late enough for the last league round and the promotion playoff
	// to finish first.
	rolloverMonth = time.June
	rolloverDay   = 30
)

// FirstHalfStart is the opening matchday date for a season year.
func FirstHalfStart(year int) time.Time {
	return time.Date(year, firstHalfStartMonth, firstHalfStartDay, 0, 0, 0, 0, time.UTC)
}

// SecondHalfStart is the resumption date after the winter break.
func SecondHalfStart(year int) time.Time {
	return time.Date(year+1, secondHalfStartMonth, secondHalfStartDay, 0, 0, 0, 0, time.UTC)
}

// RolloverDate is the year-boundary date that finalizes the season.
func RolloverDate(year int) time.Time {
	return time.Date(year+1, rolloverMonth, rolloverDay, 0, 0, 0, 0, time.UTC)
}

// TransferWindowOpen reports whether transfers are permitted on the
// given date: the summer window runs through July and August, the
// winter window through January.
func TransferWindowOpen(date time.Time) bool {
	switch date.Month() {
	case time.July, time.August, time.January:
		return true
	default:
		return false
	}
}

// SameDay compares dates ignoring the clock.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
