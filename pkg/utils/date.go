package utils

import "time"

// Constants
const (
	SEARCH_DATE_LAYOUT = "02/01/2006"
)

// FormatSearchDate renders a date as DD/MM/YYYY for the search API
func FormatSearchDate(t time.Time) string {
	return t.Format(SEARCH_DATE_LAYOUT)
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddMonths moves t by n calendar months. Days past the end of the target
// month are clamped to its last day, so Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)

	if last := daysIn(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, hh, mm, ss, t.Nanosecond(), t.Location())
}

// SearchWindow returns the date range searched on day now: today through
// today plus months calendar months.
func SearchWindow(now time.Time, months int) (time.Time, time.Time) {
	from := StartOfDay(now)
	return from, AddMonths(from, months)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
