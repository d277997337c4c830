package stats

import "time"

// LabelLayout formats a day as "MM/DD". Labels of one month sort the same
// way as the days they name, which the visible-day filter relies on.
const LabelLayout = "01/02"

func Label(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LabelLayout)
}

// DayBounds returns local midnight and the last millisecond of t's day.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// MonthBounds returns midnight of the first of t's month and the last
// millisecond of its final day.
func MonthBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

func DaysInMonth(t time.Time, loc *time.Location) int {
	start, end := MonthBounds(t, loc)
	return end.Day() - start.Day() + 1
}
