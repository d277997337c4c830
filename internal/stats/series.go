package stats

import (
	"time"

	"github.com/GregMSThompson/steps-backend/internal/models"
)

// FillMonth returns one entry per calendar day of now's month in ascending
// order. Days missing from days get zero steps; repeated labels are summed.
func FillMonth(days []models.DailySteps, now time.Time, loc *time.Location) []models.DailySteps {
	byLabel := make(map[string]int64, len(days))
	for _, d := range days {
		byLabel[d.Date] += d.Steps
	}

	start, _ := MonthBounds(now, loc)
	n := DaysInMonth(now, loc)
	out := make([]models.DailySteps, 0, n)
	for i := 0; i < n; i++ {
		label := Label(start.AddDate(0, 0, i), loc)
		out = append(out, models.DailySteps{Date: label, Steps: byLabel[label]})
	}
	return out
}

// VisibleDays drops past days with no steps. Today and later days are always
// kept so the goal and prediction lines reach the end of the month.
func VisibleDays(series []models.DailySteps, today string) []models.DailySteps {
	out := make([]models.DailySteps, 0, len(series))
	for _, d := range series {
		if d.Steps > 0 || d.Date >= today {
			out = append(out, d)
		}
	}
	return out
}
