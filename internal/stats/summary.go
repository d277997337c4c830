package stats

import (
	"math"

	"github.com/GregMSThompson/steps-backend/internal/dto"
	"github.com/GregMSThompson/steps-backend/internal/models"
)

// barChartHeadroom is added to the daily goal when no day exceeds it.
const barChartHeadroom = 1000

// Today builds the step counter card. The rate is capped at 100%.
func Today(date string, steps, dailyGoal int64) dto.TodayProgress {
	if dailyGoal <= 0 {
		dailyGoal = DefaultDailyGoal
	}
	return dto.TodayProgress{
		Date:            date,
		Steps:           steps,
		DailyGoal:       dailyGoal,
		AchievementRate: math.Min(Rate(steps, dailyGoal), 100),
		GoalAchieved:    steps >= dailyGoal,
	}
}

// Summary builds the per-day bar chart totals for the month.
func Summary(series []models.DailySteps, dailyGoal int64) dto.MonthlySummary {
	if dailyGoal <= 0 {
		dailyGoal = DefaultDailyGoal
	}
	out := dto.MonthlySummary{
		Days:      series,
		DailyGoal: dailyGoal,
	}
	if out.Days == nil {
		out.Days = []models.DailySteps{}
	}

	var maxSteps int64
	for _, d := range series {
		out.TotalSteps += d.Steps
		if d.Steps > 0 {
			out.DaysWithSteps++
		}
		if d.Steps >= dailyGoal {
			out.GoalAchievementDays++
		}
		maxSteps = max(maxSteps, d.Steps)
	}
	if out.DaysWithSteps > 0 {
		out.AverageSteps = int64(math.Round(float64(out.TotalSteps) / float64(out.DaysWithSteps)))
	}
	out.YAxisMax = max(maxSteps, dailyGoal+barChartHeadroom)
	return out
}
