package stats

import (
	"math"

	"github.com/GregMSThompson/steps-backend/internal/dto"
	"github.com/GregMSThompson/steps-backend/internal/models"
	"github.com/GregMSThompson/steps-backend/pkg/helpers"
)

// DefaultDailyGoal applies when the user has not saved a goal.
const DefaultDailyGoal int64 = 3000

// yAxisHeadroom keeps the monthly goal line below the top of the chart.
const yAxisHeadroom = 1.25

// Cumulative derives the cumulative chart and forecast for a month of daily
// steps. today is the label of the current day in the same format as the
// series. The forecast is a linear extrapolation of the daily average over
// the visible days, not a prediction.
//
// MonthlyGoal counts every day of the series; PredictedFinal counts only the
// visible days, where the prediction line ends. Swapping them breaks the
// worked example in TestCumulativeScenarioWithGapDay.
func Cumulative(series []models.DailySteps, dailyGoal int64, today string) dto.CumulativeProgress {
	if dailyGoal <= 0 {
		dailyGoal = DefaultDailyGoal
	}

	visible := VisibleDays(series, today)
	out := dto.CumulativeProgress{
		Today:     today,
		DailyGoal: dailyGoal,
		Points:    make([]dto.CumulativePoint, 0, len(visible)),
	}

	var running int64
	for _, day := range visible {
		p := dto.CumulativePoint{
			Date:    day.Date,
			Steps:   day.Steps,
			IsToday: day.Date == today,
		}
		if day.Date <= today {
			running += day.Steps
			p.Cumulative = helpers.Ptr(running)
			if day.Steps > 0 {
				out.ValidDaysCount++
			}
		}
		p.RunningTotal = running
		out.Points = append(out.Points, p)
	}

	out.TotalSteps = running
	if out.ValidDaysCount > 0 {
		out.DailyAverage = float64(out.TotalSteps) / float64(out.ValidDaysCount)
	}

	for i := range out.Points {
		out.Points[i].GoalCumulative = dailyGoal * int64(i+1)
		out.Points[i].PredictionCumulative = out.DailyAverage * float64(i+1)
	}

	out.MonthlyGoal = dailyGoal * int64(len(series))
	out.AchievementRate = Rate(out.TotalSteps, out.MonthlyGoal)
	out.RateBand = Band(out.AchievementRate)
	out.PredictedFinal = out.DailyAverage * float64(len(visible))

	switch {
	case out.ValidDaysCount == 0 || out.MonthlyGoal == 0:
		out.Verdict = dto.ForecastNoData
	case out.PredictedFinal >= float64(out.MonthlyGoal):
		out.Verdict = dto.ForecastOnTrack
		out.WillAchieve = true
	default:
		out.Verdict = dto.ForecastOffTrack
	}

	goal := float64(out.MonthlyGoal)
	out.YAxisMax = math.Max(float64(out.TotalSteps), math.Max(goal, goal*yAxisHeadroom))
	return out
}

// Rate returns steps as a percentage of goal, or 0 when goal is not positive.
func Rate(steps, goal int64) float64 {
	if goal <= 0 {
		return 0
	}
	return float64(steps) / float64(goal) * 100
}

func Band(rate float64) dto.RateBand {
	switch {
	case rate >= 100:
		return dto.RateAchieved
	case rate >= 75:
		return dto.RateClose
	default:
		return dto.RateBehind
	}
}
