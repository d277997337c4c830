package dto

import "github.com/GregMSThompson/steps-backend/internal/models"

// RateBand buckets an achievement rate the way the dashboard colours it.
type RateBand string

const (
	RateAchieved RateBand = "achieved" // >= 100%
	RateClose    RateBand = "close"    // >= 75%
	RateBehind   RateBand = "behind"
)

// ForecastVerdict is the month-end outlook derived from the daily average.
type ForecastVerdict string

const (
	ForecastNoData   ForecastVerdict = "no_data"
	ForecastOnTrack  ForecastVerdict = "on_track"
	ForecastOffTrack ForecastVerdict = "off_track"
)

// CumulativePoint is one x-axis entry of the cumulative chart. Cumulative is
// nil for days after today so the chart draws a gap; RunningTotal carries the
// last observed value forward.
type CumulativePoint struct {
	Date                 string  `json:"date"`
	Steps                int64   `json:"steps"`
	Cumulative           *int64  `json:"cumulativeSteps"`
	RunningTotal         int64   `json:"runningTotal"`
	GoalCumulative       int64   `json:"goalCumulative"`
	PredictionCumulative float64 `json:"predictionCumulative"`
	IsToday              bool    `json:"isToday"`
}

// CumulativeProgress is the derived view of a month of steps against a goal.
type CumulativeProgress struct {
	Today           string            `json:"today"`
	DailyGoal       int64             `json:"dailyGoal"`
	TotalSteps      int64             `json:"totalSteps"`
	ValidDaysCount  int               `json:"validDaysCount"`
	DailyAverage    float64           `json:"dailyAverage"`
	PredictedFinal  float64           `json:"predictedFinal"`
	MonthlyGoal     int64             `json:"monthlyGoal"`
	AchievementRate float64           `json:"achievementRate"`
	RateBand        RateBand          `json:"rateBand"`
	WillAchieve     bool              `json:"willAchieve"`
	Verdict         ForecastVerdict   `json:"verdict"`
	YAxisMax        float64           `json:"yAxisMax"`
	Points          []CumulativePoint `json:"points"`
}

// TodayProgress is the step counter card.
type TodayProgress struct {
	Date            string  `json:"date"`
	Steps           int64   `json:"steps"`
	DailyGoal       int64   `json:"dailyGoal"`
	AchievementRate float64 `json:"achievementRate"`
	GoalAchieved    bool    `json:"goalAchieved"`
}

// MonthlySummary backs the per-day bar chart.
type MonthlySummary struct {
	Days                []models.DailySteps `json:"days"`
	TotalSteps          int64               `json:"totalSteps"`
	DaysWithSteps       int                 `json:"daysWithSteps"`
	AverageSteps        int64               `json:"averageSteps"`
	GoalAchievementDays int                 `json:"goalAchievementDays"`
	DailyGoal           int64               `json:"dailyGoal"`
	YAxisMax            int64               `json:"yAxisMax"`
}
