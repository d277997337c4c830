package stats

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/GregMSThompson/steps-backend/internal/dto"
	"github.com/GregMSThompson/steps-backend/internal/models"
)

func juneSeries(steps ...int64) []models.DailySteps {
	out := make([]models.DailySteps, 0, len(steps))
	for i, s := range steps {
		out = append(out, models.DailySteps{Date: fmt.Sprintf("06/%02d", i+1), Steps: s})
	}
	return out
}

func TestCumulativeScenarioWithGapDay(t *testing.T) {
	got := Cumulative(juneSeries(3200, 0, 2800), 3000, "06/03")

	if got.TotalSteps != 6000 {
		t.Fatalf("TotalSteps = %d, want 6000", got.TotalSteps)
	}
	if got.ValidDaysCount != 2 {
		t.Fatalf("ValidDaysCount = %d, want 2", got.ValidDaysCount)
	}
	if got.DailyAverage != 3000 {
		t.Fatalf("DailyAverage = %v, want 3000", got.DailyAverage)
	}
	if got.MonthlyGoal != 9000 {
		t.Fatalf("MonthlyGoal = %d, want 9000", got.MonthlyGoal)
	}
	if math.Abs(got.AchievementRate-66.7) > 0.05 {
		t.Fatalf("AchievementRate = %v, want ~66.7", got.AchievementRate)
	}
	// monthly goal over all 3 series days, prediction over the 2 visible ones
	if got.PredictedFinal != 6000 {
		t.Fatalf("PredictedFinal = %v, want 6000", got.PredictedFinal)
	}
	if got.WillAchieve {
		t.Fatalf("WillAchieve = true, want false (predicted %v)", got.PredictedFinal)
	}
	if got.Verdict != dto.ForecastOffTrack {
		t.Fatalf("Verdict = %s, want %s", got.Verdict, dto.ForecastOffTrack)
	}
	if got.RateBand != dto.RateBehind {
		t.Fatalf("RateBand = %s", got.RateBand)
	}
	if len(got.Points) != 2 || got.Points[0].Date != "06/01" || got.Points[1].Date != "06/03" {
		t.Fatalf("past zero day not filtered: %+v", got.Points)
	}
	if !got.Points[1].IsToday {
		t.Fatalf("last point should be today")
	}
	if got.YAxisMax != 9000*1.25 {
		t.Fatalf("YAxisMax = %v, want %v", got.YAxisMax, 9000*1.25)
	}
}

func TestCumulativeEmptySeries(t *testing.T) {
	got := Cumulative(nil, 3000, "06/03")

	if got.TotalSteps != 0 || got.AchievementRate != 0 || got.MonthlyGoal != 0 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if math.IsNaN(got.AchievementRate) || math.IsInf(got.AchievementRate, 0) {
		t.Fatalf("AchievementRate is not finite: %v", got.AchievementRate)
	}
	if got.WillAchieve {
		t.Fatalf("empty series must not be reported as achieved")
	}
	if got.Verdict != dto.ForecastNoData {
		t.Fatalf("Verdict = %s, want %s", got.Verdict, dto.ForecastNoData)
	}
	if got.Points == nil {
		t.Fatalf("Points should be an empty slice, not nil")
	}
}

func TestCumulativeFutureDaysAreGaps(t *testing.T) {
	got := Cumulative(juneSeries(1000, 2000, 0, 0, 0), 1500, "06/03")

	wantDates := []string{"06/01", "06/02", "06/03", "06/04", "06/05"}
	if len(got.Points) != len(wantDates) {
		t.Fatalf("got %d points, want %d", len(got.Points), len(wantDates))
	}
	for i, p := range got.Points {
		if p.Date != wantDates[i] {
			t.Fatalf("point %d date = %s, want %s", i, p.Date, wantDates[i])
		}
	}

	if got.Points[2].Cumulative == nil || *got.Points[2].Cumulative != 3000 {
		t.Fatalf("today should carry an observed value of 3000: %+v", got.Points[2])
	}
	for _, p := range got.Points[3:] {
		if p.Cumulative != nil {
			t.Fatalf("future day %s has observed value %d", p.Date, *p.Cumulative)
		}
		if p.RunningTotal != 3000 {
			t.Fatalf("future day %s running total = %d, want 3000", p.Date, p.RunningTotal)
		}
	}

	// goal and prediction lines extend to the end of the month
	last := got.Points[4]
	if last.GoalCumulative != 1500*5 {
		t.Fatalf("GoalCumulative = %d, want %d", last.GoalCumulative, 1500*5)
	}
	if last.PredictionCumulative != 1500*5 {
		t.Fatalf("PredictionCumulative = %v, want %v", last.PredictionCumulative, 1500*5)
	}
	if !got.WillAchieve || got.Verdict != dto.ForecastOnTrack {
		t.Fatalf("expected on track, got %+v", got)
	}
}

func TestCumulativeZeroStepToday(t *testing.T) {
	got := Cumulative(juneSeries(4000, 0), 3000, "06/02")

	if got.ValidDaysCount != 1 {
		t.Fatalf("ValidDaysCount = %d, want 1", got.ValidDaysCount)
	}
	if got.Points[1].Cumulative == nil || *got.Points[1].Cumulative != 4000 {
		t.Fatalf("today without steps keeps the running total: %+v", got.Points[1])
	}
}

func TestCumulativeDefaultsGoal(t *testing.T) {
	got := Cumulative(juneSeries(3000), 0, "06/01")
	if got.DailyGoal != DefaultDailyGoal {
		t.Fatalf("DailyGoal = %d, want %d", got.DailyGoal, DefaultDailyGoal)
	}
	if got.RateBand != dto.RateAchieved {
		t.Fatalf("RateBand = %s, want achieved", got.RateBand)
	}
}

func TestCumulativeYAxisFollowsTotal(t *testing.T) {
	got := Cumulative(juneSeries(50000), 1000, "06/01")
	if got.YAxisMax != 50000 {
		t.Fatalf("YAxisMax = %v, want 50000", got.YAxisMax)
	}
}

func randomSeries(r *rand.Rand) []models.DailySteps {
	n := 1 + r.Intn(30)
	steps := make([]int64, n)
	for i := range steps {
		if r.Intn(4) == 0 {
			continue
		}
		steps[i] = int64(r.Intn(15000))
	}
	return juneSeries(steps...)
}

func TestCumulativeProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		series := randomSeries(r)
		today := series[r.Intn(len(series))].Date
		goal := int64(1 + r.Intn(10000))

		got := Cumulative(series, goal, today)

		var prev int64
		pastToday := false
		for _, p := range got.Points {
			if pastToday {
				if p.Cumulative != nil || p.RunningTotal != prev {
					t.Fatalf("iter %d: %s after today is not flat: %+v", iter, p.Date, p)
				}
				continue
			}
			if p.Cumulative == nil || *p.Cumulative < prev {
				t.Fatalf("iter %d: cumulative decreased at %s", iter, p.Date)
			}
			prev = *p.Cumulative
			pastToday = p.Date == today
		}

		if got.ValidDaysCount > 0 {
			if math.Abs(got.DailyAverage*float64(got.ValidDaysCount)-float64(got.TotalSteps)) > 1e-6 {
				t.Fatalf("iter %d: average %v x %d != total %d", iter, got.DailyAverage, got.ValidDaysCount, got.TotalSteps)
			}
		}
		if math.IsNaN(got.AchievementRate) || math.IsInf(got.AchievementRate, 0) {
			t.Fatalf("iter %d: rate not finite", iter)
		}

		again := Cumulative(series, goal, today)
		if !reflect.DeepEqual(got, again) {
			t.Fatalf("iter %d: repeated call differs", iter)
		}
	}
}

func TestAchievementRateMatchesSumOverGoal(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for iter := 0; iter < 100; iter++ {
		n := 1 + r.Intn(31)
		steps := make([]int64, n)
		var sum int64
		for i := range steps {
			steps[i] = int64(r.Intn(20000))
			sum += steps[i]
		}
		series := juneSeries(steps...)
		goal := int64(1 + r.Intn(10000))

		got := Cumulative(series, goal, series[n-1].Date)
		want := float64(sum) / float64(goal*int64(n)) * 100
		if math.Abs(got.AchievementRate-want) > 1e-9 {
			t.Fatalf("iter %d: rate = %v, want %v", iter, got.AchievementRate, want)
		}
	}
}

func TestBand(t *testing.T) {
	cases := []struct {
		rate float64
		want dto.RateBand
	}{
		{0, dto.RateBehind},
		{74.9, dto.RateBehind},
		{75, dto.RateClose},
		{99.99, dto.RateClose},
		{100, dto.RateAchieved},
		{250, dto.RateAchieved},
	}
	for _, c := range cases {
		if got := Band(c.rate); got != c.want {
			t.Fatalf("Band(%v) = %s, want %s", c.rate, got, c.want)
		}
	}
}
