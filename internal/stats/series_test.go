package stats

import (
	"testing"
	"time"

	"github.com/GregMSThompson/steps-backend/internal/models"
)

func TestFillMonthCoversEveryDay(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.February, 10, 15, 0, 0, 0, loc)

	got := FillMonth([]models.DailySteps{
		{Date: "02/01", Steps: 100},
		{Date: "02/10", Steps: 40},
		{Date: "02/10", Steps: 60},
	}, now, loc)

	if len(got) != 29 {
		t.Fatalf("len = %d, want 29 for a leap February", len(got))
	}
	if got[0].Date != "02/01" || got[0].Steps != 100 {
		t.Fatalf("first day = %+v", got[0])
	}
	if got[9].Date != "02/10" || got[9].Steps != 100 {
		t.Fatalf("duplicate labels not summed: %+v", got[9])
	}
	if got[28].Date != "02/29" || got[28].Steps != 0 {
		t.Fatalf("last day = %+v", got[28])
	}
}

func TestVisibleDays(t *testing.T) {
	series := juneSeries(0, 500, 0, 0, 0)

	got := VisibleDays(series, "06/04")

	want := []string{"06/02", "06/04", "06/05"}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i].Date != want[i] {
			t.Fatalf("day %d = %s, want %s", i, got[i].Date, want[i])
		}
	}
}

func TestDayAndMonthBounds(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 2024-06-30 20:00 UTC is already July 1st in Tokyo
	now := time.Date(2024, time.June, 30, 20, 0, 0, 0, time.UTC)

	start, end := DayBounds(now, tokyo)
	if start.Format(time.RFC3339) != "2024-07-01T00:00:00+09:00" {
		t.Fatalf("day start = %s", start.Format(time.RFC3339))
	}
	if end.Sub(start) != 24*time.Hour-time.Millisecond {
		t.Fatalf("day span = %s", end.Sub(start))
	}

	mStart, mEnd := MonthBounds(now, tokyo)
	if mStart.Day() != 1 || mStart.Month() != time.July {
		t.Fatalf("month start = %s", mStart)
	}
	if mEnd.Day() != 31 || mEnd.Hour() != 23 || mEnd.Nanosecond() != 999000000 {
		t.Fatalf("month end = %s", mEnd)
	}
	if DaysInMonth(now, tokyo) != 31 {
		t.Fatalf("DaysInMonth = %d", DaysInMonth(now, tokyo))
	}
	if Label(now, tokyo) != "07/01" {
		t.Fatalf("Label = %s", Label(now, tokyo))
	}
}
