package stats

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestWeeklyStatsCompletedOnly(t *testing.T) {
	workouts := []Workout{
		{Completed: true, Distance: floatPtr(6.2), Duration: intPtr(54), Calories: intPtr(600)},
		{Completed: true, Distance: floatPtr(3.1), Duration: intPtr(28), Calories: intPtr(300)},
		{Planned: true, Distance: floatPtr(26.2), Duration: intPtr(240), Calories: intPtr(2500)},
	}

	s := CalculateWeeklyStats(workouts)
	if s.TotalWorkouts != 2 {
		t.Fatalf("expected 2 workouts, got %d", s.TotalWorkouts)
	}
	if s.TotalDistance != 9.3 {
		t.Fatalf("expected distance 9.3, got %v", s.TotalDistance)
	}
	if s.TotalDuration != 82 {
		t.Fatalf("expected duration 82, got %d", s.TotalDuration)
	}
	if s.TotalCalories != 900 {
		t.Fatalf("expected calories 900, got %d", s.TotalCalories)
	}
}

func TestWeeklyStatsMissingFieldsCountAsZero(t *testing.T) {
	workouts := []Workout{
		{Completed: true},
		{Completed: true, Duration: intPtr(30)},
	}

	s := CalculateWeeklyStats(workouts)
	if s.TotalWorkouts != 2 || s.TotalDistance != 0 || s.TotalDuration != 30 || s.TotalCalories != 0 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestWeeklyStatsEmpty(t *testing.T) {
	s := CalculateWeeklyStats(nil)
	if s.TotalWorkouts != 0 || s.TotalDistance != 0 {
		t.Fatalf("expected zero stats: %+v", s)
	}
}

func TestWorkoutsByTypeFirstSeenOrder(t *testing.T) {
	workouts := []Workout{
		{Completed: true, Type: "bike"},
		{Completed: true, Type: typeRun},
		{Completed: true, Type: "bike"},
		{Planned: true, Type: "swim"},
	}

	counts := WorkoutsByType(workouts)
	if len(counts) != 2 {
		t.Fatalf("expected 2 types, got %d", len(counts))
	}
	if counts[0].Type != "bike" || counts[0].Count != 2 {
		t.Fatalf("unexpected first entry: %+v", counts[0])
	}
	if counts[1].Type != typeRun || counts[1].Count != 1 {
		t.Fatalf("unexpected second entry: %+v", counts[1])
	}
}

func TestWeeklySeriesAlwaysSevenPoints(t *testing.T) {
	series := WeeklySeries(nil, time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC))
	if len(series.Labels) != 7 || len(series.Data) != 7 {
		t.Fatalf("expected 7 labels and 7 values, got %d/%d", len(series.Labels), len(series.Data))
	}
	if series.Labels[0] != "Mon" || series.Labels[6] != "Sun" {
		t.Fatalf("expected Monday-first labels, got %v", series.Labels)
	}
	for _, v := range series.Data {
		if v != 0 {
			t.Fatalf("expected zero-valued series, got %v", series.Data)
		}
	}
}

func TestWeeklySeriesBucketsByCalendarDay(t *testing.T) {
	// 2024-06-12 is a Wednesday; its week runs Mon 10th to Sun 16th.
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)
	workouts := []Workout{
		{Completed: true, Duration: intPtr(40), Date: time.Date(2024, 6, 10, 7, 30, 0, 0, time.UTC)},
		{Completed: true, Duration: intPtr(20), Date: time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)},
		{Completed: true, Duration: intPtr(35), Date: time.Date(2024, 6, 16, 9, 0, 0, 0, time.UTC)},
		{Planned: true, Duration: intPtr(90), Date: time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)},
		{Completed: true, Duration: intPtr(60), Date: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)},
	}

	series := WeeklySeries(workouts, now)
	if series.Data[0] != 60 {
		t.Fatalf("expected Monday total 60, got %d", series.Data[0])
	}
	if series.Data[2] != 0 {
		t.Fatalf("planned workout must not count, got %d", series.Data[2])
	}
	if series.Data[6] != 35 {
		t.Fatalf("expected Sunday total 35, got %d", series.Data[6])
	}
}

func TestStartOfWeekOnMondayAndSunday(t *testing.T) {
	monday := time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC)
	if got := startOfWeek(monday); got.Day() != 10 || got.Hour() != 0 {
		t.Fatalf("unexpected start for monday: %v", got)
	}
	sunday := time.Date(2024, 6, 16, 1, 0, 0, 0, time.UTC)
	if got := startOfWeek(sunday); got.Day() != 10 {
		t.Fatalf("unexpected start for sunday: %v", got)
	}
}
