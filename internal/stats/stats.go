package stats

import (
	"math"
	"time"
)

// Workout is the projection the analytics functions fold over. Callers map
// their own records into it; optional numerics stay pointers so that a
// missing value and zero are distinct.
type Workout struct {
	Type      string
	Date      time.Time
	Duration  *int
	Distance  *float64
	Calories  *int
	Completed bool
	Planned   bool
}

const typeRun = "run"

// Weekly aggregates completed workouts only. Planned-only entries never
// contribute to any total.
type Weekly struct {
	TotalWorkouts int     `json:"totalWorkouts"`
	TotalDistance float64 `json:"totalDistance"`
	TotalDuration int     `json:"totalDuration"`
	TotalCalories int     `json:"totalCalories"`
}

type Series struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

func CalculateWeeklyStats(workouts []Workout) Weekly {
	var stats Weekly
	var distance float64
	for _, w := range workouts {
		if !w.Completed {
			continue
		}
		stats.TotalWorkouts++
		distance += floatOrZero(w.Distance)
		stats.TotalDuration += intOrZero(w.Duration)
		stats.TotalCalories += intOrZero(w.Calories)
	}
	stats.TotalDistance = math.Round(distance*10) / 10
	return stats
}

// WorkoutsByType counts completed workouts per type, ordered by first
// appearance in the input.
func WorkoutsByType(workouts []Workout) []TypeCount {
	index := map[string]int{}
	var counts []TypeCount
	for _, w := range workouts {
		if !w.Completed {
			continue
		}
		i, ok := index[w.Type]
		if !ok {
			i = len(counts)
			index[w.Type] = i
			counts = append(counts, TypeCount{Type: w.Type})
		}
		counts[i].Count++
	}
	return counts
}

// WeeklySeries buckets completed-workout durations over the ISO week
// containing now, Monday first. Always returns 7 labels and 7 values.
func WeeklySeries(workouts []Workout, now time.Time) Series {
	start := startOfWeek(now)
	series := Series{
		Labels: make([]string, 7),
		Data:   make([]int, 7),
	}
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		series.Labels[i] = day.Format("Mon")
		for _, w := range workouts {
			if w.Completed && sameDay(w.Date, day) {
				series.Data[i] += intOrZero(w.Duration)
			}
		}
	}
	return series
}

// startOfWeek returns midnight of the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
