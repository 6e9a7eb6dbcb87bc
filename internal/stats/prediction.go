package stats

import (
	"fmt"
	"math"
)

// RacePrediction projects finish times in whole minutes. The longer-distance
// multipliers include a pacing-fatigue adjustment.
type RacePrediction struct {
	FiveK        int `json:"5K"`
	TenK         int `json:"10K"`
	HalfMarathon int `json:"Half Marathon"`
	Marathon     int `json:"Marathon"`
}

const maxPredictionRuns = 10

// PredictRaceTimes averages pace (min/mi) over up to the first ten completed
// runs with positive distance and duration, in the order supplied by the
// caller. Returns nil when no run qualifies.
func PredictRaceTimes(workouts []Workout) *RacePrediction {
	var totalPace float64
	var runs int
	for _, w := range workouts {
		if w.Type != typeRun || !w.Completed {
			continue
		}
		distance := floatOrZero(w.Distance)
		duration := intOrZero(w.Duration)
		if distance <= 0 || duration <= 0 {
			continue
		}
		totalPace += float64(duration) / distance
		runs++
		if runs == maxPredictionRuns {
			break
		}
	}
	if runs == 0 {
		return nil
	}

	avgPace := totalPace / float64(runs)
	if avgPace == 0 || math.IsNaN(avgPace) || math.IsInf(avgPace, 0) {
		return nil
	}

	return &RacePrediction{
		FiveK:        roundMinutes(avgPace * 3.1),
		TenK:         roundMinutes(avgPace * 6.2 * 1.05),
		HalfMarathon: roundMinutes(avgPace * 13.1 * 1.10),
		Marathon:     roundMinutes(avgPace * 26.2 * 1.15),
	}
}

// FormatTime renders a minute count as "2h 5m" or "45m". The minutes
// component is rounded after the hour component is floored.
func FormatTime(minutes float64) string {
	hours := int(math.Floor(minutes / 60))
	mins := int(math.Round(math.Mod(minutes, 60)))
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

func roundMinutes(minutes float64) int {
	return int(math.Round(minutes))
}
