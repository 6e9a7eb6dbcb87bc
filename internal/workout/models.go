package workout

import "time"

const (
	TypeRun      = "run"
	TypeBike     = "bike"
	TypeSwim     = "swim"
	TypeStrength = "strength"
)

// Workout optional numeric fields are pointers: nil means the field was never
// logged and is omitted from responses; aggregation treats nil as zero.
type Workout struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Date         time.Time `json:"date"`
	Duration     *int      `json:"duration,omitempty"`
	Distance     *float64  `json:"distance,omitempty"`
	Elevation    *float64  `json:"elevation,omitempty"`
	AvgHeartRate *int      `json:"avg_heart_rate,omitempty"`
	Calories     *int      `json:"calories,omitempty"`
	Completed    bool      `json:"completed"`
	Planned      bool      `json:"planned"`
	CreatedAt    time.Time `json:"created_at"`
}

func validType(t string) bool {
	switch t {
	case TypeRun, TypeBike, TypeSwim, TypeStrength:
		return true
	}
	return false
}
