package social

import (
	"time"

	"github.com/borbigo/PeakForm/internal/user"
)

type Follow struct {
	FollowerID  string `json:"follower_id"`
	FollowingID string `json:"following_id"`
}

// Activity is an immutable feed entry created when a workout is logged.
type Activity struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	WorkoutID string          `json:"workout_id,omitempty"`
	Type      string          `json:"type"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	User      user.Summary    `json:"user"`
	Workout   *WorkoutSummary `json:"workout,omitempty"`
}

type WorkoutSummary struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Title    string    `json:"title"`
	Duration *int      `json:"duration,omitempty"`
	Distance *float64  `json:"distance,omitempty"`
	Date     time.Time `json:"date"`
}
