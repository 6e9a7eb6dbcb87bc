package workout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/borbigo/PeakForm/internal/cache"
	"github.com/borbigo/PeakForm/internal/db"
	"github.com/borbigo/PeakForm/internal/stream"

	"github.com/google/uuid"
)

var ErrInvalidType = errors.New("invalid workout type")

type Service struct {
	db    db.Querier
	hub   *stream.Hub
	cache *cache.Cache
}

func NewService(db db.Querier, hub *stream.Hub, statsCache *cache.Cache) *Service {
	return &Service{db: db, hub: hub, cache: statsCache}
}

func (s *Service) List(ctx context.Context, userID string) ([]Workout, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, type, title, COALESCE(description,''), date,
		       duration, distance, elevation, avg_heart_rate, calories,
		       completed, planned, created_at
		FROM workouts WHERE user_id=$1
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		var w Workout
		err := rows.Scan(&w.ID, &w.UserID, &w.Type, &w.Title, &w.Description, &w.Date,
			&w.Duration, &w.Distance, &w.Elevation, &w.AvgHeartRate, &w.Calories,
			&w.Completed, &w.Planned, &w.CreatedAt)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

func (s *Service) Get(ctx context.Context, id string) (Workout, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, type, title, COALESCE(description,''), date,
		       duration, distance, elevation, avg_heart_rate, calories,
		       completed, planned, created_at
		FROM workouts WHERE id=$1
	`, id)
	var w Workout
	err := row.Scan(&w.ID, &w.UserID, &w.Type, &w.Title, &w.Description, &w.Date,
		&w.Duration, &w.Distance, &w.Elevation, &w.AvgHeartRate, &w.Calories,
		&w.Completed, &w.Planned, &w.CreatedAt)
	if err != nil {
		return Workout{}, err
	}
	return w, nil
}

// Create logs a workout and, as a side effect, records an immutable feed
// activity and broadcasts it to live subscribers of the author.
func (s *Service) Create(ctx context.Context, input Workout) (Workout, error) {
	if !validType(input.Type) {
		return Workout{}, ErrInvalidType
	}
	input.ID = uuid.NewString()
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO workouts (id, user_id, type, title, description, date,
		                      duration, distance, elevation, avg_heart_rate, calories,
		                      completed, planned)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at
	`, input.ID, input.UserID, input.Type, input.Title, input.Description, input.Date,
		input.Duration, input.Distance, input.Elevation, input.AvgHeartRate, input.Calories,
		input.Completed, input.Planned)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Workout{}, err
	}

	if err := s.recordActivity(ctx, input); err != nil {
		return Workout{}, err
	}
	s.cache.InvalidateUser(ctx, input.UserID)
	return input, nil
}

func (s *Service) recordActivity(ctx context.Context, w Workout) error {
	activityType := "workout_planned"
	if w.Completed {
		activityType = "workout_completed"
	}
	activity := struct {
		ID        string    `json:"id"`
		UserID    string    `json:"user_id"`
		WorkoutID string    `json:"workout_id"`
		Type      string    `json:"type"`
		Content   string    `json:"content"`
		CreatedAt time.Time `json:"created_at"`
	}{
		ID:        uuid.NewString(),
		UserID:    w.UserID,
		WorkoutID: w.ID,
		Type:      activityType,
		Content:   w.Type + " - " + w.Title,
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO activities (id, user_id, workout_id, type, content)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, activity.ID, activity.UserID, activity.WorkoutID, activity.Type, activity.Content)
	if err := row.Scan(&activity.CreatedAt); err != nil {
		return err
	}

	if s.hub != nil {
		payload, _ := json.Marshal(activity)
		s.hub.Broadcast(activity.UserID, payload)
	}
	return nil
}

// Update overlays the supplied fields onto the stored workout. Optional
// numeric fields patch only when present; the completed and planned flags are
// always taken from the request.
func (s *Service) Update(ctx context.Context, id string, patch Workout) (Workout, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return Workout{}, err
	}
	if patch.Type != "" {
		if !validType(patch.Type) {
			return Workout{}, ErrInvalidType
		}
		w.Type = patch.Type
	}
	if patch.Title != "" {
		w.Title = patch.Title
	}
	if patch.Description != "" {
		w.Description = patch.Description
	}
	if !patch.Date.IsZero() {
		w.Date = patch.Date
	}
	if patch.Duration != nil {
		w.Duration = patch.Duration
	}
	if patch.Distance != nil {
		w.Distance = patch.Distance
	}
	if patch.Elevation != nil {
		w.Elevation = patch.Elevation
	}
	if patch.AvgHeartRate != nil {
		w.AvgHeartRate = patch.AvgHeartRate
	}
	if patch.Calories != nil {
		w.Calories = patch.Calories
	}
	w.Completed = patch.Completed
	w.Planned = patch.Planned

	_, err = s.db.Exec(ctx, `
		UPDATE workouts
		SET type=$2, title=$3, description=$4, date=$5,
		    duration=$6, distance=$7, elevation=$8, avg_heart_rate=$9, calories=$10,
		    completed=$11, planned=$12
		WHERE id=$1
	`, w.ID, w.Type, w.Title, w.Description, w.Date,
		w.Duration, w.Distance, w.Elevation, w.AvgHeartRate, w.Calories,
		w.Completed, w.Planned)
	if err != nil {
		return Workout{}, err
	}
	s.cache.InvalidateUser(ctx, w.UserID)
	return w, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	var userID string
	err := s.db.QueryRow(ctx, `
		DELETE FROM workouts WHERE id=$1
		RETURNING user_id
	`, id).Scan(&userID)
	if err != nil {
		return err
	}
	s.cache.InvalidateUser(ctx, userID)
	return nil
}
