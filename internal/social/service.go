package social

import (
	"context"
	"errors"
	"time"

	"github.com/borbigo/PeakForm/internal/db"
	"github.com/borbigo/PeakForm/internal/user"
)

var ErrSelfFollow = errors.New("cannot follow yourself")

const (
	feedLimit   = 50
	searchLimit = 20
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Follow inserts the edge if absent. Repeating a follow is a no-op, never an
// error: the edge set behaves like a set.
func (s *Service) Follow(ctx context.Context, followerID, followingID string) (Follow, error) {
	if followerID == followingID {
		return Follow{}, ErrSelfFollow
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_follows (follower_id, following_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, followerID, followingID)
	if err != nil {
		return Follow{}, err
	}
	return Follow{FollowerID: followerID, FollowingID: followingID}, nil
}

// Unfollow removes the edge if present. A missing edge is not an error.
func (s *Service) Unfollow(ctx context.Context, followerID, followingID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM user_follows
		WHERE follower_id=$1 AND following_id=$2
	`, followerID, followingID)
	return err
}

func (s *Service) Following(ctx context.Context, userID string) ([]user.Summary, error) {
	return s.edgeUsers(ctx, `
		SELECT u.id, u.name, u.email
		FROM user_follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id=$1
		ORDER BY f.created_at
	`, userID)
}

func (s *Service) Followers(ctx context.Context, userID string) ([]user.Summary, error) {
	return s.edgeUsers(ctx, `
		SELECT u.id, u.name, u.email
		FROM user_follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id=$1
		ORDER BY f.created_at
	`, userID)
}

func (s *Service) edgeUsers(ctx context.Context, sql, userID string) ([]user.Summary, error) {
	rows, err := s.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []user.Summary{}
	for rows.Next() {
		var u user.Summary
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// Feed returns the newest activities authored by the viewer or anyone the
// viewer follows, capped at feedLimit, with the authoring user and the linked
// workout embedded. Any dependency failure fails the whole call; partial
// feeds are never returned.
func (s *Service) Feed(ctx context.Context, viewerID string) ([]Activity, error) {
	rows, err := s.db.Query(ctx, `
		SELECT a.id, a.user_id, a.workout_id, a.type, a.content, a.created_at,
		       u.name, u.email,
		       w.id, w.type, w.title, w.duration, w.distance, w.date
		FROM activities a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN workouts w ON w.id = a.workout_id
		WHERE a.user_id = $1
		   OR a.user_id IN (SELECT following_id FROM user_follows WHERE follower_id=$1)
		ORDER BY a.created_at DESC
		LIMIT $2
	`, viewerID, feedLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []Activity{}
	for rows.Next() {
		var a Activity
		var workoutID *string
		var wID, wType, wTitle *string
		var wDuration *int
		var wDistance *float64
		var wDate *time.Time
		err := rows.Scan(&a.ID, &a.UserID, &workoutID, &a.Type, &a.Content, &a.CreatedAt,
			&a.User.Name, &a.User.Email,
			&wID, &wType, &wTitle, &wDuration, &wDistance, &wDate)
		if err != nil {
			return nil, err
		}
		a.User.ID = a.UserID
		if workoutID != nil {
			a.WorkoutID = *workoutID
		}
		if wID != nil {
			a.Workout = &WorkoutSummary{
				ID:       *wID,
				Type:     *wType,
				Title:    *wTitle,
				Duration: wDuration,
				Distance: wDistance,
				Date:     *wDate,
			}
		}
		activities = append(activities, a)
	}
	return activities, nil
}

// SearchUsers matches name or email case-insensitively, excluding the viewer.
// An empty query short-circuits to an empty result, not an error.
func (s *Service) SearchUsers(ctx context.Context, viewerID, query string) ([]user.Summary, error) {
	if query == "" {
		return []user.Summary{}, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, name, email
		FROM users
		WHERE (name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		  AND id <> $1
		LIMIT $3
	`, viewerID, query, searchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []user.Summary{}
	for rows.Next() {
		var u user.Summary
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
