package user

import (
	"context"
	"strings"

	"github.com/borbigo/PeakForm/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) FindByID(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, created_at
		FROM users WHERE id=$1
	`, id)
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) ProfileOf(ctx context.Context, id string) (Profile, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: u, Initials: Initials(u.Name)}, nil
}

// Initials derives up to two avatar letters from a display name.
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	initials := firstLetter(fields[0])
	if len(fields) > 1 {
		initials += firstLetter(fields[len(fields)-1])
	}
	return strings.ToUpper(initials)
}

func firstLetter(word string) string {
	for _, r := range word {
		return string(r)
	}
	return ""
}
