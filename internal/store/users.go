// internal/store/users.go
package store

import (
	"context"
	"strings"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/storage"
)

// CreateUser registers a user keyed by email. The caller supplies the
// password hash; the store never sees plaintext passwords.
func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	key := strings.ToLower(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[key]; exists {
		return ErrEmailTaken
	}

	u := user
	s.users[key] = &u
	s.persistLocked(ctx, storage.KeyRegisteredUsers)
	return nil
}

func (s *Store) UserByEmail(email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return *u, nil
}

func (s *Store) UserByID(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return *u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// Users returns every registered user.
func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out
}

// userIDsLocked is used for announcement fan-out.
func (s *Store) userIDsLocked() []string {
	ids := make([]string, 0, len(s.users))
	for _, u := range s.users {
		ids = append(ids, u.ID)
	}
	return ids
}
