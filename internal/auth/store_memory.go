package auth

import (
	"context"
	"strings"
	"sync"

	"accessdesk/pkg/sentinel"
)

// InMemoryStore backs tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*User
	byEmail map[string]*User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		nextID:  1,
		byID:    make(map[int64]*User),
		byEmail: make(map[string]*User),
	}
}

func (s *InMemoryStore) Create(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := s.byEmail[email]; exists {
		return sentinel.ErrConflict
	}

	user.ID = s.nextID
	s.nextID++

	stored := *user
	s.byID[stored.ID] = &stored
	s.byEmail[email] = &stored
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *InMemoryStore) Update(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[user.ID]
	if !ok {
		return sentinel.ErrNotFound
	}

	newEmail := strings.ToLower(user.Email)
	oldEmail := strings.ToLower(existing.Email)
	if newEmail != oldEmail {
		if _, taken := s.byEmail[newEmail]; taken {
			return sentinel.ErrConflict
		}
		delete(s.byEmail, oldEmail)
	}

	stored := *user
	s.byID[stored.ID] = &stored
	s.byEmail[newEmail] = &stored
	return nil
}
