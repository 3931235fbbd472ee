package directory

import (
	"context"
	"strings"
	"sync"

	"accessdesk/pkg/sentinel"
)

// InMemoryStore backs tests and local runs without the directory database.
type InMemoryStore struct {
	mu        sync.RWMutex
	employees map[string]Employee
	locations []Location
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{employees: make(map[string]Employee)}
}

// SeedEmployee registers an employee keyed by ntlogin (case-insensitive).
func (s *InMemoryStore) SeedEmployee(emp Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[strings.ToLower(emp.NTLogin)] = emp
}

// SeedLocations replaces the location list.
func (s *InMemoryStore) SeedLocations(locations []Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = append([]Location{}, locations...)
}

func (s *InMemoryStore) FindEmployee(_ context.Context, ntlogin string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, ok := s.employees[strings.ToLower(ntlogin)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &emp, nil
}

func (s *InMemoryStore) ListLocations(_ context.Context) ([]Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Location{}, s.locations...), nil
}
