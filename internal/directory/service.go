package directory

import (
	"context"
	"errors"
	"strings"

	"accessdesk/pkg/domerrors"
	"accessdesk/pkg/sentinel"
)

// Service exposes directory lookups to handlers and the registry's dynamic
// role resolution.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetEmployee resolves a worker by ntlogin.
func (s *Service) GetEmployee(ctx context.Context, ntlogin string) (*Employee, error) {
	ntlogin = strings.TrimSpace(ntlogin)
	if ntlogin == "" {
		return nil, domerrors.New(domerrors.CodeBadRequest, "ntlogin is required")
	}

	emp, err := s.store.FindEmployee(ctx, ntlogin)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, domerrors.Newf(domerrors.CodeNotFound, "user not found with id of %s", ntlogin)
	}
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to look up employee")
	}
	return emp, nil
}

// ListLocations returns the site list. An empty list is valid.
func (s *Service) ListLocations(ctx context.Context) ([]Location, error) {
	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to list locations")
	}
	return locations, nil
}
