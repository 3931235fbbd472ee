package ledger

import (
	"context"

	"accessdesk/pkg/domerrors"
)

// Service exposes ledger listing to the logs API. Writing goes through the
// access orchestrator only; this service never creates or resolves records.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns a page of audit records.
func (s *Service) List(ctx context.Context, q ListQuery) (*Page, error) {
	page, err := s.store.List(ctx, q)
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to list action logs")
	}
	return page, nil
}
