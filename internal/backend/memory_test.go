package backend

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"accessdesk/internal/directory"
	"accessdesk/pkg/sentinel"
)

type InMemoryAdapterSuite struct {
	suite.Suite
	adapter *InMemoryAdapter
}

func TestInMemoryAdapterSuite(t *testing.T) {
	suite.Run(t, new(InMemoryAdapterSuite))
}

func (s *InMemoryAdapterSuite) SetupTest() {
	s.adapter = NewInMemory()
}

func (s *InMemoryAdapterSuite) TestReadStatus() {
	ctx := context.Background()

	s.Run("unknown user", func() {
		_, err := s.adapter.ReadStatus(ctx, "ghost")
		s.True(errors.Is(err, sentinel.ErrNotFound))
	})

	s.Run("seeded user", func() {
		s.adapter.Seed("jdoe", false)
		status, err := s.adapter.ReadStatus(ctx, "jdoe")
		s.NoError(err)
		s.False(status)
	})
}

func (s *InMemoryAdapterSuite) TestWriteStatus() {
	ctx := context.Background()

	s.Run("existing user flips status", func() {
		s.adapter.Seed("jdoe", false)

		outcome, err := s.adapter.WriteStatus(ctx, true, "jdoe")
		s.NoError(err)
		s.NotNil(outcome)

		status, err := s.adapter.ReadStatus(ctx, "jdoe")
		s.NoError(err)
		s.True(status)
	})

	s.Run("unknown user reports zero rows but no error", func() {
		outcome, err := s.adapter.WriteStatus(ctx, true, "ghost")
		s.NoError(err)

		result, ok := outcome.(map[string]any)
		s.Require().True(ok)
		s.Equal(int64(0), result["rows_affected"])
	})
}

func (s *InMemoryAdapterSuite) TestCreateAccess() {
	ctx := context.Background()
	employee := directory.Employee{EmployeeID: "E1", NTLogin: "jdoe"}

	s.Run("new user is created enabled", func() {
		outcome, err := s.adapter.CreateAccess(ctx, employee, json.RawMessage(`{"role":"agent"}`))
		s.NoError(err)
		s.NotNil(outcome)

		status, err := s.adapter.ReadStatus(ctx, "jdoe")
		s.NoError(err)
		s.True(status)
	})

	s.Run("existing user yields nil outcome without error", func() {
		outcome, err := s.adapter.CreateAccess(ctx, employee, json.RawMessage(`{"role":"agent"}`))
		s.NoError(err)
		s.Nil(outcome)
	})
}
