package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"accessdesk/pkg/requestcontext"
	"accessdesk/pkg/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func newPendingRecord(employeeID, app string) *Record {
	return &Record{
		EmployeeID:   employeeID,
		EmployeeName: "Jordan Doe",
		IPAddress:    "10.1.2.3",
		AppName:      app,
		AppRole:      "agent",
		Action:       true,
		ActorID:      42,
	}
}

func (s *InMemoryStoreSuite) TestCreate() {
	ctx := context.Background()

	s.Run("assigns monotonic ids", func() {
		first := newPendingRecord("E1", "activate")
		second := newPendingRecord("E2", "activate")
		s.Require().NoError(s.store.Create(ctx, first))
		s.Require().NoError(s.store.Create(ctx, second))
		s.Equal(first.ID+1, second.ID)
	})

	s.Run("stamps creation time from the request clock", func() {
		now := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
		rec := newPendingRecord("E3", "helpdesk")
		s.Require().NoError(s.store.Create(requestcontext.WithTime(ctx, now), rec))
		s.Equal(now, rec.CreatedAt)
		s.False(rec.Resolved())
	})
}

func (s *InMemoryStoreSuite) TestResolve() {
	ctx := context.Background()

	s.Run("resolves a pending record once", func() {
		rec := newPendingRecord("E1", "activate")
		s.Require().NoError(s.store.Create(ctx, rec))

		res := Resolution{
			DataRequest:  json.RawMessage(`{"intent":true}`),
			DataResponse: json.RawMessage(`{"active":true}`),
			Status:       true,
			Message:      "Enable access for activate",
		}
		s.Require().NoError(s.store.Resolve(ctx, rec.ID, res))

		page, err := s.store.List(ctx, ListQuery{})
		s.Require().NoError(err)
		s.Require().Len(page.Records, 1)

		got := page.Records[0]
		s.True(got.Resolved())
		s.Require().NotNil(got.RequestStatus)
		s.True(*got.RequestStatus)
		s.Equal("Enable access for activate", got.RequestMessage)
		s.JSONEq(`{"active":true}`, string(got.DataResponse))
	})

	s.Run("second resolve returns not found", func() {
		rec := newPendingRecord("E2", "activate")
		s.Require().NoError(s.store.Create(ctx, rec))
		s.Require().NoError(s.store.Resolve(ctx, rec.ID, Resolution{Status: true}))

		err := s.store.Resolve(ctx, rec.ID, Resolution{Status: false})
		s.True(errors.Is(err, sentinel.ErrNotFound))
	})

	s.Run("unknown id returns not found", func() {
		err := s.store.Resolve(ctx, 9999, Resolution{Status: true})
		s.True(errors.Is(err, sentinel.ErrNotFound))
	})
}

func (s *InMemoryStoreSuite) TestList() {
	ctx := context.Background()

	seed := []struct {
		employeeID string
		name       string
		app        string
	}{
		{"E1", "Alice Martin", "activate"},
		{"E2", "Bob Ng", "helpdesk"},
		{"E3", "Cara Diaz", "activate"},
	}
	for _, row := range seed {
		rec := newPendingRecord(row.employeeID, row.app)
		rec.EmployeeName = row.name
		s.Require().NoError(s.store.Create(ctx, rec))
	}

	s.Run("defaults to newest first", func() {
		page, err := s.store.List(ctx, ListQuery{})
		s.Require().NoError(err)
		s.Require().Len(page.Records, 3)
		s.Equal("E3", page.Records[0].EmployeeID)
		s.Equal("E1", page.Records[2].EmployeeID)
	})

	s.Run("search matches name and application", func() {
		page, err := s.store.List(ctx, ListQuery{Search: "alice"})
		s.Require().NoError(err)
		s.Require().Len(page.Records, 1)
		s.Equal("E1", page.Records[0].EmployeeID)

		page, err = s.store.List(ctx, ListQuery{Search: "helpdesk"})
		s.Require().NoError(err)
		s.Require().Len(page.Records, 1)
		s.Equal("E2", page.Records[0].EmployeeID)
	})

	s.Run("sorts by named field", func() {
		page, err := s.store.List(ctx, ListQuery{SortField: "employee_name"})
		s.Require().NoError(err)
		s.Equal("Alice Martin", page.Records[0].EmployeeName)

		page, err = s.store.List(ctx, ListQuery{SortField: "employee_name", SortDescending: true})
		s.Require().NoError(err)
		s.Equal("Cara Diaz", page.Records[0].EmployeeName)
	})

	s.Run("paginates with totals", func() {
		page, err := s.store.List(ctx, ListQuery{Page: 2, PageSize: 2})
		s.Require().NoError(err)
		s.Len(page.Records, 1)
		s.Equal(int64(3), page.TotalCount)
		s.Equal(2, page.TotalPages)
	})

	s.Run("page beyond the end is empty, not an error", func() {
		page, err := s.store.List(ctx, ListQuery{Page: 10, PageSize: 10})
		s.Require().NoError(err)
		s.Empty(page.Records)
		s.Equal(int64(3), page.TotalCount)
	})
}
