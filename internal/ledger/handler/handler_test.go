package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"accessdesk/internal/ledger"
	"accessdesk/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	store  *ledger.InMemoryStore
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.store = ledger.NewInMemoryStore()

	h := New(ledger.NewService(s.store))
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) seed(n int) {
	ctx := context.Background()
	for i := 0; i < n; i++ {
		rec := &ledger.Record{
			EmployeeID:   fmt.Sprintf("E%04d", i+1),
			EmployeeName: "Jordan Doe",
			AppName:      "activate",
			Action:       true,
		}
		s.Require().NoError(s.store.Create(ctx, rec))
	}
}

type listResponse struct {
	Success bool        `json:"success"`
	Data    ledger.Page `json:"data"`
}

func (s *HandlerSuite) list(path string) *listResponse {
	req := testutil.NewRequest(s.T(), http.MethodGet, path)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	return testutil.UnmarshalResponse[listResponse](s.T(), rr)
}

func (s *HandlerSuite) TestList() {
	s.seed(15)

	s.Run("defaults to the first page of ten", func() {
		body := s.list("/logs")
		s.True(body.Success)
		s.Len(body.Data.Records, 10)
		s.Equal(int64(15), body.Data.TotalCount)
		s.Equal(2, body.Data.TotalPages)
	})

	s.Run("honors pagination params", func() {
		body := s.list("/logs?current=2&pageSize=10")
		s.Len(body.Data.Records, 5)
		s.Equal(2, body.Data.Page)
	})

	s.Run("invalid pagination params fall back to defaults", func() {
		body := s.list("/logs?current=-3&pageSize=zero")
		s.Len(body.Data.Records, 10)
		s.Equal(1, body.Data.Page)
		s.Equal(10, body.Data.PageSize)
	})

	s.Run("search narrows records", func() {
		body := s.list("/logs?search=e0003")
		s.Require().Len(body.Data.Records, 1)
		s.Equal("E0003", body.Data.Records[0].EmployeeID)
	})

	s.Run("descend sort order flips direction", func() {
		asc := s.list("/logs?sortField=employee_id")
		desc := s.list("/logs?sortField=employee_id&sortOrder=descend")
		s.Equal("E0001", asc.Data.Records[0].EmployeeID)
		s.Equal("E0015", desc.Data.Records[0].EmployeeID)
	})
}
