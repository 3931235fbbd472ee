package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"accessdesk/internal/access"
	"accessdesk/internal/directory"
	"accessdesk/internal/ledger"
	"accessdesk/internal/registry"
	"accessdesk/pkg/domerrors"
	"accessdesk/pkg/testutil"
)

// fakeService scripts orchestrator responses for transport-level tests.
type fakeService struct {
	apps  []registry.Application
	roles []registry.Role

	status    bool
	statusErr error

	createRec *ledger.Record
	createErr error

	setRec *ledger.Record
	setErr error

	lastCreate access.CreateAccessRequest
	lastSet    access.SetStatusRequest
}

func (f *fakeService) ListApplications() []registry.Application { return f.apps }

func (f *fakeService) ListRoles(_ context.Context, application string) ([]registry.Role, error) {
	if application == "payroll" {
		return nil, domerrors.New(domerrors.CodeUnknownApplication, "application not found")
	}
	return f.roles, nil
}

func (f *fakeService) GetStatus(_ context.Context, _ access.GetStatusRequest) (bool, error) {
	return f.status, f.statusErr
}

func (f *fakeService) CreateAccess(_ context.Context, req access.CreateAccessRequest) (*ledger.Record, error) {
	f.lastCreate = req
	return f.createRec, f.createErr
}

func (f *fakeService) SetStatus(_ context.Context, req access.SetStatusRequest) (*ledger.Record, error) {
	f.lastSet = req
	return f.setRec, f.setErr
}

type HandlerSuite struct {
	suite.Suite
	service *fakeService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = &fakeService{
		apps:      []registry.Application{{Name: "activate", Label: "Activate"}},
		roles:     []registry.Role{{ID: "agent", Label: "Agent"}},
		createRec: &ledger.Record{ID: 1},
		setRec:    &ledger.Record{ID: 2},
	}

	h := New(s.service, slog.New(slog.DiscardHandler))
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) TestListApplications() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/applications")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	testutil.AssertJSONContains(s.T(), rr, "success", true)
}

func (s *HandlerSuite) TestListRoles() {
	s.Run("known application", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/applications/activate/roles")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})

	s.Run("unknown application maps to 404", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/applications/payroll/roles")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "unknown_application")
	})

	s.Run("nil role list renders as empty array", func() {
		s.service.roles = nil
		req := testutil.NewRequest(s.T(), http.MethodGet, "/applications/activate/roles")
		rr := testutil.DoRequest(s.router, req)

		var body struct {
			Data []registry.Role `json:"data"`
		}
		s.Require().NoError(json.Unmarshal(testutil.ReadBody(s.T(), rr), &body))
		s.NotNil(body.Data)
		s.Empty(body.Data)
	})
}

func (s *HandlerSuite) TestGetStatus() {
	s.Run("malformed body maps to 400", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/application/application-status", "{")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("status reaches the response body", func() {
		s.service.status = true
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/application/application-status", Envelope[StatusPayload]{
			Payload: StatusPayload{
				Application: "activate",
				Employee:    &directory.Employee{NTLogin: "jdoe"},
			},
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "data", true)
	})

	s.Run("missing user maps to 404 with message", func() {
		s.service.statusErr = domerrors.New(domerrors.CodeNotFound, "user doesn't exist")
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/application/application-status", Envelope[StatusPayload]{
			Payload: StatusPayload{
				Application: "activate",
				Employee:    &directory.Employee{NTLogin: "ghost"},
			},
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
		testutil.AssertJSONContains(s.T(), rr, "error_description", "user doesn't exist")
	})
}

func (s *HandlerSuite) TestCreateAccess() {
	payload := Envelope[CreatePayload]{
		Payload: CreatePayload{
			Application: "activate",
			Permission:  json.RawMessage(`{"role":"agent"}`),
			Employee:    &directory.Employee{EmployeeID: "E1001", NTLogin: "jdoe"},
		},
	}

	s.Run("created access answers 201", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/application/user", payload)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "msg", "User created successfully")
		s.Equal("activate", s.lastCreateApp())
		s.JSONEq(`{"role":"agent"}`, string(s.service.lastCreate.Permission))
	})

	s.Run("duplicate maps to 409", func() {
		s.service.createErr = domerrors.New(domerrors.CodeAlreadyExists, "application user already exists")
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/application/user", payload)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "already_exists")
	})

	s.Run("audit failure maps to 500 without description", func() {
		s.service.createErr = domerrors.New(domerrors.CodeAuditFailure, "cannot create action log")
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/application/user", payload)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "audit_failure")
		errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.NotContains(errResp, "error_description")
	})
}

func (s *HandlerSuite) TestSetStatus() {
	enabled := false
	payload := Envelope[UpdatePayload]{
		Payload: UpdatePayload{
			Application: "helpdesk",
			Enabled:     &enabled,
			Role:        "technician",
			Employee:    &directory.Employee{EmployeeID: "E1001", NTLogin: "jdoe"},
		},
	}

	s.Run("update answers 201", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/application", payload)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "msg", "Application updated successfully")

		s.Require().NotNil(s.service.lastSet.Enabled)
		s.False(*s.service.lastSet.Enabled)
		s.Equal("technician", s.service.lastSet.Role)
	})

	s.Run("missing applicationStatus maps to 400", func() {
		s.service.setErr = domerrors.New(domerrors.CodeBadRequest, "please fill all the required fields")
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/application", Envelope[UpdatePayload]{
			Payload: UpdatePayload{
				Application: "helpdesk",
				Employee:    &directory.Employee{NTLogin: "jdoe"},
			},
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *HandlerSuite) lastCreateApp() string {
	return s.service.lastCreate.Application
}
