package auth

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"accessdesk/pkg/requestcontext"
	"accessdesk/pkg/testutil"
)

type MiddlewareSuite struct {
	suite.Suite
	jwt     *JWTService
	handler http.Handler
	gotUser int64
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) SetupTest() {
	s.jwt = NewJWTService("test-signing-key", "accessdesk", time.Hour)
	s.gotUser = 0

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.gotUser = requestcontext.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	s.handler = RequireAuth(s.jwt, slog.New(slog.DiscardHandler))(inner)
}

func (s *MiddlewareSuite) TestRequireAuth() {
	s.Run("missing header", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/auth/me")
		rr := testutil.DoRequest(s.handler, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("non-bearer scheme", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/auth/me")
		req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
		rr := testutil.DoRequest(s.handler, req)
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})

	s.Run("invalid token", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/auth/me")
		req.Header.Set("Authorization", "Bearer garbage")
		rr := testutil.DoRequest(s.handler, req)
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})

	s.Run("valid token injects the user id", func() {
		token, err := s.jwt.GenerateAccessToken(&User{ID: 42})
		s.Require().NoError(err)

		req := testutil.NewRequest(s.T(), http.MethodGet, "/auth/me")
		req.Header.Set("Authorization", "Bearer "+token)
		rr := testutil.DoRequest(s.handler, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Equal(int64(42), s.gotUser)
	})
}
