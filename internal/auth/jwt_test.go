package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"accessdesk/pkg/domerrors"
)

type JWTSuite struct {
	suite.Suite
	jwt *JWTService
}

func TestJWTSuite(t *testing.T) {
	suite.Run(t, new(JWTSuite))
}

func (s *JWTSuite) SetupTest() {
	s.jwt = NewJWTService("test-signing-key", "accessdesk", time.Hour)
}

func (s *JWTSuite) TestRoundTrip() {
	user := &User{ID: 42, Name: "Jordan", Email: "jdoe@example.com", IsAdmin: true}

	token, err := s.jwt.GenerateAccessToken(user)
	s.Require().NoError(err)
	s.NotEmpty(token)

	claims, err := s.jwt.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal("42", claims.UserID)
	s.True(claims.IsAdmin)
	s.Equal("accessdesk", claims.Issuer)

	userID, err := s.jwt.ExtractUserID(token)
	s.NoError(err)
	s.Equal(int64(42), userID)
}

func (s *JWTSuite) TestValidateToken() {
	user := &User{ID: 42}

	s.Run("garbage token", func() {
		_, err := s.jwt.ValidateToken("not-a-token")
		s.True(domerrors.HasCode(err, domerrors.CodeUnauthorized))
	})

	s.Run("wrong signing key", func() {
		other := NewJWTService("other-key", "accessdesk", time.Hour)
		token, err := other.GenerateAccessToken(user)
		s.Require().NoError(err)

		_, err = s.jwt.ValidateToken(token)
		s.True(domerrors.HasCode(err, domerrors.CodeUnauthorized))
	})

	s.Run("expired token", func() {
		expired := NewJWTService("test-signing-key", "accessdesk", -time.Minute)
		token, err := expired.GenerateAccessToken(user)
		s.Require().NoError(err)

		_, err = s.jwt.ValidateToken(token)
		s.True(domerrors.HasCode(err, domerrors.CodeUnauthorized))
		s.Contains(err.Error(), "expired")
	})
}
