package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"accessdesk/pkg/domerrors"
)

type AuthServiceSuite struct {
	suite.Suite
	store   *InMemoryStore
	service *Service
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.service = NewService(s.store, NewJWTService("test-signing-key", "accessdesk", time.Hour))
}

func (s *AuthServiceSuite) register(name, email, password string) *User {
	user, err := s.service.Register(context.Background(), name, email, password, false)
	s.Require().NoError(err)
	return user
}

func (s *AuthServiceSuite) TestRegister() {
	ctx := context.Background()

	s.Run("missing fields", func() {
		_, err := s.service.Register(ctx, "", "a@example.com", "pw", false)
		s.True(domerrors.HasCode(err, domerrors.CodeBadRequest))
	})

	s.Run("password is stored hashed", func() {
		user := s.register("Jordan", "jdoe@example.com", "hunter22")
		s.NotEqual("hunter22", user.PasswordHash)
		s.True(user.MatchPassword("hunter22"))
		s.False(user.MatchPassword("wrong"))
	})

	s.Run("duplicate email", func() {
		s.register("Jordan", "dup@example.com", "hunter22")
		_, err := s.service.Register(ctx, "Other", "dup@example.com", "hunter22", false)
		s.True(domerrors.HasCode(err, domerrors.CodeAlreadyExists))
	})
}

func (s *AuthServiceSuite) TestLogin() {
	ctx := context.Background()
	s.register("Jordan", "jdoe@example.com", "hunter22")

	s.Run("missing credentials", func() {
		_, err := s.service.Login(ctx, "jdoe@example.com", "")
		s.True(domerrors.HasCode(err, domerrors.CodeBadRequest))
	})

	s.Run("unknown email and wrong password are indistinguishable", func() {
		_, unknownErr := s.service.Login(ctx, "ghost@example.com", "hunter22")
		_, wrongErr := s.service.Login(ctx, "jdoe@example.com", "wrong")

		s.True(domerrors.HasCode(unknownErr, domerrors.CodeUnauthorized))
		s.True(domerrors.HasCode(wrongErr, domerrors.CodeUnauthorized))
		s.Equal(unknownErr.Error(), wrongErr.Error())
	})

	s.Run("valid credentials issue a token", func() {
		result, err := s.service.Login(ctx, "jdoe@example.com", "hunter22")
		s.Require().NoError(err)
		s.NotEmpty(result.Token)
		s.Equal("jdoe@example.com", result.User.Email)
	})
}

func (s *AuthServiceSuite) TestUpdateDetails() {
	ctx := context.Background()
	user := s.register("Jordan", "jdoe@example.com", "hunter22")

	s.Run("name and email update without password", func() {
		result, err := s.service.UpdateDetails(ctx, user.ID, UpdateDetailsRequest{
			Name:  "Jordan D",
			Email: "jordan.d@example.com",
		})
		s.Require().NoError(err)
		s.Equal("Jordan D", result.User.Name)
		s.NotEmpty(result.Token)
	})

	s.Run("password change requires the current password", func() {
		_, err := s.service.UpdateDetails(ctx, user.ID, UpdateDetailsRequest{
			Name:            "Jordan D",
			Email:           "jordan.d@example.com",
			Password:        "newpass",
			CurrentPassword: "wrong",
		})
		s.True(domerrors.HasCode(err, domerrors.CodeUnauthorized))
	})

	s.Run("password change with current password rotates the hash", func() {
		_, err := s.service.UpdateDetails(ctx, user.ID, UpdateDetailsRequest{
			Name:            "Jordan D",
			Email:           "jordan.d@example.com",
			Password:        "newpass",
			CurrentPassword: "hunter22",
		})
		s.Require().NoError(err)

		result, err := s.service.Login(ctx, "jordan.d@example.com", "newpass")
		s.NoError(err)
		s.NotNil(result)
	})

	s.Run("unknown user", func() {
		_, err := s.service.UpdateDetails(ctx, 9999, UpdateDetailsRequest{Name: "X", Email: "x@example.com"})
		s.True(domerrors.HasCode(err, domerrors.CodeNotFound))
	})
}

func (s *AuthServiceSuite) TestGetMe() {
	user := s.register("Jordan", "jdoe@example.com", "hunter22")

	got, err := s.service.GetMe(context.Background(), user.ID)
	s.Require().NoError(err)
	s.Equal(user.Email, got.Email)

	_, err = s.service.GetMe(context.Background(), 9999)
	s.True(domerrors.HasCode(err, domerrors.CodeNotFound))
}
