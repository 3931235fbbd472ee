package auth

import (
	"context"
	"errors"
	"strings"

	"accessdesk/pkg/domerrors"
	"accessdesk/pkg/sentinel"
)

// Service handles portal operator authentication and profile updates.
type Service struct {
	store Store
	jwt   *JWTService
}

func NewService(store Store, jwt *JWTService) *Service {
	return &Service{store: store, jwt: jwt}
}

// LoginResult carries the authenticated user and their access token.
type LoginResult struct {
	User  *User
	Token string
}

// Login verifies credentials and issues an access token. Invalid email and
// invalid password produce the same error so the endpoint doesn't confirm
// which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, domerrors.New(domerrors.CodeBadRequest, "email or password is missing")
	}

	user, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, domerrors.New(domerrors.CodeUnauthorized, "invalid credentials")
	}
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to look up user")
	}

	if !user.MatchPassword(password) {
		return nil, domerrors.New(domerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to issue token")
	}
	return &LoginResult{User: user, Token: token}, nil
}

// GetMe returns the authenticated user's profile.
func (s *Service) GetMe(ctx context.Context, userID int64) (*User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, domerrors.New(domerrors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to look up user")
	}
	return user, nil
}

// UpdateDetailsRequest carries a profile update. Password changes require
// the current password.
type UpdateDetailsRequest struct {
	Name            string
	Email           string
	Password        string
	CurrentPassword string
}

// UpdateDetails updates name/email and optionally rotates the password,
// then issues a fresh token reflecting the new profile.
func (s *Service) UpdateDetails(ctx context.Context, userID int64, req UpdateDetailsRequest) (*LoginResult, error) {
	if req.Name == "" || req.Email == "" {
		return nil, domerrors.New(domerrors.CodeBadRequest, "name and email are required")
	}

	user, err := s.store.FindByID(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, domerrors.New(domerrors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to look up user")
	}

	if req.Password != "" {
		if !user.MatchPassword(req.CurrentPassword) {
			return nil, domerrors.New(domerrors.CodeUnauthorized, "current password does not match")
		}
		hash, err := HashPassword(req.Password)
		if err != nil {
			return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to hash password")
		}
		user.PasswordHash = hash
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = strings.TrimSpace(req.Email)

	if err := s.store.Update(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, domerrors.New(domerrors.CodeAlreadyExists, "email already in use")
		}
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to update user")
	}

	token, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to issue token")
	}
	return &LoginResult{User: user, Token: token}, nil
}

// Register creates a portal user. Used by seeding and admin tooling.
func (s *Service) Register(ctx context.Context, name, email, password string, isAdmin bool) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domerrors.New(domerrors.CodeBadRequest, "name, email and password are required")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to hash password")
	}

	user := &User{Name: name, Email: strings.ToLower(email), PasswordHash: hash, IsAdmin: isAdmin}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, domerrors.New(domerrors.CodeAlreadyExists, "email already in use")
		}
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to create user")
	}
	return user, nil
}
