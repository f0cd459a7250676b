package service

import (
	"context"
	"strings"
	"time"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

// TokenPair is what a successful login or refresh hands back.
type TokenPair struct {
	AccessToken     string    `json:"access_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
	RefreshToken    string    `json:"refresh_token"`
}

// Login accepts either the username or the email as identifier. The refresh
// token is persisted on the user row so it can be rotated and revoked.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*model.User, *TokenPair, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, nil, errno.InvalidArgumentErr.WithMessage("username or email is required")
	}

	user, err := s.users.GetByEmail(ctx, identifier)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		user, err = s.users.GetByUsername(ctx, identifier)
		if err != nil {
			return nil, nil, err
		}
	}
	if user == nil {
		return nil, nil, errno.NotFoundErr.WithMessage("user does not exist")
	}
	if !utils.VerifyPassword(password, user.Password) {
		return nil, nil, errno.UnauthenticatedErr.WithMessage("invalid credentials")
	}

	pair, err := s.issueTokens(ctx, user.UserID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout revokes the stored refresh token. The access token simply expires.
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	return s.users.UpdateRefreshToken(ctx, userID, "")
}

// RefreshTokens rotates the pair. The incoming token must match the stored
// one exactly, a rotated-out token is unusable even before it expires.
func (s *UserService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, errno.UnauthenticatedErr.WithMessage("refresh token is required")
	}
	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, errno.UnauthenticatedErr.WithMessage("refresh token is expired or used")
	}
	return s.issueTokens(ctx, userID)
}

func (s *UserService) issueTokens(ctx context.Context, userID int64) (*TokenPair, error) {
	access, expire, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRefreshToken(ctx, userID, refresh); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, AccessExpiresAt: expire, RefreshToken: refresh}, nil
}
