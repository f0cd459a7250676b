package service

import (
	"context"
	"strings"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	"github.com/Joydas46/VideoTube-Twitter/pkg/constants"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/oss"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

func (s *UserService) GetCurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errno.NotFoundErr.WithMessage("user does not exist")
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLen {
		return errno.InvalidArgumentErr.WithMessage("new password is too short")
	}
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(oldPassword, user.Password) {
		return errno.UnauthenticatedErr.WithMessage("old password is incorrect")
	}
	hashed, err := utils.Crypt(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hashed)
}

func (s *UserService) UpdateAccount(ctx context.Context, userID int64, username, fullname, email string) (*model.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(fullname) == "" || strings.TrimSpace(email) == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("all fields are required")
	}
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.UserName != username || user.Email != email {
		taken, err := s.otherOwnsIdentity(ctx, userID, username, email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errno.AlreadyExistsErr.WithMessage("username or email already taken")
		}
	}
	if err := s.users.UpdateAccount(ctx, userID, username, fullname, email); err != nil {
		return nil, err
	}
	return s.GetCurrentUser(ctx, userID)
}

// otherOwnsIdentity reports whether a different user already holds the
// username or email.
func (s *UserService) otherOwnsIdentity(ctx context.Context, userID int64, username, email string) (bool, error) {
	if byName, err := s.users.GetByUsername(ctx, username); err != nil {
		return false, err
	} else if byName != nil && byName.UserID != userID {
		return true, nil
	}
	byEmail, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return byEmail != nil && byEmail.UserID != userID, nil
}

// UpdateAvatar uploads the replacement first, points the row at it, then
// drops the old blob. A failed delete only leaks a blob, never the row.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, localPath, contentType string) (*model.User, error) {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	obj, err := s.storage.PutImage(ctx, localPath, contentType)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateAvatar(ctx, userID, obj.ID, obj.URL); err != nil {
		s.removeBlob(ctx, obj.ID, oss.KindImage)
		return nil, err
	}
	s.removeBlob(ctx, user.AvatarID, oss.KindImage)
	return s.GetCurrentUser(ctx, userID)
}

func (s *UserService) UpdateCover(ctx context.Context, userID int64, localPath, contentType string) (*model.User, error) {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	obj, err := s.storage.PutImage(ctx, localPath, contentType)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateCover(ctx, userID, obj.ID, obj.URL); err != nil {
		s.removeBlob(ctx, obj.ID, oss.KindImage)
		return nil, err
	}
	s.removeBlob(ctx, user.CoverID, oss.KindImage)
	return s.GetCurrentUser(ctx, userID)
}
