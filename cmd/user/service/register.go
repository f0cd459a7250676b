package service

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	"github.com/Joydas46/VideoTube-Twitter/pkg/constants"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/oss"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

// RegisterRequest carries the account fields plus the multipart uploads
// already spooled to local temp files by the handler.
type RegisterRequest struct {
	UserName string
	FullName string
	Email    string
	Password string

	AvatarPath        string
	AvatarContentType string
	CoverPath         string
	CoverContentType  string
}

func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	for _, field := range []string{req.UserName, req.FullName, req.Email, req.Password} {
		if strings.TrimSpace(field) == "" {
			return nil, errno.InvalidArgumentErr.WithMessage("all fields are required")
		}
	}
	if len(req.Password) < constants.MinPasswordLen {
		return nil, errno.InvalidArgumentErr.WithMessage("password is too short")
	}
	if req.AvatarPath == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("avatar file is required")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.UserName, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errno.AlreadyExistsErr.WithMessage("username or email already taken")
	}

	hashed, err := utils.Crypt(req.Password)
	if err != nil {
		return nil, err
	}

	avatar, err := s.storage.PutImage(ctx, req.AvatarPath, req.AvatarContentType)
	if err != nil {
		return nil, err
	}
	var cover *oss.Object
	if req.CoverPath != "" {
		cover, err = s.storage.PutImage(ctx, req.CoverPath, req.CoverContentType)
		if err != nil {
			s.removeBlob(ctx, avatar.ID, oss.KindImage)
			return nil, err
		}
	}

	user := &model.User{
		UserID:    s.idgen.Generate(),
		UserName:  req.UserName,
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  hashed,
		AvatarID:  avatar.ID,
		AvatarURL: avatar.URL,
	}
	if cover != nil {
		user.CoverID = cover.ID
		user.CoverURL = cover.URL
	}

	// the row is the source of truth: if it cannot be written, the uploaded
	// blobs are orphans and must go
	if err := s.users.Create(ctx, user); err != nil {
		s.removeBlob(ctx, avatar.ID, oss.KindImage)
		if cover != nil {
			s.removeBlob(ctx, cover.ID, oss.KindImage)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) removeBlob(ctx context.Context, id string, kind oss.Kind) {
	if id == "" {
		return
	}
	if err := s.storage.Remove(ctx, id, kind); err != nil {
		hlog.CtxWarnf(ctx, "failed to remove blob %s: %v", id, err)
	}
}
