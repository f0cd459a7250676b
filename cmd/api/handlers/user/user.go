package user

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers"
	"github.com/Joydas46/VideoTube-Twitter/cmd/user/service"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
)

type Handler struct {
	svc *service.UserService
}

func NewHandler(svc *service.UserService) *Handler {
	return &Handler{svc: svc}
}

type RegisterParam struct {
	UserName string `form:"username"`
	FullName string `form:"fullname"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *Handler) Register(ctx context.Context, c *app.RequestContext) {
	var param RegisterParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}

	avatarPath, avatarType, err := handlers.SaveUpload(c, "avatar")
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	defer handlers.CleanupUpload(avatarPath)
	coverPath, coverType, err := handlers.SaveOptionalUpload(c, "cover_image")
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	defer handlers.CleanupUpload(coverPath)

	user, err := h.svc.Register(ctx, &service.RegisterRequest{
		UserName:          param.UserName,
		FullName:          param.FullName,
		Email:             param.Email,
		Password:          param.Password,
		AvatarPath:        avatarPath,
		AvatarContentType: avatarType,
		CoverPath:         coverPath,
		CoverContentType:  coverType,
	})
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendCreated(c, user, "user registered successfully")
}

type LoginParam struct {
	UserName string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *Handler) Login(ctx context.Context, c *app.RequestContext) {
	var param LoginParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	identifier := param.UserName
	if identifier == "" {
		identifier = param.Email
	}

	user, pair, err := h.svc.Login(ctx, identifier, param.Password)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, map[string]interface{}{
		"user":   user,
		"tokens": pair,
	}, "logged in successfully")
}

func (h *Handler) Logout(ctx context.Context, c *app.RequestContext) {
	p, _ := handlers.GetPrincipal(c)
	if err := h.svc.Logout(ctx, p.UserID); err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, nil, "logged out successfully")
}

type RefreshParam struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

func (h *Handler) RefreshToken(ctx context.Context, c *app.RequestContext) {
	var param RefreshParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	pair, err := h.svc.RefreshTokens(ctx, param.RefreshToken)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, pair, "tokens refreshed")
}

type ChangePasswordParam struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}

func (h *Handler) ChangePassword(ctx context.Context, c *app.RequestContext) {
	var param ChangePasswordParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	if err := h.svc.ChangePassword(ctx, p.UserID, param.OldPassword, param.NewPassword); err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, nil, "password changed successfully")
}

func (h *Handler) CurrentUser(ctx context.Context, c *app.RequestContext) {
	p, _ := handlers.GetPrincipal(c)
	user, err := h.svc.GetCurrentUser(ctx, p.UserID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, user, "current user fetched")
}

type UpdateAccountParam struct {
	UserName string `json:"username" form:"username"`
	FullName string `json:"fullname" form:"fullname"`
	Email    string `json:"email" form:"email"`
}

func (h *Handler) UpdateAccount(ctx context.Context, c *app.RequestContext) {
	var param UpdateAccountParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	user, err := h.svc.UpdateAccount(ctx, p.UserID, param.UserName, param.FullName, param.Email)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, user, "account updated successfully")
}

func (h *Handler) UpdateAvatar(ctx context.Context, c *app.RequestContext) {
	path, contentType, err := handlers.SaveUpload(c, "avatar")
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	defer handlers.CleanupUpload(path)

	p, _ := handlers.GetPrincipal(c)
	user, err := h.svc.UpdateAvatar(ctx, p.UserID, path, contentType)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, user, "avatar updated successfully")
}

func (h *Handler) UpdateCover(ctx context.Context, c *app.RequestContext) {
	path, contentType, err := handlers.SaveUpload(c, "cover_image")
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	defer handlers.CleanupUpload(path)

	p, _ := handlers.GetPrincipal(c)
	user, err := h.svc.UpdateCover(ctx, p.UserID, path, contentType)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, user, "cover image updated successfully")
}

func (h *Handler) ChannelProfile(ctx context.Context, c *app.RequestContext) {
	username := c.Param("username")
	profile, err := h.svc.GetChannelProfile(ctx, username, handlers.OptionalPrincipal(c))
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, profile, "channel profile fetched")
}

func (h *Handler) WatchHistory(ctx context.Context, c *app.RequestContext) {
	p, _ := handlers.GetPrincipal(c)
	rows, err := h.svc.GetWatchHistory(ctx, p.UserID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, rows, "watch history fetched")
}
