package interaction

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers"
	"github.com/Joydas46/VideoTube-Twitter/cmd/interaction/service"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

type Handler struct {
	svc *service.InteractionService
}

func NewHandler(svc *service.InteractionService) *Handler {
	return &Handler{svc: svc}
}

type CommentParam struct {
	Content string `json:"content" form:"content"`
}

func (h *Handler) AddComment(ctx context.Context, c *app.RequestContext) {
	videoID, ok := utils.ParseID(c.Param("videoId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid video id"))
		return
	}
	var param CommentParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	comment, err := h.svc.AddComment(ctx, p.UserID, videoID, param.Content)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendCreated(c, comment, "comment added successfully")
}

type ListCommentsParam struct {
	PageNum  int64 `query:"page"`
	PageSize int64 `query:"limit"`
}

func (h *Handler) ListComments(ctx context.Context, c *app.RequestContext) {
	videoID, ok := utils.ParseID(c.Param("videoId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid video id"))
		return
	}
	var param ListCommentsParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	page, err := h.svc.ListComments(ctx, videoID, param.PageNum, param.PageSize)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, page, "comments fetched")
}

func (h *Handler) UpdateComment(ctx context.Context, c *app.RequestContext) {
	commentID, ok := utils.ParseID(c.Param("commentId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid comment id"))
		return
	}
	var param CommentParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	comment, err := h.svc.UpdateComment(ctx, commentID, p.UserID, param.Content)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, comment, "comment updated successfully")
}

func (h *Handler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	commentID, ok := utils.ParseID(c.Param("commentId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid comment id"))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	if err := h.svc.DeleteComment(ctx, commentID, p.UserID); err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, nil, "comment deleted successfully")
}

func (h *Handler) ToggleVideoLike(ctx context.Context, c *app.RequestContext) {
	videoID, ok := utils.ParseID(c.Param("videoId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid video id"))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	liked, err := h.svc.ToggleVideoLike(ctx, p.UserID, videoID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, map[string]bool{"is_liked": liked}, "like toggled")
}

func (h *Handler) ToggleCommentLike(ctx context.Context, c *app.RequestContext) {
	commentID, ok := utils.ParseID(c.Param("commentId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid comment id"))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	liked, err := h.svc.ToggleCommentLike(ctx, p.UserID, commentID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, map[string]bool{"is_liked": liked}, "like toggled")
}

func (h *Handler) ToggleTweetLike(ctx context.Context, c *app.RequestContext) {
	tweetID, ok := utils.ParseID(c.Param("tweetId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid tweet id"))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	liked, err := h.svc.ToggleTweetLike(ctx, p.UserID, tweetID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, map[string]bool{"is_liked": liked}, "like toggled")
}

func (h *Handler) LikedVideos(ctx context.Context, c *app.RequestContext) {
	p, _ := handlers.GetPrincipal(c)
	rows, err := h.svc.ListLikedVideos(ctx, p.UserID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, rows, "liked videos fetched")
}
