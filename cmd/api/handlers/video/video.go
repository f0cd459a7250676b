package video

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers"
	"github.com/Joydas46/VideoTube-Twitter/cmd/video/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/cmd/video/service"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

type Handler struct {
	svc *service.VideoService
}

func NewHandler(svc *service.VideoService) *Handler {
	return &Handler{svc: svc}
}

type FeedParam struct {
	OwnerID  string `query:"ownerId"`
	Query    string `query:"query"`
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
	PageNum  int64  `query:"page"`
	PageSize int64  `query:"limit"`
}

func (h *Handler) Feed(ctx context.Context, c *app.RequestContext) {
	var param FeedParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	ownerID, ok := utils.ParseID(param.OwnerID)
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("ownerId is required"))
		return
	}

	page, err := h.svc.Feed(ctx, db.FeedParams{
		OwnerID:   ownerID,
		Query:     param.Query,
		SortField: param.SortBy,
		SortDesc:  param.SortType != "asc",
		PageNum:   param.PageNum,
		PageSize:  param.PageSize,
	})
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, page, "videos fetched")
}

type PublishParam struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

func (h *Handler) Publish(ctx context.Context, c *app.RequestContext) {
	var param PublishParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	videoPath, _, err := handlers.SaveUpload(c, "video_file")
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	defer handlers.CleanupUpload(videoPath)
	thumbPath, thumbType, err := handlers.SaveOptionalUpload(c, "thumbnail")
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	defer handlers.CleanupUpload(thumbPath)

	p, _ := handlers.GetPrincipal(c)
	video, err := h.svc.Publish(ctx, p.UserID, &service.PublishRequest{
		Title:            param.Title,
		Description:      param.Description,
		VideoPath:        videoPath,
		ThumbPath:        thumbPath,
		ThumbContentType: thumbType,
	})
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendCreated(c, video, "video published successfully")
}

func (h *Handler) GetVideo(ctx context.Context, c *app.RequestContext) {
	videoID, ok := utils.ParseID(c.Param("videoId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid video id"))
		return
	}
	row, err := h.svc.GetVideo(ctx, videoID, handlers.OptionalPrincipal(c))
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, row, "video fetched")
}

type UpdateParam struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

func (h *Handler) UpdateVideo(ctx context.Context, c *app.RequestContext) {
	videoID, ok := utils.ParseID(c.Param("videoId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid video id"))
		return
	}
	var param UpdateParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	thumbPath, thumbType, err := handlers.SaveOptionalUpload(c, "thumbnail")
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	defer handlers.CleanupUpload(thumbPath)

	p, _ := handlers.GetPrincipal(c)
	video, err := h.svc.UpdateVideo(ctx, videoID, p.UserID, &service.UpdateRequest{
		Title:            param.Title,
		Description:      param.Description,
		ThumbPath:        thumbPath,
		ThumbContentType: thumbType,
	})
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, video, "video updated successfully")
}

func (h *Handler) DeleteVideo(ctx context.Context, c *app.RequestContext) {
	videoID, ok := utils.ParseID(c.Param("videoId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid video id"))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	if err := h.svc.DeleteVideo(ctx, videoID, p.UserID); err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, nil, "video deleted successfully")
}

func (h *Handler) TogglePublish(ctx context.Context, c *app.RequestContext) {
	videoID, ok := utils.ParseID(c.Param("videoId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid video id"))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	published, err := h.svc.TogglePublish(ctx, videoID, p.UserID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, map[string]bool{"is_published": published}, "publish state toggled")
}
