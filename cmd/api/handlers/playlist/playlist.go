package playlist

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers"
	"github.com/Joydas46/VideoTube-Twitter/cmd/playlist/service"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

type Handler struct {
	svc *service.PlaylistService
}

func NewHandler(svc *service.PlaylistService) *Handler {
	return &Handler{svc: svc}
}

type PlaylistParam struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

func (h *Handler) Create(ctx context.Context, c *app.RequestContext) {
	var param PlaylistParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	playlist, err := h.svc.Create(ctx, p.UserID, param.Name, param.Description)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendCreated(c, playlist, "playlist created successfully")
}

func (h *Handler) Get(ctx context.Context, c *app.RequestContext) {
	playlistID, ok := utils.ParseID(c.Param("playlistId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid playlist id"))
		return
	}
	detail, err := h.svc.GetPlaylist(ctx, playlistID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, detail, "playlist fetched")
}

func (h *Handler) Update(ctx context.Context, c *app.RequestContext) {
	playlistID, ok := utils.ParseID(c.Param("playlistId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid playlist id"))
		return
	}
	var param PlaylistParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	playlist, err := h.svc.UpdatePlaylist(ctx, playlistID, p.UserID, param.Name, param.Description)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, playlist, "playlist updated successfully")
}

func (h *Handler) Delete(ctx context.Context, c *app.RequestContext) {
	playlistID, ok := utils.ParseID(c.Param("playlistId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid playlist id"))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	if err := h.svc.DeletePlaylist(ctx, playlistID, p.UserID); err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, nil, "playlist deleted successfully")
}

func (h *Handler) pairIDs(ctx context.Context, c *app.RequestContext) (int64, int64, bool) {
	playlistID, ok := utils.ParseID(c.Param("playlistId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid playlist id"))
		return 0, 0, false
	}
	videoID, ok := utils.ParseID(c.Param("videoId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid video id"))
		return 0, 0, false
	}
	return playlistID, videoID, true
}

func (h *Handler) AddVideo(ctx context.Context, c *app.RequestContext) {
	playlistID, videoID, ok := h.pairIDs(ctx, c)
	if !ok {
		return
	}
	p, _ := handlers.GetPrincipal(c)
	if err := h.svc.AddVideo(ctx, playlistID, videoID, p.UserID); err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, nil, "video added to playlist")
}

func (h *Handler) RemoveVideo(ctx context.Context, c *app.RequestContext) {
	playlistID, videoID, ok := h.pairIDs(ctx, c)
	if !ok {
		return
	}
	p, _ := handlers.GetPrincipal(c)
	if err := h.svc.RemoveVideo(ctx, playlistID, videoID, p.UserID); err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, nil, "video removed from playlist")
}

func (h *Handler) UserPlaylists(ctx context.Context, c *app.RequestContext) {
	userID, ok := utils.ParseID(c.Param("userId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid user id"))
		return
	}
	rows, err := h.svc.ListUserPlaylists(ctx, userID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, rows, "user playlists fetched")
}
