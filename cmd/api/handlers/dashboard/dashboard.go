package dashboard

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers"
	"github.com/Joydas46/VideoTube-Twitter/cmd/video/service"
)

type Handler struct {
	svc *service.VideoService
}

func NewHandler(svc *service.VideoService) *Handler {
	return &Handler{svc: svc}
}

// Stats is the owner's channel dashboard summary.
func (h *Handler) Stats(ctx context.Context, c *app.RequestContext) {
	p, _ := handlers.GetPrincipal(c)
	stats, err := h.svc.ChannelStats(ctx, p.UserID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, stats, "channel stats fetched")
}

// Videos lists every video the owner has, drafts included.
func (h *Handler) Videos(ctx context.Context, c *app.RequestContext) {
	p, _ := handlers.GetPrincipal(c)
	rows, err := h.svc.ChannelVideos(ctx, p.UserID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, rows, "channel videos fetched")
}
