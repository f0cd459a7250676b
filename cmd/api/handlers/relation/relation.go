package relation

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers"
	"github.com/Joydas46/VideoTube-Twitter/cmd/relation/service"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

type Handler struct {
	svc *service.RelationService
}

func NewHandler(svc *service.RelationService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	channelID, ok := utils.ParseID(c.Param("channelId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid channel id"))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	subscribed, err := h.svc.ToggleSubscription(ctx, p.UserID, channelID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, map[string]bool{"is_subscribed": subscribed}, "subscription toggled")
}

func (h *Handler) Subscribers(ctx context.Context, c *app.RequestContext) {
	channelID, ok := utils.ParseID(c.Param("channelId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid channel id"))
		return
	}
	rows, err := h.svc.ListSubscribers(ctx, channelID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, rows, "subscribers fetched")
}

func (h *Handler) SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	subscriberID, ok := utils.ParseID(c.Param("subscriberId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid subscriber id"))
		return
	}
	channels, err := h.svc.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, channels, "subscribed channels fetched")
}
