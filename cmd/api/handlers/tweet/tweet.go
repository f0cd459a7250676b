package tweet

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers"
	"github.com/Joydas46/VideoTube-Twitter/cmd/tweet/service"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

type Handler struct {
	svc *service.TweetService
}

func NewHandler(svc *service.TweetService) *Handler {
	return &Handler{svc: svc}
}

type TweetParam struct {
	Content string `json:"content" form:"content"`
}

func (h *Handler) Create(ctx context.Context, c *app.RequestContext) {
	var param TweetParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	tweet, err := h.svc.CreateTweet(ctx, p.UserID, param.Content)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendCreated(c, tweet, "tweet created successfully")
}

func (h *Handler) Update(ctx context.Context, c *app.RequestContext) {
	tweetID, ok := utils.ParseID(c.Param("tweetId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid tweet id"))
		return
	}
	var param TweetParam
	if err := c.Bind(&param); err != nil {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage(err.Error()))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	tweet, err := h.svc.UpdateTweet(ctx, tweetID, p.UserID, param.Content)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, tweet, "tweet updated successfully")
}

func (h *Handler) Delete(ctx context.Context, c *app.RequestContext) {
	tweetID, ok := utils.ParseID(c.Param("tweetId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid tweet id"))
		return
	}
	p, _ := handlers.GetPrincipal(c)
	if err := h.svc.DeleteTweet(ctx, tweetID, p.UserID); err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, nil, "tweet deleted successfully")
}

func (h *Handler) UserTweets(ctx context.Context, c *app.RequestContext) {
	userID, ok := utils.ParseID(c.Param("userId"))
	if !ok {
		handlers.SendError(ctx, c, errno.InvalidArgumentErr.WithMessage("invalid user id"))
		return
	}
	rows, err := h.svc.ListUserTweets(ctx, userID)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, rows, "user tweets fetched")
}
