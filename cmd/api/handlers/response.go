package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
)

// Response is the success envelope every endpoint answers with.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse is the failure envelope. Errors is always present, empty
// when there is nothing beyond the message.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func SendResponse(c *app.RequestContext, data interface{}, message string) {
	c.JSON(consts.StatusOK, Response{
		StatusCode: consts.StatusOK,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func SendCreated(c *app.RequestContext, data interface{}, message string) {
	c.JSON(consts.StatusCreated, Response{
		StatusCode: consts.StatusCreated,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// SendError resolves any error to its status code. Internal failures are
// logged with the wrapped chain; the client only sees the resolved message.
func SendError(ctx context.Context, c *app.RequestContext, err error) {
	e := errno.ConvertErr(err)
	if e.StatusCode >= consts.StatusInternalServerError {
		hlog.CtxErrorf(ctx, "request failed: %+v", err)
	}
	c.JSON(e.StatusCode, ErrorResponse{
		StatusCode: e.StatusCode,
		Message:    e.ErrMsg,
		Success:    false,
		Errors:     []string{},
	})
}
