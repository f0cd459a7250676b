package service

import (
	"context"

	"github.com/Joydas46/VideoTube-Twitter/cmd/video/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/pkg/constants"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
)

// FeedPage is one page of published videos plus the unpaged total.
type FeedPage struct {
	Videos []*db.VideoSummaryRow `json:"videos"`
	Total  int64                 `json:"total"`
}

// Feed lists a channel's published videos. The owner id is mandatory: a feed
// without one has no defined scope, so it is rejected instead of silently
// matching everything.
func (s *VideoService) Feed(ctx context.Context, params db.FeedParams) (*FeedPage, error) {
	if params.OwnerID <= 0 {
		return nil, errno.InvalidArgumentErr.WithMessage("ownerId is required")
	}
	owner, err := s.users.GetByID(ctx, params.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, errno.NotFoundErr.WithMessage("channel does not exist")
	}

	if params.PageNum <= 0 {
		params.PageNum = constants.DefaultPageNum
	}
	if params.PageSize <= 0 {
		params.PageSize = constants.DefaultPageSize
	}
	if params.PageSize > constants.MaxPageSize {
		params.PageSize = constants.MaxPageSize
	}

	rows, total, err := s.videos.FeedList(ctx, params)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Videos: rows, Total: total}, nil
}
