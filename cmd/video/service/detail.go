package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"github.com/Joydas46/VideoTube-Twitter/cmd/video/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/jwt"
)

// GetVideo resolves one video with its owner and derived counts. Each fetch
// counts as a view; an authenticated viewer also gets it recorded in their
// watch history.
func (s *VideoService) GetVideo(ctx context.Context, videoID int64, viewer *jwt.Principal) (*db.VideoSummaryRow, error) {
	row, err := s.videos.GetSummaryByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errno.NotFoundErr.WithMessage("video does not exist")
	}

	views, err := s.bumpViews(ctx, videoID, row.Views)
	if err != nil {
		// the view count is best effort, the fetch still succeeds
		hlog.CtxWarnf(ctx, "failed to bump views of video %d: %v", videoID, err)
		views = row.Views
	}
	row.Views = views

	if viewer != nil {
		if err := s.users.UpsertWatchHistory(ctx, viewer.UserID, videoID); err != nil {
			hlog.CtxWarnf(ctx, "failed to record watch history: %v", err)
		}
	}
	return row, nil
}

// bumpViews routes the increment through redis and writes the new absolute
// count back to the row.
func (s *VideoService) bumpViews(ctx context.Context, videoID, persisted int64) (int64, error) {
	if err := s.visits.Seed(ctx, videoID, persisted); err != nil {
		return 0, err
	}
	views, err := s.visits.Incr(ctx, videoID)
	if err != nil {
		return 0, err
	}
	if err := s.videos.SetViews(ctx, videoID, views); err != nil {
		return 0, err
	}
	return views, nil
}
