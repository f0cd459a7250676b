package service

import (
	"context"

	"github.com/Joydas46/VideoTube-Twitter/cmd/video/dal/db"
)

// ChannelStats aggregates the owner's dashboard numbers at read time.
func (s *VideoService) ChannelStats(ctx context.Context, userID int64) (*db.ChannelStats, error) {
	return s.videos.ChannelStats(ctx, userID)
}

// ChannelVideos lists every video the owner has, published or not.
func (s *VideoService) ChannelVideos(ctx context.Context, userID int64) ([]*db.VideoSummaryRow, error) {
	return s.videos.ChannelVideos(ctx, userID)
}
