package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	userdb "github.com/Joydas46/VideoTube-Twitter/cmd/user/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/cmd/video/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/cmd/video/infras/redis"
	"github.com/Joydas46/VideoTube-Twitter/pkg/oss"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

// ThumbnailExtractor writes a still frame of the video into outputDir and
// returns its path. The production implementation is utils.ExtractThumbnail.
type ThumbnailExtractor func(videoPath, outputDir string) (string, error)

// VideoService owns the video lifecycle, the published feed, the view
// counter and the channel dashboard.
type VideoService struct {
	videos       *db.VideoRepo
	users        *userdb.UserRepo
	visits       *redis.VisitCounter
	storage      oss.Storage
	extractThumb ThumbnailExtractor
	idgen        *utils.IDGenerator
}

func NewVideoService(videos *db.VideoRepo, users *userdb.UserRepo,
	visits *redis.VisitCounter, storage oss.Storage,
	extractThumb ThumbnailExtractor, idgen *utils.IDGenerator) *VideoService {
	return &VideoService{
		videos:       videos,
		users:        users,
		visits:       visits,
		storage:      storage,
		extractThumb: extractThumb,
		idgen:        idgen,
	}
}

func (s *VideoService) removeBlob(ctx context.Context, id string, kind oss.Kind) {
	if id == "" {
		return
	}
	if err := s.storage.Remove(ctx, id, kind); err != nil {
		hlog.CtxWarnf(ctx, "failed to remove blob %s: %v", id, err)
	}
}
