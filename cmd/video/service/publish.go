package service

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/oss"
)

// PublishRequest carries the new video's fields plus the uploads spooled to
// local temp files by the handler.
type PublishRequest struct {
	Title       string
	Description string

	VideoPath        string
	ThumbPath        string
	ThumbContentType string
}

// Publish uploads the media, probes the duration off the video file and
// writes the row. When no thumbnail is supplied the first frame of the video
// is extracted instead. The row starts unpublished; the publish toggle takes
// it live. A failed row write removes the just-uploaded blobs.
func (s *VideoService) Publish(ctx context.Context, userID int64, req *PublishRequest) (*model.Video, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("title and description are required")
	}
	if req.VideoPath == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("video file is required")
	}

	thumbPath, thumbType := req.ThumbPath, req.ThumbContentType
	if thumbPath == "" {
		dir, err := os.MkdirTemp("", "thumb-*")
		if err != nil {
			return nil, errors.WithMessage(err, "create thumbnail dir")
		}
		defer os.RemoveAll(dir)
		thumbPath, err = s.extractThumb(req.VideoPath, dir)
		if err != nil {
			return nil, errors.WithMessage(err, "extract thumbnail")
		}
		thumbType = "image/jpeg"
	}

	videoObj, err := s.storage.PutVideo(ctx, req.VideoPath)
	if err != nil {
		return nil, err
	}
	thumbObj, err := s.storage.PutImage(ctx, thumbPath, thumbType)
	if err != nil {
		s.removeBlob(ctx, videoObj.ID, oss.KindVideo)
		return nil, err
	}

	video := &model.Video{
		VideoID:     s.idgen.Generate(),
		UserID:      userID,
		VideoFileID: videoObj.ID,
		VideoURL:    videoObj.URL,
		ThumbID:     thumbObj.ID,
		ThumbURL:    thumbObj.URL,
		Title:       req.Title,
		Description: req.Description,
		Duration:    videoObj.Duration,
		IsPublished: false,
	}
	if err := s.videos.Insert(ctx, video); err != nil {
		s.removeBlob(ctx, videoObj.ID, oss.KindVideo)
		s.removeBlob(ctx, thumbObj.ID, oss.KindImage)
		return nil, err
	}
	return video, nil
}
