package service

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/oss"
)

// UpdateRequest carries the editable fields. ThumbPath is optional; when set
// the old thumbnail blob is replaced.
type UpdateRequest struct {
	Title       string
	Description string

	ThumbPath        string
	ThumbContentType string
}

// ownedVideo loads the video and enforces ownership: absent is NotFound,
// someone else's is PermissionDenied. Always in that order, so a non-owner
// cannot distinguish a forbidden id from a missing one by probing errors.
func (s *VideoService) ownedVideo(ctx context.Context, videoID, userID int64) (*model.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, errno.NotFoundErr.WithMessage("video does not exist")
	}
	if !model.IsOwner(video, userID) {
		return nil, errno.PermissionDeniedErr.WithMessage("you do not own this video")
	}
	return video, nil
}

func (s *VideoService) UpdateVideo(ctx context.Context, videoID, userID int64, req *UpdateRequest) (*model.Video, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("title and description are required")
	}
	video, err := s.ownedVideo(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
	}
	var newThumb *oss.Object
	if req.ThumbPath != "" {
		newThumb, err = s.storage.PutImage(ctx, req.ThumbPath, req.ThumbContentType)
		if err != nil {
			return nil, err
		}
		updates["thumb_id"] = newThumb.ID
		updates["thumb_url"] = newThumb.URL
	}

	if err := s.videos.UpdateDetails(ctx, videoID, updates); err != nil {
		if newThumb != nil {
			s.removeBlob(ctx, newThumb.ID, oss.KindImage)
		}
		return nil, err
	}
	if newThumb != nil {
		s.removeBlob(ctx, video.ThumbID, oss.KindImage)
	}
	return s.videos.GetByID(ctx, videoID)
}

// DeleteVideo removes the row first, then the blobs and the visit counter.
// Blob removal failures are logged, not surfaced: the record is already gone.
func (s *VideoService) DeleteVideo(ctx context.Context, videoID, userID int64) error {
	video, err := s.ownedVideo(ctx, videoID, userID)
	if err != nil {
		return err
	}
	if err := s.videos.Delete(ctx, videoID); err != nil {
		return err
	}
	s.removeBlob(ctx, video.VideoFileID, oss.KindVideo)
	s.removeBlob(ctx, video.ThumbID, oss.KindImage)
	if err := s.visits.Remove(ctx, videoID); err != nil {
		hlog.CtxWarnf(ctx, "failed to drop visit counter of video %d: %v", videoID, err)
	}
	return nil
}

// TogglePublish flips visibility and reports the new state.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, userID int64) (bool, error) {
	if _, err := s.ownedVideo(ctx, videoID, userID); err != nil {
		return false, err
	}
	if err := s.videos.TogglePublished(ctx, videoID); err != nil {
		return false, err
	}
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return false, err
	}
	if video == nil {
		return false, errno.NotFoundErr.WithMessage("video does not exist")
	}
	return video.IsPublished, nil
}
