package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Joydas46/VideoTube-Twitter/cmd/interaction/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	"github.com/Joydas46/VideoTube-Twitter/pkg/constants"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
)

// validateCommentContent rejects blank and over-long content. Length is in
// runes, not bytes.
func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errno.InvalidArgumentErr.WithMessage("comment content is required")
	}
	if utf8.RuneCountInString(content) > constants.MaxCommentLength {
		return errno.InvalidArgumentErr.WithMessage("comment content is too long")
	}
	return nil
}

func (s *InteractionService) AddComment(ctx context.Context, userID, videoID int64, content string) (*model.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, errno.NotFoundErr.WithMessage("video does not exist")
	}

	comment := &model.Comment{
		CommentID: s.idgen.Generate(),
		VideoID:   videoID,
		UserID:    userID,
		Content:   content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ownedComment loads the comment and enforces ownership, NotFound before
// PermissionDenied.
func (s *InteractionService) ownedComment(ctx context.Context, commentID, userID int64) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, errno.NotFoundErr.WithMessage("comment does not exist")
	}
	if !model.IsOwner(comment, userID) {
		return nil, errno.PermissionDeniedErr.WithMessage("you do not own this comment")
	}
	return comment, nil
}

func (s *InteractionService) UpdateComment(ctx context.Context, commentID, userID int64, content string) (*model.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}
	if _, err := s.ownedComment(ctx, commentID, userID); err != nil {
		return nil, err
	}
	if err := s.comments.UpdateContent(ctx, commentID, content); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, commentID)
}

func (s *InteractionService) DeleteComment(ctx context.Context, commentID, userID int64) error {
	if _, err := s.ownedComment(ctx, commentID, userID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

// CommentPage is one page of a video's comments plus the unpaged total.
type CommentPage struct {
	Comments []*db.CommentRow `json:"comments"`
	Total    int64            `json:"total"`
}

func (s *InteractionService) ListComments(ctx context.Context, videoID, pageNum, pageSize int64) (*CommentPage, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, errno.NotFoundErr.WithMessage("video does not exist")
	}

	if pageNum <= 0 {
		pageNum = constants.DefaultPageNum
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	rows, err := s.comments.ListByVideo(ctx, videoID, pageNum, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.comments.CountByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return &CommentPage{Comments: rows, Total: total}, nil
}
