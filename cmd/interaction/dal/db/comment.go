package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return errors.Wrapf(err, "create comment on video %d", comment.VideoID)
	}
	return nil
}

func (r *CommentRepo) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Where("comment_id = ?", commentID).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get comment %d", commentID)
	}
	return &comment, nil
}

func (r *CommentRepo) UpdateContent(ctx context.Context, commentID int64, content string) error {
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("comment_id = ?", commentID).
		Update("content", content).Error; err != nil {
		return errors.Wrapf(err, "update comment %d", commentID)
	}
	return nil
}

// Delete removes the comment and any likes pointing at it.
func (r *CommentRepo) Delete(ctx context.Context, commentID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("comment_id = ?", commentID).Delete(&model.Comment{}).Error
	})
	if err != nil {
		return errors.Wrapf(err, "delete comment %d", commentID)
	}
	return nil
}

// CommentRow is one comment joined with the video's basic info, the comment
// owner's public profile and the read-time like count.
type CommentRow struct {
	CommentID     int64     `gorm:"column:comment_id"`
	Content       string    `gorm:"column:content"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	VideoID       int64     `gorm:"column:video_id"`
	VideoTitle    string    `gorm:"column:video_title"`
	VideoThumb    string    `gorm:"column:video_thumb"`
	OwnerID       int64     `gorm:"column:owner_id"`
	OwnerName     string    `gorm:"column:owner_name"`
	OwnerFullName string    `gorm:"column:owner_full_name"`
	OwnerAvatar   string    `gorm:"column:owner_avatar"`
	OwnerCover    string    `gorm:"column:owner_cover"`
	CommentLikes  int64     `gorm:"column:comment_likes"`
}

// ListByVideo returns the newest-first page of a video's comments. Comments
// whose owner row is gone are dropped (inner join on the mandatory relation).
func (r *CommentRepo) ListByVideo(ctx context.Context, videoID, pageNum, pageSize int64) ([]*CommentRow, error) {
	var rows []*CommentRow
	if err := r.db.WithContext(ctx).Table("comments AS c").
		Select(`c.comment_id, c.content, c.created_at,
			v.video_id, v.title AS video_title, v.thumb_url AS video_thumb,
			u.user_id AS owner_id, u.user_name AS owner_name, u.full_name AS owner_full_name,
			u.avatar_url AS owner_avatar, u.cover_url AS owner_cover,
			(SELECT COUNT(*) FROM likes l WHERE l.comment_id = c.comment_id) AS comment_likes`).
		Joins("JOIN videos v ON v.video_id = c.video_id").
		Joins("JOIN users u ON u.user_id = c.user_id").
		Where("c.video_id = ?", videoID).
		Order("c.created_at DESC").
		Limit(int(pageSize)).
		Offset(int((pageNum - 1) * pageSize)).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list comments of video %d", videoID)
	}
	return rows, nil
}

func (r *CommentRepo) CountByVideo(ctx context.Context, videoID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "count comments of video %d", videoID)
	}
	return count, nil
}
