package db

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db: db}
}

// LikeTarget names the single target column a like row points at. The three
// constructors are the only way to build one, so the column is never caller
// input.
type LikeTarget struct {
	column string
	id     int64
}

func VideoTarget(id int64) LikeTarget   { return LikeTarget{column: "video_id", id: id} }
func CommentTarget(id int64) LikeTarget { return LikeTarget{column: "comment_id", id: id} }
func TweetTarget(id int64) LikeTarget   { return LikeTarget{column: "tweet_id", id: id} }

// LockKey is the redsync mutex name serializing toggles on this
// (actor, target) pair.
func (t LikeTarget) LockKey(userID int64) string {
	return fmt.Sprintf("lock:like:%s:%d:%d", t.column, t.id, userID)
}

func (t LikeTarget) newLike(likeID, userID int64) *model.Like {
	like := &model.Like{LikeID: likeID, UserID: userID}
	switch t.column {
	case "video_id":
		like.VideoID = &t.id
	case "comment_id":
		like.CommentID = &t.id
	case "tweet_id":
		like.TweetID = &t.id
	}
	return like
}

func (r *LikeRepo) Get(ctx context.Context, userID int64, target LikeTarget) (*model.Like, error) {
	var like model.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND "+target.column+" = ?", userID, target.id).
		First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get like of user %d", userID)
	}
	return &like, nil
}

func (r *LikeRepo) Create(ctx context.Context, likeID, userID int64, target LikeTarget) (*model.Like, error) {
	like := target.newLike(likeID, userID)
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return nil, errors.Wrapf(err, "create like of user %d", userID)
	}
	return like, nil
}

// Delete is idempotent: deleting an already-deleted like affects zero rows
// and is not an error.
func (r *LikeRepo) Delete(ctx context.Context, likeID int64) error {
	if err := r.db.WithContext(ctx).Where("like_id = ?", likeID).
		Delete(&model.Like{}).Error; err != nil {
		return errors.Wrapf(err, "delete like %d", likeID)
	}
	return nil
}

// LikedVideoRow is one like expanded into the full video plus its owner's
// public profile (one row per like record).
type LikedVideoRow struct {
	LikedAt       time.Time `gorm:"column:liked_at"`
	VideoID       int64     `gorm:"column:video_id"`
	VideoURL      string    `gorm:"column:video_url"`
	ThumbURL      string    `gorm:"column:thumb_url"`
	Title         string    `gorm:"column:title"`
	Description   string    `gorm:"column:description"`
	Duration      float64   `gorm:"column:duration"`
	Views         int64     `gorm:"column:views"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	OwnerID       int64     `gorm:"column:owner_id"`
	OwnerName     string    `gorm:"column:owner_name"`
	OwnerFullName string    `gorm:"column:owner_full_name"`
	OwnerAvatar   string    `gorm:"column:owner_avatar"`
	OwnerCover    string    `gorm:"column:owner_cover"`
}

// ListLikedVideos returns everything the user has liked, most recent like
// first.
func (r *LikeRepo) ListLikedVideos(ctx context.Context, userID int64) ([]*LikedVideoRow, error) {
	var rows []*LikedVideoRow
	if err := r.db.WithContext(ctx).Table("likes AS l").
		Select(`l.created_at AS liked_at,
			v.video_id, v.video_url, v.thumb_url, v.title, v.description, v.duration,
			v.views, v.created_at,
			u.user_id AS owner_id, u.user_name AS owner_name, u.full_name AS owner_full_name,
			u.avatar_url AS owner_avatar, u.cover_url AS owner_cover`).
		Joins("JOIN videos v ON v.video_id = l.video_id").
		Joins("JOIN users u ON u.user_id = v.user_id").
		Where("l.user_id = ? AND l.video_id IS NOT NULL", userID).
		Order("l.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list liked videos of %d", userID)
	}
	return rows, nil
}
