package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
)

type TweetRepo struct {
	db *gorm.DB
}

func NewTweetRepo(db *gorm.DB) *TweetRepo {
	return &TweetRepo{db: db}
}

func (r *TweetRepo) Create(ctx context.Context, tweet *model.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return errors.Wrapf(err, "create tweet %d", tweet.TweetID)
	}
	return nil
}

func (r *TweetRepo) GetByID(ctx context.Context, tweetID int64) (*model.Tweet, error) {
	var tweet model.Tweet
	err := r.db.WithContext(ctx).Where("tweet_id = ?", tweetID).First(&tweet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get tweet %d", tweetID)
	}
	return &tweet, nil
}

func (r *TweetRepo) UpdateContent(ctx context.Context, tweetID int64, content string) error {
	if err := r.db.WithContext(ctx).Model(&model.Tweet{}).
		Where("tweet_id = ?", tweetID).
		Update("content", content).Error; err != nil {
		return errors.Wrapf(err, "update tweet %d", tweetID)
	}
	return nil
}

// Delete removes the tweet and any likes pointing at it.
func (r *TweetRepo) Delete(ctx context.Context, tweetID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", tweetID).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("tweet_id = ?", tweetID).Delete(&model.Tweet{}).Error
	})
	if err != nil {
		return errors.Wrapf(err, "delete tweet %d", tweetID)
	}
	return nil
}

// TweetRow is one tweet in a user's timeline, flattened with the author's
// display fields and the author's total tweet count.
type TweetRow struct {
	TweetID         int64  `gorm:"column:tweet_id"`
	Content         string `gorm:"column:content"`
	OwnerID         int64  `gorm:"column:owner_id"`
	OwnerName       string `gorm:"column:owner_name"`
	OwnerFullName   string `gorm:"column:owner_full_name"`
	OwnerAvatar     string `gorm:"column:owner_avatar"`
	OwnerTweetCount int64  `gorm:"column:owner_tweet_count"`
	LikesCount      int64  `gorm:"column:likes_count"`
}

func (r *TweetRepo) ListByUser(ctx context.Context, userID int64) ([]*TweetRow, error) {
	var rows []*TweetRow
	if err := r.db.WithContext(ctx).Table("tweets AS t").
		Select(`t.tweet_id, t.content,
			u.user_id AS owner_id, u.user_name AS owner_name,
			u.full_name AS owner_full_name, u.avatar_url AS owner_avatar,
			(SELECT COUNT(*) FROM tweets t2 WHERE t2.user_id = t.user_id) AS owner_tweet_count,
			(SELECT COUNT(*) FROM likes l WHERE l.tweet_id = t.tweet_id) AS likes_count`).
		Joins("JOIN users u ON u.user_id = t.user_id").
		Where("t.user_id = ?", userID).
		Order("t.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list tweets of user %d", userID)
	}
	return rows, nil
}
