package db

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
)

type SubscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// LockKey serializes toggles on one (subscriber, channel) pair.
func LockKey(subscriberID, channelID int64) string {
	return fmt.Sprintf("lock:subscription:%d:%d", subscriberID, channelID)
}

func (r *SubscriptionRepo) Get(ctx context.Context, subscriberID, channelID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get subscription %d/%d", subscriberID, channelID)
	}
	return &sub, nil
}

func (r *SubscriptionRepo) Create(ctx context.Context, sub *model.Subscription) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return errors.Wrapf(err, "create subscription %d/%d", sub.SubscriberID, sub.ChannelID)
	}
	return nil
}

func (r *SubscriptionRepo) Delete(ctx context.Context, subscriptionID int64) error {
	if err := r.db.WithContext(ctx).Where("subscription_id = ?", subscriptionID).
		Delete(&model.Subscription{}).Error; err != nil {
		return errors.Wrapf(err, "delete subscription %d", subscriptionID)
	}
	return nil
}

func (r *SubscriptionRepo) SubscriberCount(ctx context.Context, channelID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "subscriber count of %d", channelID)
	}
	return count, nil
}

func (r *SubscriptionRepo) SubscribedToCount(ctx context.Context, subscriberID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberID).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "subscribed-to count of %d", subscriberID)
	}
	return count, nil
}

func (r *SubscriptionRepo) IsSubscribed(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "is subscribed %d/%d", subscriberID, channelID)
	}
	return count > 0, nil
}

// SubscriberRow is one subscriber of a channel with their own subscriber
// count and whether the queried channel subscribes back.
type SubscriberRow struct {
	UserID           int64  `gorm:"column:user_id"`
	UserName         string `gorm:"column:user_name"`
	FullName         string `gorm:"column:full_name"`
	Email            string `gorm:"column:email"`
	AvatarURL        string `gorm:"column:avatar_url"`
	CoverURL         string `gorm:"column:cover_url"`
	SubscriberCount  int64  `gorm:"column:subscriber_count"`
	SubscribedToUser bool   `gorm:"column:subscribed_to_user"`
}

func (r *SubscriptionRepo) ListSubscribers(ctx context.Context, channelID int64) ([]*SubscriberRow, error) {
	var rows []*SubscriberRow
	if err := r.db.WithContext(ctx).Table("subscriptions AS s").
		Select(`u.user_id, u.user_name, u.full_name, u.email, u.avatar_url, u.cover_url,
			(SELECT COUNT(*) FROM subscriptions s2 WHERE s2.channel_id = u.user_id) AS subscriber_count,
			EXISTS(SELECT 1 FROM subscriptions s3
				WHERE s3.subscriber_id = ? AND s3.channel_id = u.user_id) AS subscribed_to_user`, channelID).
		Joins("JOIN users u ON u.user_id = s.subscriber_id").
		Where("s.channel_id = ?", channelID).
		Order("s.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list subscribers of %d", channelID)
	}
	return rows, nil
}

// SubscribedChannelRow is one channel the user subscribes to, with the
// channel's derived counts. The latest video is resolved separately.
type SubscribedChannelRow struct {
	UserID            int64  `gorm:"column:user_id"`
	UserName          string `gorm:"column:user_name"`
	FullName          string `gorm:"column:full_name"`
	Email             string `gorm:"column:email"`
	AvatarURL         string `gorm:"column:avatar_url"`
	CoverURL          string `gorm:"column:cover_url"`
	SubscriberCount   int64  `gorm:"column:subscriber_count"`
	SubscribedToCount int64  `gorm:"column:subscribed_to_count"`
	VideoCount        int64  `gorm:"column:video_count"`
}

func (r *SubscriptionRepo) ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]*SubscribedChannelRow, error) {
	var rows []*SubscribedChannelRow
	if err := r.db.WithContext(ctx).Table("subscriptions AS s").
		Select(`u.user_id, u.user_name, u.full_name, u.email, u.avatar_url, u.cover_url,
			(SELECT COUNT(*) FROM subscriptions s2 WHERE s2.channel_id = u.user_id) AS subscriber_count,
			(SELECT COUNT(*) FROM subscriptions s3 WHERE s3.subscriber_id = u.user_id) AS subscribed_to_count,
			(SELECT COUNT(*) FROM videos v WHERE v.user_id = u.user_id) AS video_count`).
		Joins("JOIN users u ON u.user_id = s.channel_id").
		Where("s.subscriber_id = ?", subscriberID).
		Order("s.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list subscribed channels of %d", subscriberID)
	}
	return rows, nil
}
