package model

import "time"

// Subscription: subscriber follows channel (both users). Row presence is the
// subscribed state; the pair is unique.
type Subscription struct {
	SubscriptionID int64     `gorm:"column:subscription_id;primaryKey" json:"subscription_id"`
	SubscriberID   int64     `gorm:"column:subscriber_id;uniqueIndex:uk_sub_pair" json:"subscriber_id"`
	ChannelID      int64     `gorm:"column:channel_id;uniqueIndex:uk_sub_pair;index" json:"channel_id"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Subscription) TableName() string { return "subscriptions" }
