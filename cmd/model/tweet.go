package model

import "time"

type Tweet struct {
	TweetID   int64     `gorm:"column:tweet_id;primaryKey" json:"tweet_id"`
	UserID    int64     `gorm:"column:user_id;index" json:"user_id"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Tweet) TableName() string { return "tweets" }

func (t *Tweet) OwnerID() int64 { return t.UserID }
