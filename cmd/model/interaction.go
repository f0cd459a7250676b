package model

import "time"

type Comment struct {
	CommentID int64     `gorm:"column:comment_id;primaryKey" json:"comment_id"`
	VideoID   int64     `gorm:"column:video_id;index" json:"video_id"`
	UserID    int64     `gorm:"column:user_id;index" json:"user_id"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) OwnerID() int64 { return c.UserID }

// Like is one user's like on exactly one of video/comment/tweet. Presence of
// the row is the liked state; the composite unique indexes are the natural
// keys that make the toggle primitive race-free (a concurrent duplicate
// insert fails instead of doubling up).
type Like struct {
	LikeID    int64     `gorm:"column:like_id;primaryKey" json:"like_id"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:uk_like_video;uniqueIndex:uk_like_comment;uniqueIndex:uk_like_tweet" json:"user_id"`
	VideoID   *int64    `gorm:"column:video_id;uniqueIndex:uk_like_video" json:"video_id,omitempty"`
	CommentID *int64    `gorm:"column:comment_id;uniqueIndex:uk_like_comment" json:"comment_id,omitempty"`
	TweetID   *int64    `gorm:"column:tweet_id;uniqueIndex:uk_like_tweet" json:"tweet_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Like) TableName() string { return "likes" }
