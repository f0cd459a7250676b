package model

import "time"

type Video struct {
	VideoID     int64     `gorm:"column:video_id;primaryKey" json:"video_id"`
	UserID      int64     `gorm:"column:user_id;index" json:"user_id"`
	VideoFileID string    `gorm:"column:video_file_id;size:255" json:"-"`
	VideoURL    string    `gorm:"column:video_url;size:512" json:"video_file"`
	ThumbID     string    `gorm:"column:thumb_id;size:255" json:"-"`
	ThumbURL    string    `gorm:"column:thumb_url;size:512" json:"thumbnail"`
	Title       string    `gorm:"column:title;size:255" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Duration    float64   `gorm:"column:duration" json:"duration"`
	Views       int64     `gorm:"column:views;default:0" json:"views"`
	IsPublished bool      `gorm:"column:is_published;default:false" json:"is_published"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Video) TableName() string { return "videos" }

func (v *Video) OwnerID() int64 { return v.UserID }
