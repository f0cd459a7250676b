package model

import "time"

// User is the account row. Password and RefreshToken never serialize; the
// public profile slice of this row is UserProfile.
type User struct {
	UserID       int64     `gorm:"column:user_id;primaryKey" json:"user_id"`
	UserName     string    `gorm:"column:user_name;size:64;uniqueIndex" json:"username"`
	FullName     string    `gorm:"column:full_name;size:128" json:"fullname"`
	Email        string    `gorm:"column:email;size:255;uniqueIndex" json:"email"`
	Password     string    `gorm:"column:password;size:128" json:"-"`
	AvatarID     string    `gorm:"column:avatar_id;size:255" json:"-"`
	AvatarURL    string    `gorm:"column:avatar_url;size:512" json:"avatar"`
	CoverID      string    `gorm:"column:cover_id;size:255" json:"-"`
	CoverURL     string    `gorm:"column:cover_url;size:512" json:"cover_image"`
	RefreshToken string    `gorm:"column:refresh_token;size:512" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserProfile is the public slice of a user joined into view documents.
type UserProfile struct {
	UserID    int64  `json:"user_id"`
	UserName  string `json:"username"`
	FullName  string `json:"fullname"`
	AvatarURL string `json:"avatar"`
	CoverURL  string `json:"cover_image,omitempty"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		UserID:    u.UserID,
		UserName:  u.UserName,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		CoverURL:  u.CoverURL,
	}
}

// WatchHistory records one user having watched one video. The pair is unique;
// re-watching refreshes watched_at so the history view stays ordered by
// recency.
type WatchHistory struct {
	UserID    int64     `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"user_id"`
	VideoID   int64     `gorm:"column:video_id;primaryKey;autoIncrement:false" json:"video_id"`
	WatchedAt time.Time `gorm:"column:watched_at" json:"watched_at"`
}

func (WatchHistory) TableName() string { return "watch_histories" }
