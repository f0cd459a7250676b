package model

import "time"

type Playlist struct {
	PlaylistID  int64     `gorm:"column:playlist_id;primaryKey" json:"playlist_id"`
	UserID      int64     `gorm:"column:user_id;index" json:"user_id"`
	Name        string    `gorm:"column:name;size:255" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Playlist) TableName() string { return "playlists" }

func (p *Playlist) OwnerID() int64 { return p.UserID }

// PlaylistVideo is the membership row. Composite primary key gives the set
// semantics: adding an already-present video is a no-op conflict.
type PlaylistVideo struct {
	PlaylistID int64     `gorm:"column:playlist_id;primaryKey;autoIncrement:false" json:"playlist_id"`
	VideoID    int64     `gorm:"column:video_id;primaryKey;autoIncrement:false" json:"video_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PlaylistVideo) TableName() string { return "playlist_videos" }
