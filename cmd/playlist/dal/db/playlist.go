package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
)

type PlaylistRepo struct {
	db *gorm.DB
}

func NewPlaylistRepo(db *gorm.DB) *PlaylistRepo {
	return &PlaylistRepo{db: db}
}

func (r *PlaylistRepo) Create(ctx context.Context, pl *model.Playlist) error {
	if err := r.db.WithContext(ctx).Create(pl).Error; err != nil {
		return errors.Wrapf(err, "create playlist %d", pl.PlaylistID)
	}
	return nil
}

func (r *PlaylistRepo) GetByID(ctx context.Context, playlistID int64) (*model.Playlist, error) {
	var pl model.Playlist
	err := r.db.WithContext(ctx).Where("playlist_id = ?", playlistID).First(&pl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get playlist %d", playlistID)
	}
	return &pl, nil
}

func (r *PlaylistRepo) UpdateDetails(ctx context.Context, playlistID int64, name, description string) error {
	if err := r.db.WithContext(ctx).Model(&model.Playlist{}).
		Where("playlist_id = ?", playlistID).
		Updates(map[string]interface{}{"name": name, "description": description}).Error; err != nil {
		return errors.Wrapf(err, "update playlist %d", playlistID)
	}
	return nil
}

// Delete removes the playlist and its membership rows.
func (r *PlaylistRepo) Delete(ctx context.Context, playlistID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlistID).
			Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Where("playlist_id = ?", playlistID).
			Delete(&model.Playlist{}).Error
	})
	if err != nil {
		return errors.Wrapf(err, "delete playlist %d", playlistID)
	}
	return nil
}

// AddVideo is a set insert: adding a video already in the playlist is a no-op.
func (r *PlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID int64) error {
	row := &model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error; err != nil {
		return errors.Wrapf(err, "add video %d to playlist %d", videoID, playlistID)
	}
	return nil
}

func (r *PlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID int64) error {
	if err := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{}).Error; err != nil {
		return errors.Wrapf(err, "remove video %d from playlist %d", videoID, playlistID)
	}
	return nil
}

// PlaylistVideoRow is one member video of a playlist detail view, flattened
// with its owner and derived counts.
type PlaylistVideoRow struct {
	VideoID       int64   `gorm:"column:video_id"`
	Title         string  `gorm:"column:title"`
	Description   string  `gorm:"column:description"`
	VideoURL      string  `gorm:"column:video_url"`
	ThumbURL      string  `gorm:"column:thumb_url"`
	Duration      float64 `gorm:"column:duration"`
	Views         int64   `gorm:"column:views"`
	OwnerID       int64   `gorm:"column:owner_id"`
	OwnerName     string  `gorm:"column:owner_name"`
	OwnerFullName string  `gorm:"column:owner_full_name"`
	OwnerAvatar   string  `gorm:"column:owner_avatar"`
}

func (r *PlaylistRepo) ListVideos(ctx context.Context, playlistID int64) ([]*PlaylistVideoRow, error) {
	var rows []*PlaylistVideoRow
	if err := r.db.WithContext(ctx).Table("playlist_videos AS pv").
		Select(`v.video_id, v.title, v.description, v.video_url, v.thumb_url,
			v.duration, v.views,
			u.user_id AS owner_id, u.user_name AS owner_name,
			u.full_name AS owner_full_name, u.avatar_url AS owner_avatar`).
		Joins("JOIN videos v ON v.video_id = pv.video_id").
		Joins("JOIN users u ON u.user_id = v.user_id").
		Where("pv.playlist_id = ?", playlistID).
		Order("pv.created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list videos of playlist %d", playlistID)
	}
	return rows, nil
}

// UserPlaylistRow is one playlist in a user's list, flattened with the
// owner's display fields, the owner's total playlist count and the
// per-playlist video count derived at read time.
type UserPlaylistRow struct {
	PlaylistID         int64  `gorm:"column:playlist_id"`
	Name               string `gorm:"column:name"`
	Description        string `gorm:"column:description"`
	OwnerID            int64  `gorm:"column:owner_id"`
	OwnerName          string `gorm:"column:owner_name"`
	OwnerFullName      string `gorm:"column:owner_full_name"`
	OwnerAvatar        string `gorm:"column:owner_avatar"`
	VideoCount         int64  `gorm:"column:video_count"`
	OwnerPlaylistCount int64  `gorm:"column:owner_playlist_count"`
}

func (r *PlaylistRepo) ListByUser(ctx context.Context, userID int64) ([]*UserPlaylistRow, error) {
	var rows []*UserPlaylistRow
	if err := r.db.WithContext(ctx).Table("playlists AS p").
		Select(`p.playlist_id, p.name, p.description,
			u.user_id AS owner_id, u.user_name AS owner_name,
			u.full_name AS owner_full_name, u.avatar_url AS owner_avatar,
			(SELECT COUNT(*) FROM playlist_videos pv WHERE pv.playlist_id = p.playlist_id) AS video_count,
			(SELECT COUNT(*) FROM playlists p2 WHERE p2.user_id = p.user_id) AS owner_playlist_count`).
		Joins("JOIN users u ON u.user_id = p.user_id").
		Where("p.user_id = ?", userID).
		Order("p.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list playlists of user %d", userID)
	}
	return rows, nil
}
