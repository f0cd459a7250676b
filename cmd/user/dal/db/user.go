package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrapf(err, "create user %s", user.UserName)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get user %d", userID)
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get user by email")
	}
	return &user, nil
}

// GetByUsername matches case-insensitively, the channel route is public-facing.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("lower(user_name) = lower(?)", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get user by username %s", username)
	}
	return &user, nil
}

func (r *UserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_name = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "check user duplicate")
	}
	return count > 0, nil
}

func (r *UserRepo) UpdateAccount(ctx context.Context, userID int64, username, fullname, email string) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"user_name": username,
			"full_name": fullname,
			"email":     email,
		}).Error; err != nil {
		return errors.Wrapf(err, "update account %d", userID)
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userID).
		Update("password", hashedPassword).Error; err != nil {
		return errors.Wrapf(err, "update password %d", userID)
	}
	return nil
}

func (r *UserRepo) UpdateRefreshToken(ctx context.Context, userID int64, token string) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userID).
		Update("refresh_token", token).Error; err != nil {
		return errors.Wrapf(err, "update refresh token %d", userID)
	}
	return nil
}

func (r *UserRepo) UpdateAvatar(ctx context.Context, userID int64, avatarID, avatarURL string) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{"avatar_id": avatarID, "avatar_url": avatarURL}).Error; err != nil {
		return errors.Wrapf(err, "update avatar %d", userID)
	}
	return nil
}

func (r *UserRepo) UpdateCover(ctx context.Context, userID int64, coverID, coverURL string) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{"cover_id": coverID, "cover_url": coverURL}).Error; err != nil {
		return errors.Wrapf(err, "update cover %d", userID)
	}
	return nil
}

// UpsertWatchHistory records a watch, refreshing watched_at when the pair
// already exists so the history view orders by recency.
func (r *UserRepo) UpsertWatchHistory(ctx context.Context, userID, videoID int64) error {
	entry := &model.WatchHistory{UserID: userID, VideoID: videoID, WatchedAt: time.Now()}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
	}).Create(entry).Error; err != nil {
		return errors.Wrapf(err, "upsert watch history %d/%d", userID, videoID)
	}
	return nil
}

// WatchedVideoRow is one watch-history entry joined with the video and its
// owner. The inner joins drop rows whose video or owner vanished.
type WatchedVideoRow struct {
	WatchedAt     time.Time `gorm:"column:watched_at"`
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
}

func (r *UserRepo) ListWatchedVideos(ctx context.Context, userID int64) ([]*WatchedVideoRow, error) {
	var rows []*WatchedVideoRow
	err := r.db.WithContext(ctx).Table("watch_histories AS wh").
		Select(`wh.watched_at, v.video_id, v.video_url, v.thumb_url, v.title, v.description,
			v.duration, v.views, v.created_at,
			u.user_id AS owner_id, u.user_name AS owner_name, u.full_name AS owner_full_name,
			u.avatar_url AS owner_avatar`).
		Joins("JOIN videos v ON v.video_id = wh.video_id").
		Joins("JOIN users u ON u.user_id = v.user_id").
		Where("wh.user_id = ?", userID).
		Order("wh.watched_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list watch history %d", userID)
	}
	return rows, nil
}
