package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	"github.com/Joydas46/VideoTube-Twitter/pkg/constants"
)

type VideoRepo struct {
	db *gorm.DB
}

func NewVideoRepo(db *gorm.DB) *VideoRepo {
	return &VideoRepo{db: db}
}

func (r *VideoRepo) Insert(ctx context.Context, video *model.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return errors.Wrapf(err, "insert video %d", video.VideoID)
	}
	return nil
}

func (r *VideoRepo) GetByID(ctx context.Context, videoID int64) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Where("video_id = ?", videoID).First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get video %d", videoID)
	}
	return &video, nil
}

func (r *VideoRepo) UpdateDetails(ctx context.Context, videoID int64, updates map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", videoID).
		Updates(updates).Error; err != nil {
		return errors.Wrapf(err, "update video %d", videoID)
	}
	return nil
}

// Delete removes the video together with its comments, likes, watch history
// and playlist memberships so no view query has to tolerate dangling rows.
func (r *VideoRepo) Delete(ctx context.Context, videoID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", videoID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN (SELECT comment_id FROM comments WHERE video_id = ?)", videoID).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", videoID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", videoID).Delete(&model.WatchHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", videoID).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Where("video_id = ?", videoID).Delete(&model.Video{}).Error
	})
	if err != nil {
		return errors.Wrapf(err, "delete video %d", videoID)
	}
	return nil
}

// GetSummaryByID resolves one video into the flattened view row, or nil.
func (r *VideoRepo) GetSummaryByID(ctx context.Context, videoID int64) (*VideoSummaryRow, error) {
	var rows []*VideoSummaryRow
	if err := r.db.WithContext(ctx).Table("videos AS v").
		Select(videoSummarySelect).
		Joins("JOIN users u ON u.user_id = v.user_id").
		Where("v.video_id = ?", videoID).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "get video summary %d", videoID)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// TogglePublished flips the publish flag in one statement so concurrent
// toggles interleave instead of clobbering each other.
func (r *VideoRepo) TogglePublished(ctx context.Context, videoID int64) error {
	if err := r.db.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", videoID).
		Update("is_published", gorm.Expr("NOT is_published")).Error; err != nil {
		return errors.Wrapf(err, "toggle published %d", videoID)
	}
	return nil
}

func (r *VideoRepo) SetPublished(ctx context.Context, videoID int64, published bool) error {
	if err := r.db.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", videoID).
		Update("is_published", published).Error; err != nil {
		return errors.Wrapf(err, "set published %d", videoID)
	}
	return nil
}

// SetViews writes the absolute visit count back to the row. The redis counter
// is the fast path; this column is the durable one.
func (r *VideoRepo) SetViews(ctx context.Context, videoID, views int64) error {
	if err := r.db.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", videoID).
		Update("views", views).Error; err != nil {
		return errors.Wrapf(err, "set views %d", videoID)
	}
	return nil
}

func (r *VideoRepo) IncrementViews(ctx context.Context, videoID int64) error {
	if err := r.db.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", videoID).
		Update("views", gorm.Expr("views + 1")).Error; err != nil {
		return errors.Wrapf(err, "increment views %d", videoID)
	}
	return nil
}

func (r *VideoRepo) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Video{}).Where("user_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "count videos of %d", ownerID)
	}
	return count, nil
}

// LatestByOwner returns the owner's most recent video or nil.
func (r *VideoRepo) LatestByOwner(ctx context.Context, ownerID int64) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).
		Order("created_at DESC").First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "latest video of %d", ownerID)
	}
	return &video, nil
}

// FeedParams filter the published-video feed. OwnerID is required and
// validated by the service; SortField has been whitelisted already.
type FeedParams struct {
	OwnerID   int64
	Query     string
	SortField string
	SortDesc  bool
	PageNum   int64
	PageSize  int64
}

// VideoSummaryRow is a feed/dashboard row: the video, its owner's public
// profile and the read-time derived counts. Videos with zero likes or
// comments still appear with zero counts, never absent fields.
type VideoSummaryRow struct {
	VideoID       int64     `gorm:"column:video_id"`
	VideoURL      string    `gorm:"column:video_url"`
	ThumbURL      string    `gorm:"column:thumb_url"`
	Title         string    `gorm:"column:title"`
	Description   string    `gorm:"column:description"`
	Duration      float64   `gorm:"column:duration"`
	Views         int64     `gorm:"column:views"`
	IsPublished   bool      `gorm:"column:is_published"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	Likes         int64     `gorm:"column:likes"`
	NumOfComments int64     `gorm:"column:num_of_comments"`
	OwnerID       int64     `gorm:"column:owner_id"`
	OwnerName     string    `gorm:"column:owner_name"`
	OwnerFullName string    `gorm:"column:owner_full_name"`
	OwnerAvatar   string    `gorm:"column:owner_avatar"`
}

const videoSummarySelect = `v.video_id, v.video_url, v.thumb_url, v.title, v.description,
	v.duration, v.views, v.is_published, v.created_at,
	(SELECT COUNT(*) FROM likes l WHERE l.video_id = v.video_id) AS likes,
	(SELECT COUNT(*) FROM comments c WHERE c.video_id = v.video_id) AS num_of_comments,
	u.user_id AS owner_id, u.user_name AS owner_name, u.full_name AS owner_full_name,
	u.avatar_url AS owner_avatar`

func (r *VideoRepo) FeedList(ctx context.Context, params FeedParams) ([]*VideoSummaryRow, int64, error) {
	base := r.db.WithContext(ctx).Table("videos AS v").
		Joins("JOIN users u ON u.user_id = v.user_id").
		Where("v.user_id = ? AND v.is_published = ?", params.OwnerID, true)
	if params.Query != "" {
		pattern := "%" + params.Query + "%"
		base = base.Where("(v.title LIKE ? OR v.description LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count feed")
	}

	sortField, ok := constants.VideoSortFields[params.SortField]
	if !ok {
		sortField = "created_at"
		params.SortDesc = true
	}
	order := "v." + sortField
	if params.SortDesc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	var rows []*VideoSummaryRow
	if err := base.Select(videoSummarySelect).
		Order(order).
		Limit(int(params.PageSize)).
		Offset(int((params.PageNum - 1) * params.PageSize)).
		Scan(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "feed list")
	}
	return rows, total, nil
}

// ChannelVideos is the dashboard list: every owned video regardless of
// publish state, with the same derived counts, newest first.
func (r *VideoRepo) ChannelVideos(ctx context.Context, ownerID int64) ([]*VideoSummaryRow, error) {
	var rows []*VideoSummaryRow
	if err := r.db.WithContext(ctx).Table("videos AS v").
		Select(videoSummarySelect).
		Joins("JOIN users u ON u.user_id = v.user_id").
		Where("v.user_id = ?", ownerID).
		Order("v.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "channel videos of %d", ownerID)
	}
	return rows, nil
}

// ChannelStats aggregates the dashboard row. Every number is computed from
// the related tables at read time; nothing is a stored counter except the
// views column the visit counter maintains.
type ChannelStats struct {
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalLikes       int64 `json:"total_likes"`
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
}

func (r *VideoRepo) ChannelStats(ctx context.Context, ownerID int64) (*ChannelStats, error) {
	stats := &ChannelStats{}

	if err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ?", ownerID).
		Count(&stats.TotalSubscribers).Error; err != nil {
		return nil, errors.Wrap(err, "stats: subscribers")
	}

	if err := r.db.WithContext(ctx).Table("likes AS l").
		Joins("JOIN videos v ON v.video_id = l.video_id").
		Where("v.user_id = ?", ownerID).
		Count(&stats.TotalLikes).Error; err != nil {
		return nil, errors.Wrap(err, "stats: likes")
	}

	type videoAgg struct {
		TotalVideos int64
		TotalViews  int64
	}
	var agg videoAgg
	if err := r.db.WithContext(ctx).Model(&model.Video{}).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views").
		Where("user_id = ?", ownerID).
		Scan(&agg).Error; err != nil {
		return nil, errors.Wrap(err, "stats: videos")
	}
	stats.TotalVideos = agg.TotalVideos
	stats.TotalViews = agg.TotalViews

	return stats, nil
}
