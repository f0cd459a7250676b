package service_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	userdb "github.com/Joydas46/VideoTube-Twitter/cmd/user/dal/db"
	videodb "github.com/Joydas46/VideoTube-Twitter/cmd/video/dal/db"
	videoredis "github.com/Joydas46/VideoTube-Twitter/cmd/video/infras/redis"
	"github.com/Joydas46/VideoTube-Twitter/cmd/video/service"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/jwt"
	"github.com/Joydas46/VideoTube-Twitter/pkg/oss"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

// fakeStorage records puts and removes in memory so compensating deletes are
// observable.
type fakeStorage struct {
	puts    int
	removed []string
}

func (f *fakeStorage) PutImage(_ context.Context, localPath, _ string) (*oss.Object, error) {
	f.puts++
	id := fmt.Sprintf("img/%d", f.puts)
	return &oss.Object{ID: id, URL: "http://blobs/" + id + "/" + localPath}, nil
}

func (f *fakeStorage) PutVideo(_ context.Context, localPath string) (*oss.Object, error) {
	f.puts++
	id := fmt.Sprintf("vid/%d", f.puts)
	return &oss.Object{ID: id, URL: "http://blobs/" + id + "/" + localPath, Duration: 42}, nil
}

func (f *fakeStorage) Remove(_ context.Context, id string, _ oss.Kind) error {
	f.removed = append(f.removed, id)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(
		&model.User{}, &model.Video{}, &model.Comment{}, &model.Like{},
		&model.Tweet{}, &model.Subscription{}, &model.Playlist{},
		&model.PlaylistVideo{}, &model.WatchHistory{},
	))
	return gdb
}

func setupService(t *testing.T) (*service.VideoService, *gorm.DB, *fakeStorage) {
	t.Helper()

	gdb := newTestDB(t)
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	idgen, err := utils.NewIDGenerator(2, 1)
	require.NoError(t, err)
	storage := &fakeStorage{}

	extractThumb := func(_, outputDir string) (string, error) {
		return filepath.Join(outputDir, "thumbnail.jpg"), nil
	}
	svc := service.NewVideoService(
		videodb.NewVideoRepo(gdb),
		userdb.NewUserRepo(gdb),
		videoredis.NewVisitCounter(client),
		storage,
		extractThumb,
		idgen,
	)
	return svc, gdb, storage
}

func seedChannel(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	require.NoError(t, gdb.Create([]*model.User{
		{UserID: 1, UserName: "alice", FullName: "Alice A", Email: "alice@test.com", Password: "x"},
		{UserID: 2, UserName: "bob", FullName: "Bob B", Email: "bob@test.com", Password: "x"},
	}).Error)
	require.NoError(t, gdb.Create([]*model.Video{
		{VideoID: 100, UserID: 1, VideoFileID: "vid/a", ThumbID: "img/a",
			Title: "published one", Description: "d", Duration: 10, Views: 5, IsPublished: true},
		{VideoID: 101, UserID: 1, Title: "draft", Description: "d", Duration: 20, IsPublished: false},
	}).Error)
}

func TestFeedRequiresOwner(t *testing.T) {
	ctx := context.Background()
	svc, gdb, _ := setupService(t)
	seedChannel(t, gdb)

	_, err := svc.Feed(ctx, videodb.FeedParams{})
	assert.Equal(t, int64(errno.InvalidArgumentCode), errno.ConvertErr(err).ErrCode)

	_, err = svc.Feed(ctx, videodb.FeedParams{OwnerID: 999})
	assert.Equal(t, int64(errno.NotFoundCode), errno.ConvertErr(err).ErrCode)
}

func TestFeedPublishedOnlyWithZeroCounts(t *testing.T) {
	ctx := context.Background()
	svc, gdb, _ := setupService(t)
	seedChannel(t, gdb)

	page, err := svc.Feed(ctx, videodb.FeedParams{OwnerID: 1})
	require.NoError(t, err)
	require.Len(t, page.Videos, 1)
	assert.Equal(t, int64(1), page.Total)

	row := page.Videos[0]
	assert.Equal(t, int64(100), row.VideoID)
	assert.True(t, row.IsPublished)
	// derived counts are present and zero, never absent
	assert.Zero(t, row.Likes)
	assert.Zero(t, row.NumOfComments)
	assert.Equal(t, "alice", row.OwnerName)
	assert.Equal(t, "Alice A", row.OwnerFullName)
}

func TestFeedQueryAndSort(t *testing.T) {
	ctx := context.Background()
	svc, gdb, _ := setupService(t)
	seedChannel(t, gdb)
	require.NoError(t, gdb.Create(&model.Video{
		VideoID: 102, UserID: 1, Title: "published two", Description: "searchable",
		Duration: 5, Views: 50, IsPublished: true,
	}).Error)

	page, err := svc.Feed(ctx, videodb.FeedParams{OwnerID: 1, Query: "searchable"})
	require.NoError(t, err)
	require.Len(t, page.Videos, 1)
	assert.Equal(t, int64(102), page.Videos[0].VideoID)

	page, err = svc.Feed(ctx, videodb.FeedParams{OwnerID: 1, SortField: "views", SortDesc: true})
	require.NoError(t, err)
	require.Len(t, page.Videos, 2)
	assert.Equal(t, int64(102), page.Videos[0].VideoID)
	assert.Equal(t, int64(100), page.Videos[1].VideoID)
}

func TestGetVideoBumpsViewsAndHistory(t *testing.T) {
	ctx := context.Background()
	svc, gdb, _ := setupService(t)
	seedChannel(t, gdb)

	// anonymous fetch: views move, no history
	row, err := svc.GetVideo(ctx, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(6), row.Views)

	var histories int64
	require.NoError(t, gdb.Model(&model.WatchHistory{}).Count(&histories).Error)
	assert.Zero(t, histories)

	// authenticated fetch: views move again and the watch lands in history
	viewer := &jwt.Principal{UserID: 2}
	row, err = svc.GetVideo(ctx, 100, viewer)
	require.NoError(t, err)
	assert.Equal(t, int64(7), row.Views)

	var entry model.WatchHistory
	require.NoError(t, gdb.First(&entry, "user_id = ? AND video_id = ?", 2, 100).Error)

	// the new absolute count is written back to the row
	var stored model.Video
	require.NoError(t, gdb.First(&stored, "video_id = ?", 100).Error)
	assert.Equal(t, int64(7), stored.Views)

	// rewatching keeps a single history row
	_, err = svc.GetVideo(ctx, 100, viewer)
	require.NoError(t, err)
	require.NoError(t, gdb.Model(&model.WatchHistory{}).Count(&histories).Error)
	assert.Equal(t, int64(1), histories)
}

func TestGetVideoMissing(t *testing.T) {
	ctx := context.Background()
	svc, gdb, _ := setupService(t)
	seedChannel(t, gdb)

	_, err := svc.GetVideo(ctx, 999, nil)
	assert.Equal(t, int64(errno.NotFoundCode), errno.ConvertErr(err).ErrCode)
}

func TestUpdateVideoOwnerGuard(t *testing.T) {
	ctx := context.Background()
	svc, gdb, _ := setupService(t)
	seedChannel(t, gdb)

	_, err := svc.UpdateVideo(ctx, 100, 2, &service.UpdateRequest{Title: "hijack", Description: "x"})
	e := errno.ConvertErr(err)
	assert.Equal(t, int64(errno.PermissionDeniedCode), e.ErrCode)
	assert.Equal(t, 403, e.StatusCode)

	var stored model.Video
	require.NoError(t, gdb.First(&stored, "video_id = ?", 100).Error)
	assert.Equal(t, "published one", stored.Title)

	video, err := svc.UpdateVideo(ctx, 100, 1, &service.UpdateRequest{Title: "renamed", Description: "new"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", video.Title)
}

func TestTogglePublishParity(t *testing.T) {
	ctx := context.Background()
	svc, gdb, _ := setupService(t)
	seedChannel(t, gdb)

	_, err := svc.TogglePublish(ctx, 100, 2)
	assert.Equal(t, int64(errno.PermissionDeniedCode), errno.ConvertErr(err).ErrCode)

	published, err := svc.TogglePublish(ctx, 100, 1)
	require.NoError(t, err)
	assert.False(t, published)
	published, err = svc.TogglePublish(ctx, 100, 1)
	require.NoError(t, err)
	assert.True(t, published)
}

func TestDeleteVideoCascadesAndRemovesBlobs(t *testing.T) {
	ctx := context.Background()
	svc, gdb, storage := setupService(t)
	seedChannel(t, gdb)
	videoID := int64(100)
	require.NoError(t, gdb.Create(&model.Comment{CommentID: 500, VideoID: 100, UserID: 2, Content: "c"}).Error)
	require.NoError(t, gdb.Create(&model.Like{LikeID: 600, UserID: 2, VideoID: &videoID}).Error)
	require.NoError(t, gdb.Create(&model.PlaylistVideo{PlaylistID: 700, VideoID: 100}).Error)

	err := svc.DeleteVideo(ctx, 100, 2)
	assert.Equal(t, int64(errno.PermissionDeniedCode), errno.ConvertErr(err).ErrCode)

	require.NoError(t, svc.DeleteVideo(ctx, 100, 1))

	for _, m := range []interface{}{&model.Video{}, &model.Comment{}, &model.Like{}, &model.PlaylistVideo{}} {
		var count int64
		require.NoError(t, gdb.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}
	assert.Contains(t, storage.removed, "vid/a")
	assert.Contains(t, storage.removed, "img/a")
}

func TestPublishWritesRowFromUpload(t *testing.T) {
	ctx := context.Background()
	svc, gdb, _ := setupService(t)
	seedChannel(t, gdb)

	_, err := svc.Publish(ctx, 1, &service.PublishRequest{Title: " ", Description: "d", VideoPath: "v", ThumbPath: "t"})
	assert.Equal(t, int64(errno.InvalidArgumentCode), errno.ConvertErr(err).ErrCode)

	video, err := svc.Publish(ctx, 1, &service.PublishRequest{
		Title: "fresh", Description: "d",
		VideoPath: "local.mp4", ThumbPath: "thumb.jpg", ThumbContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.False(t, video.IsPublished)
	assert.Equal(t, float64(42), video.Duration)

	var stored model.Video
	require.NoError(t, gdb.First(&stored, "video_id = ?", video.VideoID).Error)
	assert.Equal(t, "fresh", stored.Title)
	assert.False(t, stored.IsPublished)

	// a fresh upload stays out of the feed until its first toggle
	page, err := svc.Feed(ctx, videodb.FeedParams{OwnerID: 1})
	require.NoError(t, err)
	for _, row := range page.Videos {
		assert.NotEqual(t, video.VideoID, row.VideoID)
	}

	published, err := svc.TogglePublish(ctx, video.VideoID, 1)
	require.NoError(t, err)
	assert.True(t, published)

	page, err = svc.Feed(ctx, videodb.FeedParams{OwnerID: 1})
	require.NoError(t, err)
	ids := make([]int64, 0, len(page.Videos))
	for _, row := range page.Videos {
		ids = append(ids, row.VideoID)
	}
	assert.Contains(t, ids, video.VideoID)
}

func TestPublishGeneratesThumbnailWhenAbsent(t *testing.T) {
	ctx := context.Background()
	svc, gdb, storage := setupService(t)
	seedChannel(t, gdb)

	video, err := svc.Publish(ctx, 1, &service.PublishRequest{
		Title: "no thumb", Description: "d", VideoPath: "local.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, storage.puts)
	assert.Contains(t, video.ThumbURL, "thumbnail.jpg")

	var stored model.Video
	require.NoError(t, gdb.First(&stored, "video_id = ?", video.VideoID).Error)
	assert.NotEmpty(t, stored.ThumbID)
}

func TestChannelStats(t *testing.T) {
	ctx := context.Background()
	svc, gdb, _ := setupService(t)
	seedChannel(t, gdb)
	videoID := int64(100)
	require.NoError(t, gdb.Create(&model.Subscription{SubscriptionID: 1, SubscriberID: 2, ChannelID: 1}).Error)
	require.NoError(t, gdb.Create(&model.Like{LikeID: 600, UserID: 2, VideoID: &videoID}).Error)

	stats, err := svc.ChannelStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalSubscribers)
	assert.Equal(t, int64(1), stats.TotalLikes)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(5), stats.TotalViews)

	rows, err := svc.ChannelVideos(ctx, 1)
	require.NoError(t, err)
	// drafts are part of the owner's dashboard
	assert.Len(t, rows, 2)
}
