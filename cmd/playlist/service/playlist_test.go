package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	playlistdb "github.com/Joydas46/VideoTube-Twitter/cmd/playlist/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/cmd/playlist/service"
	userdb "github.com/Joydas46/VideoTube-Twitter/cmd/user/dal/db"
	videodb "github.com/Joydas46/VideoTube-Twitter/cmd/video/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

func setupService(t *testing.T) (*service.PlaylistService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(
		&model.User{}, &model.Video{}, &model.Playlist{}, &model.PlaylistVideo{},
	))

	idgen, err := utils.NewIDGenerator(5, 1)
	require.NoError(t, err)

	svc := service.NewPlaylistService(
		playlistdb.NewPlaylistRepo(gdb),
		userdb.NewUserRepo(gdb),
		videodb.NewVideoRepo(gdb),
		idgen,
	)
	return svc, gdb
}

func seedData(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	require.NoError(t, gdb.Create([]*model.User{
		{UserID: 1, UserName: "alice", FullName: "Alice A", Email: "alice@test.com", Password: "x"},
		{UserID: 2, UserName: "bob", FullName: "Bob B", Email: "bob@test.com", Password: "x"},
	}).Error)
	require.NoError(t, gdb.Create(&model.Video{
		VideoID: 100, UserID: 1, Title: "t", Description: "d", IsPublished: true,
	}).Error)
}

func TestCreatePlaylistValidation(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	seedData(t, gdb)

	_, err := svc.Create(ctx, 1, "  ", "desc")
	assert.Equal(t, int64(errno.InvalidArgumentCode), errno.ConvertErr(err).ErrCode)

	playlist, err := svc.Create(ctx, 1, "favorites", "the good ones")
	require.NoError(t, err)
	assert.Positive(t, playlist.PlaylistID)
}

func TestAddVideoSetSemantics(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	seedData(t, gdb)

	playlist, err := svc.Create(ctx, 1, "favorites", "")
	require.NoError(t, err)

	// adding twice keeps a single membership row
	require.NoError(t, svc.AddVideo(ctx, playlist.PlaylistID, 100, 1))
	require.NoError(t, svc.AddVideo(ctx, playlist.PlaylistID, 100, 1))

	var count int64
	require.NoError(t, gdb.Model(&model.PlaylistVideo{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	err = svc.AddVideo(ctx, playlist.PlaylistID, 999, 1)
	assert.Equal(t, int64(errno.NotFoundCode), errno.ConvertErr(err).ErrCode)
}

func TestPlaylistOwnerGuard(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	seedData(t, gdb)

	playlist, err := svc.Create(ctx, 1, "favorites", "")
	require.NoError(t, err)

	_, err = svc.UpdatePlaylist(ctx, playlist.PlaylistID, 2, "stolen", "")
	e := errno.ConvertErr(err)
	assert.Equal(t, int64(errno.PermissionDeniedCode), e.ErrCode)
	assert.Equal(t, 403, e.StatusCode)

	err = svc.AddVideo(ctx, playlist.PlaylistID, 100, 2)
	assert.Equal(t, int64(errno.PermissionDeniedCode), errno.ConvertErr(err).ErrCode)

	err = svc.DeletePlaylist(ctx, playlist.PlaylistID, 2)
	assert.Equal(t, int64(errno.PermissionDeniedCode), errno.ConvertErr(err).ErrCode)

	var stored model.Playlist
	require.NoError(t, gdb.First(&stored, "playlist_id = ?", playlist.PlaylistID).Error)
	assert.Equal(t, "favorites", stored.Name)
}

func TestGetPlaylistDetail(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	seedData(t, gdb)

	_, err := svc.GetPlaylist(ctx, 999)
	assert.Equal(t, int64(errno.NotFoundCode), errno.ConvertErr(err).ErrCode)

	playlist, err := svc.Create(ctx, 1, "favorites", "")
	require.NoError(t, err)
	require.NoError(t, svc.AddVideo(ctx, playlist.PlaylistID, 100, 1))

	detail, err := svc.GetPlaylist(ctx, playlist.PlaylistID)
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.Owner.UserName)
	assert.Equal(t, 1, detail.VideoCount)
	require.Len(t, detail.Videos, 1)
	assert.Equal(t, int64(100), detail.Videos[0].VideoID)
	assert.Equal(t, "alice", detail.Videos[0].OwnerName)
}

func TestDeletePlaylistRemovesMemberships(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	seedData(t, gdb)

	playlist, err := svc.Create(ctx, 1, "favorites", "")
	require.NoError(t, err)
	require.NoError(t, svc.AddVideo(ctx, playlist.PlaylistID, 100, 1))
	require.NoError(t, svc.DeletePlaylist(ctx, playlist.PlaylistID, 1))

	var count int64
	require.NoError(t, gdb.Model(&model.PlaylistVideo{}).Count(&count).Error)
	assert.Zero(t, count)
	// the member video itself survives
	require.NoError(t, gdb.Model(&model.Video{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListUserPlaylists(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	seedData(t, gdb)

	_, err := svc.ListUserPlaylists(ctx, 999)
	assert.Equal(t, int64(errno.NotFoundCode), errno.ConvertErr(err).ErrCode)

	first, err := svc.Create(ctx, 1, "favorites", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "watch later", "")
	require.NoError(t, err)
	require.NoError(t, svc.AddVideo(ctx, first.PlaylistID, 100, 1))

	rows, err := svc.ListUserPlaylists(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, int64(2), row.OwnerPlaylistCount)
		assert.Equal(t, int64(1), row.OwnerID)
		assert.Equal(t, "alice", row.OwnerName)
		assert.Equal(t, "Alice A", row.OwnerFullName)
		if row.PlaylistID == first.PlaylistID {
			assert.Equal(t, int64(1), row.VideoCount)
		} else {
			assert.Zero(t, row.VideoCount)
		}
	}
}
