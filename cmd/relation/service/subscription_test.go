package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	relationdb "github.com/Joydas46/VideoTube-Twitter/cmd/relation/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/cmd/relation/service"
	userdb "github.com/Joydas46/VideoTube-Twitter/cmd/user/dal/db"
	videodb "github.com/Joydas46/VideoTube-Twitter/cmd/video/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

func setupService(t *testing.T) (*service.RelationService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(
		&model.User{}, &model.Video{}, &model.Subscription{},
	))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	idgen, err := utils.NewIDGenerator(4, 1)
	require.NoError(t, err)

	svc := service.NewRelationService(
		relationdb.NewSubscriptionRepo(gdb),
		userdb.NewUserRepo(gdb),
		videodb.NewVideoRepo(gdb),
		redsync.New(goredis.NewPool(client)),
		idgen,
	)
	return svc, gdb
}

func seedUsers(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	require.NoError(t, gdb.Create([]*model.User{
		{UserID: 1, UserName: "alice", FullName: "Alice A", Email: "alice@test.com", Password: "x"},
		{UserID: 2, UserName: "bob", FullName: "Bob B", Email: "bob@test.com", Password: "x"},
		{UserID: 3, UserName: "carol", FullName: "Carol C", Email: "carol@test.com", Password: "x"},
	}).Error)
}

func TestToggleSubscription(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	seedUsers(t, gdb)

	_, err := svc.ToggleSubscription(ctx, 1, 1)
	assert.Equal(t, int64(errno.InvalidArgumentCode), errno.ConvertErr(err).ErrCode)

	_, err = svc.ToggleSubscription(ctx, 1, 999)
	assert.Equal(t, int64(errno.NotFoundCode), errno.ConvertErr(err).ErrCode)

	for i := 0; i < 3; i++ {
		subscribed, err := svc.ToggleSubscription(ctx, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, i%2 == 0, subscribed)
	}
	var count int64
	require.NoError(t, gdb.Model(&model.Subscription{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	subscribed, err := svc.ToggleSubscription(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, subscribed)
	require.NoError(t, gdb.Model(&model.Subscription{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListSubscribersWithMutualFlag(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	seedUsers(t, gdb)

	// bob and carol follow alice; alice follows bob back
	_, err := svc.ToggleSubscription(ctx, 2, 1)
	require.NoError(t, err)
	_, err = svc.ToggleSubscription(ctx, 3, 1)
	require.NoError(t, err)
	_, err = svc.ToggleSubscription(ctx, 1, 2)
	require.NoError(t, err)

	rows, err := svc.ListSubscribers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byName := map[string]bool{}
	for _, row := range rows {
		byName[row.UserName] = row.SubscribedToUser
	}
	assert.True(t, byName["bob"])
	assert.False(t, byName["carol"])

	_, err = svc.ListSubscribers(ctx, 999)
	assert.Equal(t, int64(errno.NotFoundCode), errno.ConvertErr(err).ErrCode)
}

func TestListSubscribedChannels(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	seedUsers(t, gdb)
	require.NoError(t, gdb.Create(&model.Video{
		VideoID: 100, UserID: 1, Title: "latest", Description: "d", IsPublished: true,
	}).Error)

	_, err := svc.ToggleSubscription(ctx, 2, 1)
	require.NoError(t, err)
	_, err = svc.ToggleSubscription(ctx, 2, 3)
	require.NoError(t, err)

	channels, err := svc.ListSubscribedChannels(ctx, 2)
	require.NoError(t, err)
	require.Len(t, channels, 2)

	byName := map[string]*service.SubscribedChannel{}
	for _, ch := range channels {
		byName[ch.UserName] = ch
	}
	require.Contains(t, byName, "alice")
	require.Contains(t, byName, "carol")

	assert.Equal(t, int64(1), byName["alice"].SubscriberCount)
	assert.Equal(t, int64(1), byName["alice"].VideoCount)
	require.NotNil(t, byName["alice"].LatestVideo)
	assert.Equal(t, int64(100), byName["alice"].LatestVideo.VideoID)

	// a channel with no uploads still lists, with no latest video
	assert.Zero(t, byName["carol"].VideoCount)
	assert.Nil(t, byName["carol"].LatestVideo)
}
