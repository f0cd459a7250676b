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
	relationdb "github.com/Joydas46/VideoTube-Twitter/cmd/relation/dal/db"
	userdb "github.com/Joydas46/VideoTube-Twitter/cmd/user/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/cmd/user/service"
	"github.com/Joydas46/VideoTube-Twitter/config"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/jwt"
	"github.com/Joydas46/VideoTube-Twitter/pkg/oss"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

type fakeStorage struct {
	puts    int
	removed []string
}

func (f *fakeStorage) PutImage(_ context.Context, _, _ string) (*oss.Object, error) {
	f.puts++
	id := fmt.Sprintf("img/%d", f.puts)
	return &oss.Object{ID: id, URL: "http://blobs/" + id}, nil
}

func (f *fakeStorage) PutVideo(_ context.Context, _ string) (*oss.Object, error) {
	f.puts++
	id := fmt.Sprintf("vid/%d", f.puts)
	return &oss.Object{ID: id, URL: "http://blobs/" + id, Duration: 42}, nil
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

func setupService(t *testing.T) (*service.UserService, *gorm.DB, *fakeStorage) {
	t.Helper()

	gdb := newTestDB(t)
	tokens, err := jwt.New(config.Jwt{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpire:  15,
		RefreshExpire: 24,
		Issuer:        "videotube-test",
	})
	require.NoError(t, err)
	idgen, err := utils.NewIDGenerator(3, 1)
	require.NoError(t, err)
	storage := &fakeStorage{}

	svc := service.NewUserService(
		userdb.NewUserRepo(gdb),
		relationdb.NewSubscriptionRepo(gdb),
		storage,
		tokens,
		idgen,
	)
	return svc, gdb, storage
}

func register(t *testing.T, svc *service.UserService, username, email string) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &service.RegisterRequest{
		UserName:          username,
		FullName:          "Full " + username,
		Email:             email,
		Password:          "secret-pass",
		AvatarPath:        "avatar.jpg",
		AvatarContentType: "image/jpeg",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)

	_, err := svc.Register(ctx, &service.RegisterRequest{
		UserName: "alice", FullName: " ", Email: "a@test.com", Password: "secret-pass",
		AvatarPath: "avatar.jpg",
	})
	assert.Equal(t, int64(errno.InvalidArgumentCode), errno.ConvertErr(err).ErrCode)

	_, err = svc.Register(ctx, &service.RegisterRequest{
		UserName: "alice", FullName: "Alice", Email: "a@test.com", Password: "short",
		AvatarPath: "avatar.jpg",
	})
	assert.Equal(t, int64(errno.InvalidArgumentCode), errno.ConvertErr(err).ErrCode)

	_, err = svc.Register(ctx, &service.RegisterRequest{
		UserName: "alice", FullName: "Alice", Email: "a@test.com", Password: "secret-pass",
	})
	assert.Equal(t, int64(errno.InvalidArgumentCode), errno.ConvertErr(err).ErrCode)
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _, storage := setupService(t)
	register(t, svc, "alice", "alice@test.com")

	_, err := svc.Register(ctx, &service.RegisterRequest{
		UserName: "alice", FullName: "Other", Email: "other@test.com", Password: "secret-pass",
		AvatarPath: "avatar.jpg", AvatarContentType: "image/jpeg",
	})
	e := errno.ConvertErr(err)
	assert.Equal(t, int64(errno.AlreadyExistsCode), e.ErrCode)
	assert.Equal(t, 409, e.StatusCode)

	// the duplicate was rejected before anything was uploaded
	assert.Equal(t, 1, storage.puts)
	assert.Empty(t, storage.removed)
}

func TestLoginAndRefreshRotation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)
	register(t, svc, "alice", "alice@test.com")

	_, _, err := svc.Login(ctx, "nobody@test.com", "secret-pass")
	assert.Equal(t, int64(errno.NotFoundCode), errno.ConvertErr(err).ErrCode)

	_, _, err = svc.Login(ctx, "alice", "wrong-pass")
	assert.Equal(t, int64(errno.UnauthenticatedCode), errno.ConvertErr(err).ErrCode)

	// username and email both work as identifier
	user, pair, err := svc.Login(ctx, "alice", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, pair2, err := svc.Login(ctx, "alice@test.com", "secret-pass")
	require.NoError(t, err)

	// rotation: the newest refresh token works once and replaces itself
	pair3, err := svc.RefreshTokens(ctx, pair2.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair2.RefreshToken, pair3.RefreshToken)

	// the rotated-out token is dead even though it has not expired
	_, err = svc.RefreshTokens(ctx, pair2.RefreshToken)
	assert.Equal(t, int64(errno.UnauthenticatedCode), errno.ConvertErr(err).ErrCode)
}

func TestLogoutRevokesRefresh(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)
	user := register(t, svc, "alice", "alice@test.com")

	_, pair, err := svc.Login(ctx, "alice", "secret-pass")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, user.UserID))

	_, err = svc.RefreshTokens(ctx, pair.RefreshToken)
	assert.Equal(t, int64(errno.UnauthenticatedCode), errno.ConvertErr(err).ErrCode)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)
	user := register(t, svc, "alice", "alice@test.com")

	err := svc.ChangePassword(ctx, user.UserID, "wrong-pass", "next-secret")
	assert.Equal(t, int64(errno.UnauthenticatedCode), errno.ConvertErr(err).ErrCode)

	require.NoError(t, svc.ChangePassword(ctx, user.UserID, "secret-pass", "next-secret"))

	_, _, err = svc.Login(ctx, "alice", "secret-pass")
	assert.Error(t, err)
	_, _, err = svc.Login(ctx, "alice", "next-secret")
	assert.NoError(t, err)
}

func TestUpdateAvatarReplacesBlob(t *testing.T) {
	ctx := context.Background()
	svc, _, storage := setupService(t)
	user := register(t, svc, "alice", "alice@test.com")
	oldBlob := user.AvatarID

	updated, err := svc.UpdateAvatar(ctx, user.UserID, "new.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, oldBlob, updated.AvatarID)
	assert.Contains(t, storage.removed, oldBlob)
}

func TestChannelProfile(t *testing.T) {
	ctx := context.Background()
	svc, gdb, _ := setupService(t)
	alice := register(t, svc, "alice", "alice@test.com")
	bob := register(t, svc, "bob", "bob@test.com")
	require.NoError(t, gdb.Create(&model.Subscription{
		SubscriptionID: 1, SubscriberID: bob.UserID, ChannelID: alice.UserID,
	}).Error)

	_, err := svc.GetChannelProfile(ctx, "ghost", nil)
	assert.Equal(t, int64(errno.NotFoundCode), errno.ConvertErr(err).ErrCode)

	// the lookup is case-insensitive, the channel URL is public-facing
	profile, err := svc.GetChannelProfile(ctx, "ALICE", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.SubscriberCount)
	assert.Zero(t, profile.SubscribedToCount)
	assert.False(t, profile.IsSubscribed)

	viewer := &jwt.Principal{UserID: bob.UserID}
	profile, err = svc.GetChannelProfile(ctx, "alice", viewer)
	require.NoError(t, err)
	assert.True(t, profile.IsSubscribed)
}

func TestWatchHistoryView(t *testing.T) {
	ctx := context.Background()
	svc, gdb, _ := setupService(t)
	alice := register(t, svc, "alice", "alice@test.com")
	bob := register(t, svc, "bob", "bob@test.com")
	require.NoError(t, gdb.Create(&model.Video{
		VideoID: 100, UserID: alice.UserID, Title: "t", Description: "d", IsPublished: true,
	}).Error)
	require.NoError(t, userdb.NewUserRepo(gdb).UpsertWatchHistory(ctx, bob.UserID, 100))

	rows, err := svc.GetWatchHistory(ctx, bob.UserID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(100), rows[0].VideoID)
	assert.Equal(t, "alice", rows[0].OwnerName)

	// a watched video that disappears drops out of the view entirely
	require.NoError(t, gdb.Where("video_id = ?", 100).Delete(&model.Video{}).Error)
	rows, err = svc.GetWatchHistory(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
