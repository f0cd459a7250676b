package main

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
	"github.com/sirupsen/logrus"

	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers"
	dashboardh "github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/dashboard"
	interactionh "github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/interaction"
	playlisth "github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/playlist"
	relationh "github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/relation"
	tweeth "github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/tweet"
	userh "github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/user"
	videoh "github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/video"
	"github.com/Joydas46/VideoTube-Twitter/cmd/api/router"
	interactiondb "github.com/Joydas46/VideoTube-Twitter/cmd/interaction/dal/db"
	interactionsvc "github.com/Joydas46/VideoTube-Twitter/cmd/interaction/service"
	playlistdb "github.com/Joydas46/VideoTube-Twitter/cmd/playlist/dal/db"
	playlistsvc "github.com/Joydas46/VideoTube-Twitter/cmd/playlist/service"
	relationdb "github.com/Joydas46/VideoTube-Twitter/cmd/relation/dal/db"
	relationsvc "github.com/Joydas46/VideoTube-Twitter/cmd/relation/service"
	tweetdb "github.com/Joydas46/VideoTube-Twitter/cmd/tweet/dal/db"
	tweetsvc "github.com/Joydas46/VideoTube-Twitter/cmd/tweet/service"
	userdb "github.com/Joydas46/VideoTube-Twitter/cmd/user/dal/db"
	usersvc "github.com/Joydas46/VideoTube-Twitter/cmd/user/service"
	videodb "github.com/Joydas46/VideoTube-Twitter/cmd/video/dal/db"
	videoredis "github.com/Joydas46/VideoTube-Twitter/cmd/video/infras/redis"
	videosvc "github.com/Joydas46/VideoTube-Twitter/cmd/video/service"
	"github.com/Joydas46/VideoTube-Twitter/config"
	"github.com/Joydas46/VideoTube-Twitter/pkg/cache"
	"github.com/Joydas46/VideoTube-Twitter/pkg/database"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/jwt"
	"github.com/Joydas46/VideoTube-Twitter/pkg/oss"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	db, err := database.Init(conf.Mysql)
	if err != nil {
		logrus.Fatalf("init mysql: %v", err)
	}
	redisClient, err := cache.Init(conf.Redis)
	if err != nil {
		logrus.Fatalf("init redis: %v", err)
	}
	storage, err := oss.InitMinio(conf.Minio)
	if err != nil {
		logrus.Fatalf("init minio: %v", err)
	}
	tokens, err := jwt.New(conf.Jwt)
	if err != nil {
		logrus.Fatalf("init jwt: %v", err)
	}
	idgen, err := utils.NewIDGenerator(1, 1)
	if err != nil {
		logrus.Fatalf("init id generator: %v", err)
	}

	userRepo := userdb.NewUserRepo(db)
	videoRepo := videodb.NewVideoRepo(db)
	commentRepo := interactiondb.NewCommentRepo(db)
	likeRepo := interactiondb.NewLikeRepo(db)
	subRepo := relationdb.NewSubscriptionRepo(db)
	playlistRepo := playlistdb.NewPlaylistRepo(db)
	tweetRepo := tweetdb.NewTweetRepo(db)
	visitCounter := videoredis.NewVisitCounter(redisClient.RDB)

	userService := usersvc.NewUserService(userRepo, subRepo, storage, tokens, idgen)
	videoService := videosvc.NewVideoService(videoRepo, userRepo, visitCounter, storage, utils.ExtractThumbnail, idgen)
	interactionService := interactionsvc.NewInteractionService(
		commentRepo, likeRepo, videoRepo, tweetRepo, redisClient.Sync, idgen)
	relationService := relationsvc.NewRelationService(subRepo, userRepo, videoRepo, redisClient.Sync, idgen)
	playlistService := playlistsvc.NewPlaylistService(playlistRepo, userRepo, videoRepo, idgen)
	tweetService := tweetsvc.NewTweetService(tweetRepo, userRepo, idgen)

	r := server.New(
		server.WithHostPorts(conf.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(conf.Server.MaxRequestBody),
	)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     conf.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, handlers.ErrorResponse{
				StatusCode: consts.StatusInternalServerError,
				Message:    errno.ServiceErr.ErrMsg,
				Success:    false,
				Errors:     []string{},
			})
		})))

	router.Register(r, &router.Handlers{
		User:        userh.NewHandler(userService),
		Video:       videoh.NewHandler(videoService),
		Interaction: interactionh.NewHandler(interactionService),
		Relation:    relationh.NewHandler(relationService),
		Playlist:    playlisth.NewHandler(playlistService),
		Tweet:       tweeth.NewHandler(tweetService),
		Dashboard:   dashboardh.NewHandler(videoService),
	}, tokens)

	r.Spin()
}
