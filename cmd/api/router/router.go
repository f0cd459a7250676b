package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers"
	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/dashboard"
	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/interaction"
	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/playlist"
	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/relation"
	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/tweet"
	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/user"
	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers/video"
	"github.com/Joydas46/VideoTube-Twitter/cmd/api/router/authfunc"
	"github.com/Joydas46/VideoTube-Twitter/pkg/jwt"
)

// Handlers bundles every resource handler the router mounts.
type Handlers struct {
	User        *user.Handler
	Video       *video.Handler
	Interaction *interaction.Handler
	Relation    *relation.Handler
	Playlist    *playlist.Handler
	Tweet       *tweet.Handler
	Dashboard   *dashboard.Handler
}

// Register mounts every route under /api/v1.
func Register(r *server.Hertz, h *Handlers, tokens *jwt.TokenManager) {
	auth := authfunc.RequireAuth(tokens)
	optional := authfunc.OptionalAuth(tokens)

	r.GET("/healthcheck", func(ctx context.Context, c *app.RequestContext) {
		handlers.SendResponse(c, map[string]string{"status": "ok"}, "service is healthy")
	})

	v1 := r.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("/register", h.User.Register)
	users.POST("/login", h.User.Login)
	users.POST("/refresh-token", h.User.RefreshToken)
	users.POST("/logout", auth, h.User.Logout)
	users.POST("/change-password", auth, h.User.ChangePassword)
	users.GET("/current-user", auth, h.User.CurrentUser)
	users.PATCH("/update-account", auth, h.User.UpdateAccount)
	users.PATCH("/avatar", auth, h.User.UpdateAvatar)
	users.PATCH("/cover-image", auth, h.User.UpdateCover)
	users.GET("/c/:username", optional, h.User.ChannelProfile)
	users.GET("/history", auth, h.User.WatchHistory)

	videos := v1.Group("/videos")
	videos.GET("/", h.Video.Feed)
	videos.POST("/", auth, h.Video.Publish)
	videos.GET("/:videoId", optional, h.Video.GetVideo)
	videos.PATCH("/:videoId", auth, h.Video.UpdateVideo)
	videos.DELETE("/:videoId", auth, h.Video.DeleteVideo)
	videos.PATCH("/toggle/publish/:videoId", auth, h.Video.TogglePublish)

	comments := v1.Group("/comments", auth)
	comments.GET("/:videoId", h.Interaction.ListComments)
	comments.POST("/:videoId", h.Interaction.AddComment)
	comments.PATCH("/c/:commentId", h.Interaction.UpdateComment)
	comments.DELETE("/c/:commentId", h.Interaction.DeleteComment)

	likes := v1.Group("/likes", auth)
	likes.POST("/toggle/v/:videoId", h.Interaction.ToggleVideoLike)
	likes.POST("/toggle/c/:commentId", h.Interaction.ToggleCommentLike)
	likes.POST("/toggle/t/:tweetId", h.Interaction.ToggleTweetLike)
	likes.GET("/videos", h.Interaction.LikedVideos)

	tweets := v1.Group("/tweets", auth)
	tweets.POST("/", h.Tweet.Create)
	tweets.GET("/user/:userId", h.Tweet.UserTweets)
	tweets.PATCH("/:tweetId", h.Tweet.Update)
	tweets.DELETE("/:tweetId", h.Tweet.Delete)

	subs := v1.Group("/subscriptions", auth)
	subs.POST("/c/:channelId", h.Relation.ToggleSubscription)
	subs.GET("/c/:channelId", h.Relation.Subscribers)
	subs.GET("/u/:subscriberId", h.Relation.SubscribedChannels)

	playlists := v1.Group("/playlist", auth)
	playlists.POST("/", h.Playlist.Create)
	playlists.GET("/:playlistId", h.Playlist.Get)
	playlists.PATCH("/:playlistId", h.Playlist.Update)
	playlists.DELETE("/:playlistId", h.Playlist.Delete)
	playlists.PATCH("/add/:videoId/:playlistId", h.Playlist.AddVideo)
	playlists.PATCH("/remove/:videoId/:playlistId", h.Playlist.RemoveVideo)
	playlists.GET("/user/:userId", h.Playlist.UserPlaylists)

	dash := v1.Group("/dashboard", auth)
	dash.GET("/stats", h.Dashboard.Stats)
	dash.GET("/videos", h.Dashboard.Videos)
}
