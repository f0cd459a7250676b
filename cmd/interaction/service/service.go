package service

import (
	"github.com/go-redsync/redsync/v4"

	"github.com/Joydas46/VideoTube-Twitter/cmd/interaction/dal/db"
	tweetdb "github.com/Joydas46/VideoTube-Twitter/cmd/tweet/dal/db"
	videodb "github.com/Joydas46/VideoTube-Twitter/cmd/video/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

// InteractionService owns comments and the like toggles. The redsync factory
// serializes concurrent toggles on the same (user, target) pair.
type InteractionService struct {
	comments *db.CommentRepo
	likes    *db.LikeRepo
	videos   *videodb.VideoRepo
	tweets   *tweetdb.TweetRepo
	sync     *redsync.Redsync
	idgen    *utils.IDGenerator
}

func NewInteractionService(comments *db.CommentRepo, likes *db.LikeRepo,
	videos *videodb.VideoRepo, tweets *tweetdb.TweetRepo,
	sync *redsync.Redsync, idgen *utils.IDGenerator) *InteractionService {
	return &InteractionService{
		comments: comments,
		likes:    likes,
		videos:   videos,
		tweets:   tweets,
		sync:     sync,
		idgen:    idgen,
	}
}
