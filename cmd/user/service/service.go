package service

import (
	relationdb "github.com/Joydas46/VideoTube-Twitter/cmd/relation/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/cmd/user/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/pkg/jwt"
	"github.com/Joydas46/VideoTube-Twitter/pkg/oss"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

// UserService owns accounts: registration, the token pair, profile media and
// the channel/watch-history views. Every dependency is injected at startup.
type UserService struct {
	users   *db.UserRepo
	subs    *relationdb.SubscriptionRepo
	storage oss.Storage
	tokens  *jwt.TokenManager
	idgen   *utils.IDGenerator
}

func NewUserService(users *db.UserRepo, subs *relationdb.SubscriptionRepo,
	storage oss.Storage, tokens *jwt.TokenManager, idgen *utils.IDGenerator) *UserService {
	return &UserService{users: users, subs: subs, storage: storage, tokens: tokens, idgen: idgen}
}
