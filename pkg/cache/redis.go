package cache

import (
	"context"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Joydas46/VideoTube-Twitter/config"
)

// Client bundles the redis connection with a redsync factory. Redsync backs
// the per-(actor,target) toggle mutexes; the raw client backs the video visit
// counter.
type Client struct {
	RDB  *redis.Client
	Sync *redsync.Redsync
}

func Init(conf config.Redis) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	logrus.Infof("redis connected: %s", conf.Addr)

	pool := goredis.NewPool(rdb)
	return &Client{RDB: rdb, Sync: redsync.New(pool)}, nil
}
