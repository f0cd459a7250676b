package redis

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const visitKey = "video:visit"

// VisitCounter keeps per-video view counts in a sorted set so each fetch is a
// single ZINCRBY and the hot videos stay rankable. Counts are written back to
// the videos table by the owning service.
type VisitCounter struct {
	rdb *redis.Client
}

func NewVisitCounter(rdb *redis.Client) *VisitCounter {
	return &VisitCounter{rdb: rdb}
}

// Seed initializes the counter for a video from its persisted view count.
// Existing entries are left alone.
func (c *VisitCounter) Seed(ctx context.Context, videoID, views int64) error {
	member := strconv.FormatInt(videoID, 10)
	added := redis.ZAddArgs{
		NX:      true,
		Members: []redis.Z{{Score: float64(views), Member: member}},
	}
	if err := c.rdb.ZAddArgs(ctx, visitKey, added).Err(); err != nil {
		return errors.Wrapf(err, "seed visit count for video %d", videoID)
	}
	return nil
}

// Incr bumps the view count and returns the new value.
func (c *VisitCounter) Incr(ctx context.Context, videoID int64) (int64, error) {
	member := strconv.FormatInt(videoID, 10)
	score, err := c.rdb.ZIncrBy(ctx, visitKey, 1, member).Result()
	if err != nil {
		return 0, errors.Wrapf(err, "incr visit count for video %d", videoID)
	}
	return int64(score), nil
}

// Get returns the cached view count. The boolean is false when the video has
// no entry yet.
func (c *VisitCounter) Get(ctx context.Context, videoID int64) (int64, bool, error) {
	member := strconv.FormatInt(videoID, 10)
	score, err := c.rdb.ZScore(ctx, visitKey, member).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrapf(err, "get visit count for video %d", videoID)
	}
	return int64(score), true, nil
}

// Remove drops the counter entry when its video is deleted.
func (c *VisitCounter) Remove(ctx context.Context, videoID int64) error {
	member := strconv.FormatInt(videoID, 10)
	if err := c.rdb.ZRem(ctx, visitKey, member).Err(); err != nil {
		return errors.Wrapf(err, "remove visit count for video %d", videoID)
	}
	return nil
}
