package service

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	"github.com/Joydas46/VideoTube-Twitter/cmd/relation/dal/db"
	userdb "github.com/Joydas46/VideoTube-Twitter/cmd/user/dal/db"
	videodb "github.com/Joydas46/VideoTube-Twitter/cmd/video/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/pkg/constants"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

// RelationService owns the subscriber graph between channels.
type RelationService struct {
	subs   *db.SubscriptionRepo
	users  *userdb.UserRepo
	videos *videodb.VideoRepo
	sync   *redsync.Redsync
	idgen  *utils.IDGenerator
}

func NewRelationService(subs *db.SubscriptionRepo, users *userdb.UserRepo,
	videos *videodb.VideoRepo, sync *redsync.Redsync, idgen *utils.IDGenerator) *RelationService {
	return &RelationService{subs: subs, users: users, videos: videos, sync: sync, idgen: idgen}
}

// ToggleSubscription flips the caller's subscription to a channel and
// reports the new state. Subscribing to yourself is rejected outright.
func (s *RelationService) ToggleSubscription(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	if subscriberID == channelID {
		return false, errno.InvalidArgumentErr.WithMessage("cannot subscribe to your own channel")
	}
	channel, err := s.users.GetByID(ctx, channelID)
	if err != nil {
		return false, err
	}
	if channel == nil {
		return false, errno.NotFoundErr.WithMessage("channel does not exist")
	}

	mutex := s.sync.NewMutex(db.LockKey(subscriberID, channelID),
		redsync.WithExpiry(constants.ToggleLockExpirySeconds*time.Second))
	if err := mutex.LockContext(ctx); err != nil {
		return false, errno.ServiceErr.WithMessage("could not acquire toggle lock")
	}
	defer mutex.UnlockContext(ctx)

	existing, err := s.subs.Get(ctx, subscriberID, channelID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		sub := &model.Subscription{
			SubscriptionID: s.idgen.Generate(),
			SubscriberID:   subscriberID,
			ChannelID:      channelID,
		}
		if err := s.subs.Create(ctx, sub); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := s.subs.Delete(ctx, existing.SubscriptionID); err != nil {
		return false, err
	}
	return false, nil
}

// ListSubscribers lists everyone subscribed to the channel, including
// whether the channel subscribes back to each of them.
func (s *RelationService) ListSubscribers(ctx context.Context, channelID int64) ([]*db.SubscriberRow, error) {
	channel, err := s.users.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, errno.NotFoundErr.WithMessage("channel does not exist")
	}
	return s.subs.ListSubscribers(ctx, channelID)
}

// SubscribedChannel is one followed channel with its counts and most recent
// video, if it has one.
type SubscribedChannel struct {
	*db.SubscribedChannelRow
	LatestVideo *model.Video `json:"latest_video,omitempty"`
}

func (s *RelationService) ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]*SubscribedChannel, error) {
	user, err := s.users.GetByID(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errno.NotFoundErr.WithMessage("user does not exist")
	}

	rows, err := s.subs.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	channels := make([]*SubscribedChannel, 0, len(rows))
	for _, row := range rows {
		latest, err := s.videos.LatestByOwner(ctx, row.UserID)
		if err != nil {
			return nil, err
		}
		channels = append(channels, &SubscribedChannel{SubscribedChannelRow: row, LatestVideo: latest})
	}
	return channels, nil
}
