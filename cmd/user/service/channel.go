package service

import (
	"context"
	"strings"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	"github.com/Joydas46/VideoTube-Twitter/cmd/user/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/jwt"
)

// ChannelProfile is the public channel page: the profile plus derived
// subscription counts and, for an authenticated viewer, whether they
// subscribe to this channel.
type ChannelProfile struct {
	model.UserProfile
	Email             string `json:"email"`
	SubscriberCount   int64  `json:"subscriber_count"`
	SubscribedToCount int64  `json:"channels_subscribed_to_count"`
	IsSubscribed      bool   `json:"is_subscribed"`
}

// GetChannelProfile resolves a channel by username. The viewer is optional;
// an anonymous viewer always sees is_subscribed false.
func (s *UserService) GetChannelProfile(ctx context.Context, username string, viewer *jwt.Principal) (*ChannelProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("username is required")
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errno.NotFoundErr.WithMessage("channel does not exist")
	}

	subscribers, err := s.subs.SubscriberCount(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subs.SubscribedToCount(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	profile := &ChannelProfile{
		UserProfile:       user.Profile(),
		Email:             user.Email,
		SubscriberCount:   subscribers,
		SubscribedToCount: subscribedTo,
	}
	if viewer != nil {
		profile.IsSubscribed, err = s.subs.IsSubscribed(ctx, viewer.UserID, user.UserID)
		if err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// GetWatchHistory lists the viewer's watched videos, most recent first.
func (s *UserService) GetWatchHistory(ctx context.Context, userID int64) ([]*db.WatchedVideoRow, error) {
	rows, err := s.users.ListWatchedVideos(ctx, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
