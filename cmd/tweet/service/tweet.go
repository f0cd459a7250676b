package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	"github.com/Joydas46/VideoTube-Twitter/cmd/tweet/dal/db"
	userdb "github.com/Joydas46/VideoTube-Twitter/cmd/user/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/pkg/constants"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

// TweetService owns the short-post timeline attached to each channel.
type TweetService struct {
	tweets *db.TweetRepo
	users  *userdb.UserRepo
	idgen  *utils.IDGenerator
}

func NewTweetService(tweets *db.TweetRepo, users *userdb.UserRepo, idgen *utils.IDGenerator) *TweetService {
	return &TweetService{tweets: tweets, users: users, idgen: idgen}
}

func validateTweetContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errno.InvalidArgumentErr.WithMessage("tweet content is required")
	}
	if utf8.RuneCountInString(content) > constants.MaxTweetLength {
		return errno.InvalidArgumentErr.WithMessage("tweet content is too long")
	}
	return nil
}

func (s *TweetService) CreateTweet(ctx context.Context, userID int64, content string) (*model.Tweet, error) {
	if err := validateTweetContent(content); err != nil {
		return nil, err
	}
	tweet := &model.Tweet{
		TweetID: s.idgen.Generate(),
		UserID:  userID,
		Content: content,
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) ownedTweet(ctx context.Context, tweetID, userID int64) (*model.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet == nil {
		return nil, errno.NotFoundErr.WithMessage("tweet does not exist")
	}
	if !model.IsOwner(tweet, userID) {
		return nil, errno.PermissionDeniedErr.WithMessage("you do not own this tweet")
	}
	return tweet, nil
}

func (s *TweetService) UpdateTweet(ctx context.Context, tweetID, userID int64, content string) (*model.Tweet, error) {
	if err := validateTweetContent(content); err != nil {
		return nil, err
	}
	if _, err := s.ownedTweet(ctx, tweetID, userID); err != nil {
		return nil, err
	}
	if err := s.tweets.UpdateContent(ctx, tweetID, content); err != nil {
		return nil, err
	}
	return s.tweets.GetByID(ctx, tweetID)
}

func (s *TweetService) DeleteTweet(ctx context.Context, tweetID, userID int64) error {
	if _, err := s.ownedTweet(ctx, tweetID, userID); err != nil {
		return err
	}
	return s.tweets.Delete(ctx, tweetID)
}

func (s *TweetService) ListUserTweets(ctx context.Context, userID int64) ([]*db.TweetRow, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errno.NotFoundErr.WithMessage("user does not exist")
	}
	return s.tweets.ListByUser(ctx, userID)
}
