package service

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"

	"github.com/Joydas46/VideoTube-Twitter/cmd/interaction/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/pkg/constants"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
)

// ToggleVideoLike flips the caller's like on a video and reports the new
// state.
func (s *InteractionService) ToggleVideoLike(ctx context.Context, userID, videoID int64) (bool, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return false, err
	}
	if video == nil {
		return false, errno.NotFoundErr.WithMessage("video does not exist")
	}
	return s.toggle(ctx, userID, db.VideoTarget(videoID))
}

func (s *InteractionService) ToggleCommentLike(ctx context.Context, userID, commentID int64) (bool, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return false, err
	}
	if comment == nil {
		return false, errno.NotFoundErr.WithMessage("comment does not exist")
	}
	return s.toggle(ctx, userID, db.CommentTarget(commentID))
}

func (s *InteractionService) ToggleTweetLike(ctx context.Context, userID, tweetID int64) (bool, error) {
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return false, err
	}
	if tweet == nil {
		return false, errno.NotFoundErr.WithMessage("tweet does not exist")
	}
	return s.toggle(ctx, userID, db.TweetTarget(tweetID))
}

// toggle is the check-then-act core. The mutex serializes concurrent toggles
// on the same (user, target) pair so n flips land as n distinct state
// changes; the unique index on the pair is the backstop if the lock is ever
// lost.
func (s *InteractionService) toggle(ctx context.Context, userID int64, target db.LikeTarget) (bool, error) {
	mutex := s.sync.NewMutex(target.LockKey(userID),
		redsync.WithExpiry(constants.ToggleLockExpirySeconds*time.Second))
	if err := mutex.LockContext(ctx); err != nil {
		return false, errno.ServiceErr.WithMessage("could not acquire toggle lock")
	}
	defer mutex.UnlockContext(ctx)

	existing, err := s.likes.Get(ctx, userID, target)
	if err != nil {
		return false, err
	}
	if existing == nil {
		if _, err := s.likes.Create(ctx, s.idgen.Generate(), userID, target); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := s.likes.Delete(ctx, existing.LikeID); err != nil {
		return false, err
	}
	return false, nil
}

// ListLikedVideos is the caller's liked-video history, most recent first.
func (s *InteractionService) ListLikedVideos(ctx context.Context, userID int64) ([]*db.LikedVideoRow, error) {
	return s.likes.ListLikedVideos(ctx, userID)
}
