package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOwner(t *testing.T) {
	video := &Video{VideoID: 10, UserID: 7}
	assert.True(t, IsOwner(video, 7))
	assert.False(t, IsOwner(video, 8))

	comment := &Comment{CommentID: 11, UserID: 3}
	assert.True(t, IsOwner(comment, 3))
	assert.False(t, IsOwner(comment, 7))

	tweet := &Tweet{TweetID: 12, UserID: 5}
	playlist := &Playlist{PlaylistID: 13, UserID: 5}
	assert.True(t, IsOwner(tweet, 5))
	assert.True(t, IsOwner(playlist, 5))
	assert.False(t, IsOwner(playlist, 0))
}
