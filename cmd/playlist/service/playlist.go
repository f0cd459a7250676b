package service

import (
	"context"
	"strings"

	"github.com/Joydas46/VideoTube-Twitter/cmd/model"
	"github.com/Joydas46/VideoTube-Twitter/cmd/playlist/dal/db"
	userdb "github.com/Joydas46/VideoTube-Twitter/cmd/user/dal/db"
	videodb "github.com/Joydas46/VideoTube-Twitter/cmd/video/dal/db"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

// PlaylistService owns named video collections. Membership is a set: adding
// a video twice keeps a single entry.
type PlaylistService struct {
	playlists *db.PlaylistRepo
	users     *userdb.UserRepo
	videos    *videodb.VideoRepo
	idgen     *utils.IDGenerator
}

func NewPlaylistService(playlists *db.PlaylistRepo, users *userdb.UserRepo,
	videos *videodb.VideoRepo, idgen *utils.IDGenerator) *PlaylistService {
	return &PlaylistService{playlists: playlists, users: users, videos: videos, idgen: idgen}
}

func (s *PlaylistService) Create(ctx context.Context, userID int64, name, description string) (*model.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("playlist name is required")
	}
	playlist := &model.Playlist{
		PlaylistID:  s.idgen.Generate(),
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// ownedPlaylist loads the playlist and enforces ownership, NotFound before
// PermissionDenied.
func (s *PlaylistService) ownedPlaylist(ctx context.Context, playlistID, userID int64) (*model.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, errno.NotFoundErr.WithMessage("playlist does not exist")
	}
	if !model.IsOwner(playlist, userID) {
		return nil, errno.PermissionDeniedErr.WithMessage("you do not own this playlist")
	}
	return playlist, nil
}

// PlaylistDetail is the full playlist page: the record, its owner's public
// profile and the member videos flattened with theirs.
type PlaylistDetail struct {
	*model.Playlist
	Owner      model.UserProfile      `json:"owner"`
	Videos     []*db.PlaylistVideoRow `json:"videos"`
	VideoCount int                    `json:"video_count"`
}

func (s *PlaylistService) GetPlaylist(ctx context.Context, playlistID int64) (*PlaylistDetail, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, errno.NotFoundErr.WithMessage("playlist does not exist")
	}
	owner, err := s.users.GetByID(ctx, playlist.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, errno.NotFoundErr.WithMessage("playlist owner does not exist")
	}
	videos, err := s.playlists.ListVideos(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return &PlaylistDetail{
		Playlist:   playlist,
		Owner:      owner.Profile(),
		Videos:     videos,
		VideoCount: len(videos),
	}, nil
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, playlistID, userID int64, name, description string) (*model.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("playlist name is required")
	}
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	if err := s.playlists.UpdateDetails(ctx, playlistID, name, description); err != nil {
		return nil, err
	}
	return s.playlists.GetByID(ctx, playlistID)
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, playlistID, userID int64) error {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.playlists.Delete(ctx, playlistID)
}

func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, userID int64) error {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return err
	}
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video == nil {
		return errno.NotFoundErr.WithMessage("video does not exist")
	}
	return s.playlists.AddVideo(ctx, playlistID, videoID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, userID int64) error {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.playlists.RemoveVideo(ctx, playlistID, videoID)
}

func (s *PlaylistService) ListUserPlaylists(ctx context.Context, userID int64) ([]*db.UserPlaylistRow, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errno.NotFoundErr.WithMessage("user does not exist")
	}
	return s.playlists.ListByUser(ctx, userID)
}
