package model

// Owned is any record guarded by the owner check: Video, Comment, Tweet,
// Playlist.
type Owned interface {
	OwnerID() int64
}

// IsOwner is the single ownership predicate every mutation endpoint goes
// through. Callers resolve NotFound before calling it.
func IsOwner(resource Owned, principalID int64) bool {
	return resource.OwnerID() == principalID
}
