package constants

const (
	DefaultPageNum  = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	MaxCommentLength = 500
	MaxTweetLength   = 280
	MinPasswordLen   = 6

	// Toggle lock lease. A toggle is two short queries; anything holding the
	// lock longer than this is stuck and may be fenced out.
	ToggleLockExpirySeconds = 3
)

// Sort fields the video feed accepts. Anything else falls back to created_at.
var VideoSortFields = map[string]string{
	"created_at": "created_at",
	"views":      "views",
	"duration":   "duration",
}
