package utils

import "strconv"

// ParseID parses a path/query identifier. Every persisted id is a positive
// snowflake int64; anything else is malformed.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
