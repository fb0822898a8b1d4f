package utils

import (
	"strconv"
)

const (
	DefaultLimit  = 5
	DefaultOffset = 0
)

// ParseLimit normalizes a limit query parameter. Non-numeric or
// non-positive values fall back to the default.
func ParseLimit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	return n
}

// ParseOffset normalizes an offset query parameter. Non-numeric or
// negative values fall back to zero.
func ParseOffset(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return DefaultOffset
	}
	return n
}

// ParseID parses a numeric path parameter into a comment/user id.
func ParseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
