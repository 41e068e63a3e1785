package query

import (
	"math"
	"strconv"
	"strings"
)

// Paging defaults. Listings default to 8 rows; search and owner listings
// default to 6.
const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 8
	SearchLimit  int64 = 6
	MaxLimit     int64 = 100
)

// Window is one page of a paginated result.
type Window struct {
	Page  int64
	Limit int64
}

// MaxPage is the largest page whose offset fits in an int64 for limit.
func MaxPage(limit int64) int64 {
	if limit <= 1 {
		return math.MaxInt64
	}
	return math.MaxInt64/limit + 1
}

// NewWindow clamps page to [1, MaxPage(limit)] and limit to [1, MaxLimit].
// A limit below 1 becomes DefaultLimit.
func NewWindow(page, limit int64) Window {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page > MaxPage(limit) {
		page = MaxPage(limit)
	}
	return Window{Page: page, Limit: limit}
}

// ParseWindow reads raw query values. Anything absent, unparsable or < 1
// falls back to the defaults; it never fails.
func ParseWindow(page, limit string, defLimit int64) Window {
	if defLimit < 1 {
		defLimit = DefaultLimit
	}
	return NewWindow(parsePositive(page, DefaultPage), parsePositive(limit, defLimit))
}

func (w Window) Offset() int64 { return (w.Page - 1) * w.Limit }

// TotalPages is ceil(total/limit), 0 for an empty result.
func TotalPages(total, limit int64) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func parsePositive(s string, def int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}
