// Package ranking holds the feed ranking rules: which display pages exist,
// the recency window each applies, how a photo is scored and how results
// are paged. It has no storage dependencies.
package ranking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CommentWeight is how many engagement actions one comment is worth.
const CommentWeight = 5

// Page selects a ranked view of the public photos.
type Page string

const (
	// PageTop is the default view: last 30 days by votes.
	PageTop Page = "top"
	// PageAll ranks every categorized photo by engagement score.
	PageAll Page = "all"
	// PageWeekly ranks the last 7 days by engagement score.
	PageWeekly Page = "weekly"
	// PagePicks lists the curated feed, newest curation first.
	PagePicks Page = "picks"
	// PagePopular ranks the last 7 days by action count alone.
	PagePopular Page = "popular"
)

// TopLimit caps the default view.
const TopLimit = 100

var ErrUnknownPage = errors.New("unknown display page")

// ParsePage resolves a display_page query value. Empty selects PageTop.
func ParsePage(raw string) (Page, error) {
	switch p := Page(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return PageTop, nil
	case PageTop, PageAll, PageWeekly, PagePicks, PagePopular:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, raw)
	}
}

// Window is the recency window of the page, zero when unbounded.
func (p Page) Window() time.Duration {
	switch p {
	case PageWeekly, PagePopular:
		return 7 * 24 * time.Hour
	case PageTop:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// Cutoff returns the earliest creation time admitted at now, or nil when the
// page has no recency bound. The boundary itself is included.
func (p Page) Cutoff(now time.Time) *time.Time {
	w := p.Window()
	if w == 0 {
		return nil
	}
	c := now.Add(-w)
	return &c
}

// Scored reports whether results are ordered by the engagement score.
func (p Page) Scored() bool {
	return p == PageAll || p == PageWeekly
}

// Score is the engagement score of a photo.
func Score(actions, comments int64) int64 {
	return actions + CommentWeight*comments
}

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
	// MaxPageNumber keeps Offset well inside a Postgres OFFSET.
	MaxPageNumber = 1_000_000
)

// Paging is the client requested slice of results. Number is 1-based.
type Paging struct {
	Number int
	Size   int
}

// NewPaging normalizes client supplied values.
func NewPaging(number, size int) Paging {
	if number < 1 {
		number = 1
	}
	if number > MaxPageNumber {
		number = MaxPageNumber
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Paging{Number: number, Size: size}
}

func (p Paging) Offset() int {
	return (p.Number - 1) * p.Size
}

// Clamp limits the paging to a view with a hard cap on total rows.
// It returns the limit to use and false when the page lies past the cap.
func (p Paging) Clamp(capRows int) (int, bool) {
	if capRows <= 0 {
		return p.Size, true
	}
	remaining := capRows - p.Offset()
	if remaining <= 0 {
		return 0, false
	}
	if remaining < p.Size {
		return remaining, true
	}
	return p.Size, true
}

// HasNext reports whether rows remain after this page.
func (p Paging) HasNext(total int) bool {
	return p.Offset()+p.Size < total
}
