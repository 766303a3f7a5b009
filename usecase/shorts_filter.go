package usecase

import (
	"regexp"
	"strconv"

	"satorii/domain/model"
)

// DefaultShortsMaxSeconds is the duration ceiling below which a clip counts as short.
const DefaultShortsMaxSeconds = 60

var (
	shortsHashtag = regexp.MustCompile(`(?i)#shorts?\b`)
	isoDuration   = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)
)

// IsShort classifies a video as short-form. The first matching signal wins:
// hashtag in title or description, then a vertical best thumbnail, then a known
// duration within maxSeconds. Unknown duration alone never classifies.
func IsShort(v model.Video, maxSeconds int) bool {
	if maxSeconds <= 0 {
		maxSeconds = DefaultShortsMaxSeconds
	}
	if shortsHashtag.MatchString(v.Title) || shortsHashtag.MatchString(v.Description) {
		return true
	}
	if th := v.Thumbnails.Best(); th != nil && th.Height > th.Width {
		return true
	}
	if v.DurationSeconds != nil {
		d := *v.DurationSeconds
		return d >= 0 && d <= maxSeconds
	}
	return false
}

// FilterOutShorts returns the long-form videos of items, preserving order,
// and how many were dropped.
func FilterOutShorts(items []model.Video, maxSeconds int) ([]model.Video, int) {
	out := make([]model.Video, 0, len(items))
	for _, v := range items {
		if IsShort(v, maxSeconds) {
			continue
		}
		out = append(out, v)
	}
	return out, len(items) - len(out)
}

// ParseISODuration converts an ISO-8601 duration such as PT1H2M3S to seconds.
// ok is false when the text is empty, unparseable or has no time part; live
// and upcoming broadcasts report P0D, which is not a length.
func ParseISODuration(s string) (seconds int, ok bool) {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil || m[2]+m[3]+m[4] == "" {
		return 0, false
	}
	units := []int{86400, 3600, 60, 1}
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, false
		}
		seconds += n * unit
	}
	return seconds, true
}
