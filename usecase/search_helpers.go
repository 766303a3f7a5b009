package usecase

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"satorii/domain/model"
)

// ErrInvalidArgument marks caller mistakes such as a missing id or query.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(msg string) error {
	return &argumentError{msg: msg}
}

type argumentError struct{ msg string }

func (e *argumentError) Error() string        { return e.msg }
func (e *argumentError) Is(target error) bool { return target == ErrInvalidArgument }

const maxRelatedTags = 8

var (
	punctuation = regexp.MustCompile(`[^\w\s]`)

	videoIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\n?#]+)`),
		regexp.MustCompile(`youtube\.com/embed/([^&\n?#]+)`),
		regexp.MustCompile(`youtube\.com/v/([^&\n?#]+)`),
		regexp.MustCompile(`youtube\.com/shorts/([^&\n?#/]+)`),
	}
	playlistIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[?&]list=([^&#]+)`),
	}
	bareID      = regexp.MustCompile(`^[A-Za-z0-9_-]{10,}$`)
	bareVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

var tagStopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`the be to of and a in that have i it for not on with he as you do at
		this but his by from they we say her she or an will my one all would there
		their what so up out if about who get which go me when make can like time no
		just him know take people into year your good some could them see other than then
		now look only come its over think also back after use two how our work first well
		way even new want because any these give day most us
		video videos youtube channel official clip full hd hq 4k 1080p music lyric lyrics
		feat ft vs live stream 2023 2024 2025 best top shorts short`) {
		tagStopWords[w] = struct{}{}
	}
}

// RelatedTags suggests follow-up search terms: the most frequent meaningful
// title words of a result page that are not already in the query.
func RelatedTags(items []model.Video, query string) []string {
	if len(items) == 0 {
		return []string{}
	}

	queryWords := map[string]struct{}{}
	for _, w := range strings.Fields(strings.ToLower(query)) {
		queryWords[w] = struct{}{}
	}

	counts := map[string]int{}
	var order []string
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		for _, word := range strings.Fields(punctuation.ReplaceAllString(strings.ToLower(item.Title), "")) {
			if len(word) <= 2 {
				continue
			}
			if _, stop := tagStopWords[word]; stop {
				continue
			}
			if _, inQuery := queryWords[word]; inQuery {
				continue
			}
			if _, err := strconv.ParseFloat(word, 64); err == nil {
				continue
			}
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > maxRelatedTags {
		order = order[:maxRelatedTags]
	}
	if order == nil {
		return []string{}
	}
	return order
}

// ExtractVideoID pulls the video id out of a watch, short link, embed or shorts URL.
func ExtractVideoID(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// ExtractPlaylistID pulls the list parameter out of a URL. A bare playlist id
// is accepted as-is.
func ExtractPlaylistID(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	for _, p := range playlistIDPatterns {
		if m := p.FindStringSubmatch(input); m != nil {
			return m[1]
		}
	}
	if bareID.MatchString(input) {
		return input
	}
	return ""
}
