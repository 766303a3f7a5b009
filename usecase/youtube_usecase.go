package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"satorii/domain/dto"
	"satorii/domain/model"
	"satorii/domain/repository"
	"satorii/infrastructure/logger"
	"satorii/infrastructure/metrics"

	"github.com/tidwall/gjson"
)

const maxBatchIDs = 50

// IYouTubeUseCase defines the interface for YouTube use case operations.
// Errors are returned only for caller mistakes (ErrInvalidArgument); upstream
// trouble yields an empty result with StatusUnavailable.
type IYouTubeUseCase interface {
	// Video operations
	SearchVideos(ctx context.Context, req *dto.YouTubeSearchRequest) (*dto.YouTubeVideoResponse, error)
	GetVideoDetails(ctx context.Context, videoID string) (*model.Video, error)
	GetVideosByIDs(ctx context.Context, ids []string) (*dto.YouTubeVideoResponse, error)
	GetTrending(ctx context.Context, req *dto.YouTubeTrendingRequest) (*dto.YouTubeVideoResponse, error)
	GetCategories(ctx context.Context, regionCode string) (*dto.YouTubeCategoryResponse, error)
	GetRelatedVideos(ctx context.Context, req *dto.YouTubeRelatedRequest) (*dto.YouTubeVideoResponse, error)
	GetComments(ctx context.Context, req *dto.YouTubeCommentListRequest) (*dto.YouTubeCommentResponse, error)

	// Channel operations
	GetChannelDetails(ctx context.Context, channelID string) (*model.Channel, error)
	GetChannels(ctx context.Context, ids []string) (*dto.YouTubeChannelResponse, error)
	GetChannelIcon(ctx context.Context, channelID string) (string, error)
	InvalidateChannelIcon(ctx context.Context, channelID string) error
	GetChannelVideos(ctx context.Context, req *dto.YouTubeChannelVideosRequest) (*dto.YouTubeVideoResponse, error)

	// Playlist operations
	GetPlaylistItems(ctx context.Context, req *dto.YouTubePlaylistRequest) (*dto.YouTubePlaylistItemsResponse, error)

	// Playback and discovery helpers
	ResolveStream(ctx context.Context, videoID string) (*dto.StreamResponse, error)
	Suggest(ctx context.Context, query string) (*dto.SuggestionResponse, error)
	Resolve(input string) (*dto.ResolveResponse, error)
}

// Options tunes defaults applied to incoming requests.
type Options struct {
	RegionCode        string
	MaxResults        int64
	ShortsMaxSeconds  int
	RelatedMinResults int
}

func (o Options) withDefaults() Options {
	if o.RegionCode == "" {
		o.RegionCode = "US"
	}
	if o.MaxResults <= 0 {
		o.MaxResults = 20
	}
	if o.ShortsMaxSeconds <= 0 {
		o.ShortsMaxSeconds = DefaultShortsMaxSeconds
	}
	if o.RelatedMinResults <= 0 {
		o.RelatedMinResults = 6
	}
	return o
}

// YouTubeUseCase implements the YouTube use case operations
type YouTubeUseCase struct {
	youtubeRepo repository.IYouTube
	cache       *ResponseCache
	streams     repository.IStreamResolver // optional
	suggester   repository.ISuggester      // optional
	opts        Options
}

var _ IYouTubeUseCase = (*YouTubeUseCase)(nil)

// NewYouTubeUseCase creates a new YouTube use case instance
func NewYouTubeUseCase(youtubeRepo repository.IYouTube, cache *ResponseCache, opts Options) *YouTubeUseCase {
	if cache == nil {
		cache = NewResponseCache(nil, nil)
	}
	return &YouTubeUseCase{youtubeRepo: youtubeRepo, cache: cache, opts: opts.withDefaults()}
}

// WithStreamResolver enables stream resolution (fluent)
func (u *YouTubeUseCase) WithStreamResolver(streams repository.IStreamResolver) *YouTubeUseCase {
	u.streams = streams
	return u
}

// WithSuggester enables autocomplete (fluent)
func (u *YouTubeUseCase) WithSuggester(suggester repository.ISuggester) *YouTubeUseCase {
	u.suggester = suggester
	return u
}

// fetch routes one upstream call through the response cache.
func (u *YouTubeUseCase) fetch(ctx context.Context, operation string, category model.CacheCategory, params interface{}, call func(ctx context.Context) model.FetchOutcome) model.FetchOutcome {
	key, err := CacheKey(operation, params)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Bypassing cache")
		return call(ctx)
	}
	return u.cache.Fetch(ctx, category, key, call)
}

func (u *YouTubeUseCase) clampMaxResults(n int64) int64 {
	if n <= 0 {
		return u.opts.MaxResults
	}
	if n > maxBatchIDs {
		return maxBatchIDs
	}
	return n
}

// degrade fills the status fields of a response from a non-success outcome.
func degrade(outcome model.FetchOutcome) (status, message string) {
	switch outcome.Kind {
	case model.OutcomeEmpty:
		return dto.StatusEmpty, "no results"
	case model.OutcomeFailure:
		switch outcome.Reason {
		case model.FailureQuotaExceeded:
			return dto.StatusUnavailable, "YouTube quota exhausted for every configured API key"
		case model.FailureTransport:
			return dto.StatusUnavailable, "YouTube is unreachable"
		default:
			return dto.StatusUnavailable, "YouTube returned an error"
		}
	}
	return dto.StatusOK, ""
}

func malformed(operation string, err error) (string, string) {
	logger.GetLogger().WithField("operation", operation).WithField("error", err).Error("Malformed upstream payload")
	return dto.StatusUnavailable, "YouTube returned an unreadable response"
}

func emptyVideoResponse(status, message string) *dto.YouTubeVideoResponse {
	return &dto.YouTubeVideoResponse{Items: []model.Video{}, Status: status, Message: message}
}

// videoPage decodes a successful list outcome, or describes why there is none.
func videoPage(operation string, outcome model.FetchOutcome) *dto.YouTubeVideoResponse {
	if !outcome.IsSuccess() {
		return emptyVideoResponse(degrade(outcome))
	}
	items, list, err := decodeVideos(outcome.Payload)
	if err != nil {
		return emptyVideoResponse(malformed(operation, err))
	}
	return &dto.YouTubeVideoResponse{
		Items:         items,
		NextPageToken: list.NextPageToken,
		TotalResults:  list.PageInfo.TotalResults,
		Status:        dto.StatusOK,
	}
}

// finish enriches and filters a page before it is returned.
func (u *YouTubeUseCase) finish(ctx context.Context, resp *dto.YouTubeVideoResponse, enrich, excludeShorts bool) *dto.YouTubeVideoResponse {
	if resp.Status != dto.StatusOK {
		return resp
	}
	if enrich {
		resp.Items = u.enrich(ctx, resp.Items)
	}
	if excludeShorts {
		resp.Items, resp.FilteredShorts = FilterOutShorts(resp.Items, u.opts.ShortsMaxSeconds)
	}
	return resp
}

// enrich fills durations, statistics and full thumbnails of raw search hits
// from the batch details lookup. Hits keep their order; a failed lookup leaves
// them untouched with unknown durations.
func (u *YouTubeUseCase) enrich(ctx context.Context, hits []model.Video) []model.Video {
	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		if !h.HasDuration() {
			ids = append(ids, h.ID)
		}
	}
	if len(ids) == 0 {
		return hits
	}
	details, err := u.GetVideosByIDs(ctx, ids)
	if err != nil || details.Status != dto.StatusOK {
		return hits
	}
	byID := make(map[string]model.Video, len(details.Items))
	for _, d := range details.Items {
		byID[d.ID] = d
	}
	out := make([]model.Video, len(hits))
	for i, h := range hits {
		d, ok := byID[h.ID]
		if !ok {
			out[i] = h
			continue
		}
		h.DurationSeconds = d.DurationSeconds
		h.ViewCount = d.ViewCount
		h.LikeCount = d.LikeCount
		h.CommentCount = d.CommentCount
		h.Tags = d.Tags
		h.CategoryID = d.CategoryID
		if d.Description != "" {
			h.Description = d.Description
		}
		if d.Thumbnails.Best() != nil {
			h.Thumbnails = d.Thumbnails
		}
		out[i] = h
	}
	return out
}

// SearchVideos searches videos by free text
func (u *YouTubeUseCase) SearchVideos(ctx context.Context, req *dto.YouTubeSearchRequest) (*dto.YouTubeVideoResponse, error) {
	if req == nil || (strings.TrimSpace(req.Q) == "" && req.RelatedToVideoID == "" && req.ChannelID == "") {
		return nil, invalidArgument("search query is required")
	}
	q := *req
	q.Q = strings.TrimSpace(q.Q)
	q.MaxResults = u.clampMaxResults(q.MaxResults)
	if q.Type == "" {
		q.Type = "video"
	}

	outcome := u.fetch(ctx, "search", model.CacheCategorySearch, &q, func(ctx context.Context) model.FetchOutcome {
		return u.youtubeRepo.Search(ctx, &q)
	})
	isVideo := q.Type == "video"
	resp := u.finish(ctx, videoPage("search", outcome), isVideo && !q.SkipEnrichment, isVideo && q.ExcludeShorts)
	if resp.Status == dto.StatusOK && q.Q != "" {
		resp.RelatedTags = RelatedTags(resp.Items, q.Q)
	}
	return resp, nil
}

// GetVideoDetails returns one video, or nil when it does not exist or YouTube is unavailable.
func (u *YouTubeUseCase) GetVideoDetails(ctx context.Context, videoID string) (*model.Video, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, invalidArgument("video ID is required")
	}
	resp, err := u.GetVideosByIDs(ctx, []string{videoID})
	if err != nil {
		return nil, err
	}
	for i := range resp.Items {
		if resp.Items[i].ID == videoID {
			return &resp.Items[i], nil
		}
	}
	return nil, nil
}

// GetVideosByIDs looks up full details in batches of 50, each cached on its own.
func (u *YouTubeUseCase) GetVideosByIDs(ctx context.Context, ids []string) (*dto.YouTubeVideoResponse, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, invalidArgument("at least one video ID is required")
	}

	all := &dto.YouTubeVideoResponse{Items: []model.Video{}, Status: dto.StatusEmpty, Message: "no results"}
	for start := 0; start < len(ids); start += maxBatchIDs {
		end := start + maxBatchIDs
		if end > len(ids) {
			end = len(ids)
		}
		batch := &dto.YouTubeVideoIDsRequest{IDs: ids[start:end]}
		outcome := u.fetch(ctx, "videos", model.CacheCategoryDetails, batch, func(ctx context.Context) model.FetchOutcome {
			return u.youtubeRepo.ListVideos(ctx, batch)
		})
		page := videoPage("videos", outcome)
		switch {
		case page.Status == dto.StatusOK:
			all.Items = append(all.Items, page.Items...)
			all.Status, all.Message = dto.StatusOK, ""
		case page.Status == dto.StatusUnavailable && all.Status != dto.StatusOK:
			all.Status, all.Message = page.Status, page.Message
		}
	}
	all.TotalResults = int64(len(all.Items))
	return all, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// GetTrending returns the most popular chart of a region
func (u *YouTubeUseCase) GetTrending(ctx context.Context, req *dto.YouTubeTrendingRequest) (*dto.YouTubeVideoResponse, error) {
	q := dto.YouTubeTrendingRequest{}
	if req != nil {
		q = *req
	}
	if q.RegionCode == "" {
		q.RegionCode = u.opts.RegionCode
	}
	q.RegionCode = strings.ToUpper(q.RegionCode)
	q.MaxResults = u.clampMaxResults(q.MaxResults)

	outcome := u.fetch(ctx, "trending", model.CacheCategoryTrending, &q, func(ctx context.Context) model.FetchOutcome {
		return u.youtubeRepo.ListTrending(ctx, &q)
	})
	return u.finish(ctx, videoPage("trending", outcome), false, q.ExcludeShorts), nil
}

// GetCategories lists the video categories of a region
func (u *YouTubeUseCase) GetCategories(ctx context.Context, regionCode string) (*dto.YouTubeCategoryResponse, error) {
	q := dto.YouTubeCategoriesRequest{RegionCode: strings.ToUpper(strings.TrimSpace(regionCode))}
	if q.RegionCode == "" {
		q.RegionCode = u.opts.RegionCode
	}
	outcome := u.fetch(ctx, "categories", model.CacheCategoryDetails, &q, func(ctx context.Context) model.FetchOutcome {
		return u.youtubeRepo.ListCategories(ctx, &q)
	})
	resp := &dto.YouTubeCategoryResponse{Items: []model.Category{}}
	if !outcome.IsSuccess() {
		resp.Status, resp.Message = degrade(outcome)
		return resp, nil
	}
	items, err := decodeCategories(outcome.Payload)
	if err != nil {
		resp.Status, resp.Message = malformed("categories", err)
		return resp, nil
	}
	resp.Items, resp.Status = items, dto.StatusOK
	return resp, nil
}

// GetRelatedVideos asks for videos related to a seed video and falls back to a
// title search when the relation query fails or yields too little. The title
// search replaces the relation results entirely.
func (u *YouTubeUseCase) GetRelatedVideos(ctx context.Context, req *dto.YouTubeRelatedRequest) (*dto.YouTubeVideoResponse, error) {
	if req == nil || strings.TrimSpace(req.VideoID) == "" {
		return nil, invalidArgument("video ID is required")
	}
	videoID := strings.TrimSpace(req.VideoID)
	maxResults := u.clampMaxResults(req.MaxResults)
	log := logger.GetLogger().WithField("videoId", videoID)

	primaryReq := dto.YouTubeSearchRequest{
		Type:             "video",
		RelatedToVideoID: videoID,
		MaxResults:       maxResults,
		PageToken:        req.PageToken,
	}
	primary := videoPage("related", u.fetch(ctx, "related", model.CacheCategorySearch, &primaryReq, func(ctx context.Context) model.FetchOutcome {
		return u.youtubeRepo.Search(ctx, &primaryReq)
	}))
	primary.Source = dto.SourceRelated

	if primary.Status == dto.StatusOK && len(primary.Items) >= u.opts.RelatedMinResults {
		return u.finish(ctx, primary, true, req.ExcludeShorts), nil
	}

	trigger := metrics.FallbackLowYield
	if primary.Status == dto.StatusUnavailable {
		trigger = metrics.FallbackFailure
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		if seed, err := u.GetVideoDetails(ctx, videoID); err == nil && seed != nil {
			title = seed.Title
		}
	}
	if title == "" {
		log.Warn("Related fallback skipped, seed title unknown")
		return u.finish(ctx, primary, true, req.ExcludeShorts), nil
	}

	metrics.FallbacksTotal.WithLabelValues("related", trigger).Inc()
	log.WithField("primaryCount", len(primary.Items)).WithField("trigger", trigger).Info("Falling back to title search")

	secondaryReq := dto.YouTubeSearchRequest{Q: title, Type: "video", MaxResults: maxResults}
	secondary := videoPage("search", u.fetch(ctx, "search", model.CacheCategorySearch, &secondaryReq, func(ctx context.Context) model.FetchOutcome {
		return u.youtubeRepo.Search(ctx, &secondaryReq)
	}))
	if secondary.Status != dto.StatusOK {
		// keep whatever the relation query produced
		return u.finish(ctx, primary, true, req.ExcludeShorts), nil
	}

	items := make([]model.Video, 0, len(secondary.Items))
	for _, v := range secondary.Items {
		if v.ID != videoID {
			items = append(items, v)
		}
	}
	secondary.Items = items
	secondary.Source = dto.SourceTitleSearch
	return u.finish(ctx, secondary, true, req.ExcludeShorts), nil
}

// GetComments lists top level comments of a video
func (u *YouTubeUseCase) GetComments(ctx context.Context, req *dto.YouTubeCommentListRequest) (*dto.YouTubeCommentResponse, error) {
	if req == nil || strings.TrimSpace(req.VideoID) == "" {
		return nil, invalidArgument("video ID is required")
	}
	q := *req
	q.VideoID = strings.TrimSpace(q.VideoID)
	q.MaxResults = u.clampMaxResults(q.MaxResults)
	if q.Order != "" && q.Order != "time" && q.Order != "relevance" {
		return nil, invalidArgument("order must be time or relevance")
	}

	outcome := u.fetch(ctx, "comments", model.CacheCategoryDetails, &q, func(ctx context.Context) model.FetchOutcome {
		return u.youtubeRepo.ListCommentThreads(ctx, &q)
	})
	resp := &dto.YouTubeCommentResponse{Items: []model.Comment{}}
	if !outcome.IsSuccess() {
		resp.Status, resp.Message = degrade(outcome)
		return resp, nil
	}
	items, next, err := decodeComments(outcome.Payload)
	if err != nil {
		resp.Status, resp.Message = malformed("comments", err)
		return resp, nil
	}
	resp.Items, resp.NextPageToken, resp.Status = items, next, dto.StatusOK
	return resp, nil
}

// GetChannelDetails returns one channel, or nil when it does not exist or YouTube is unavailable.
func (u *YouTubeUseCase) GetChannelDetails(ctx context.Context, channelID string) (*model.Channel, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, invalidArgument("channel ID is required")
	}
	resp, err := u.GetChannels(ctx, []string{channelID})
	if err != nil {
		return nil, err
	}
	for i := range resp.Items {
		if resp.Items[i].ID == channelID {
			return &resp.Items[i], nil
		}
	}
	return nil, nil
}

// GetChannels looks up a batch of channels and seeds the channel icon cache
// with every icon it sees.
func (u *YouTubeUseCase) GetChannels(ctx context.Context, ids []string) (*dto.YouTubeChannelResponse, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, invalidArgument("at least one channel ID is required")
	}
	if len(ids) > maxBatchIDs {
		ids = ids[:maxBatchIDs]
	}

	q := dto.YouTubeChannelsRequest{IDs: ids}
	outcome := u.fetch(ctx, "channels", model.CacheCategoryDetails, &q, func(ctx context.Context) model.FetchOutcome {
		return u.youtubeRepo.ListChannels(ctx, &q)
	})
	resp := &dto.YouTubeChannelResponse{Items: []model.Channel{}}
	if !outcome.IsSuccess() {
		resp.Status, resp.Message = degrade(outcome)
		return resp, nil
	}
	items, err := decodeChannels(outcome.Payload)
	if err != nil {
		resp.Status, resp.Message = malformed("channels", err)
		return resp, nil
	}
	for _, c := range items {
		if c.IconURL != "" {
			u.seedChannelIcon(ctx, c.ID, c.IconURL)
		}
	}
	resp.Items, resp.Status = items, dto.StatusOK
	return resp, nil
}

type channelIconKey struct {
	ID string `url:"id"`
}

type channelIconPayload struct {
	IconURL string `json:"iconUrl"`
}

func channelIconCacheKey(channelID string) string {
	key, _ := CacheKey("channel_icon", channelIconKey{ID: channelID})
	return key
}

func (u *YouTubeUseCase) seedChannelIcon(ctx context.Context, channelID, iconURL string) {
	payload, err := json.Marshal(channelIconPayload{IconURL: iconURL})
	if err != nil {
		return
	}
	u.cache.Store(ctx, model.CacheCategoryChannelIcon, channelIconCacheKey(channelID), payload)
}

// GetChannelIcon returns the icon URL of a channel. Icons are kept until
// InvalidateChannelIcon is called; an empty string means unknown.
func (u *YouTubeUseCase) GetChannelIcon(ctx context.Context, channelID string) (string, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return "", invalidArgument("channel ID is required")
	}
	if payload, ok := u.cache.Lookup(ctx, model.CacheCategoryChannelIcon, channelIconCacheKey(channelID)); ok {
		if icon := gjson.GetBytes(payload, "iconUrl").String(); icon != "" {
			return icon, nil
		}
	}
	channel, err := u.GetChannelDetails(ctx, channelID)
	if err != nil || channel == nil {
		return "", err
	}
	return channel.IconURL, nil
}

// InvalidateChannelIcon drops the cached icon so the next lookup refetches it.
func (u *YouTubeUseCase) InvalidateChannelIcon(ctx context.Context, channelID string) error {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return invalidArgument("channel ID is required")
	}
	return u.cache.Invalidate(ctx, model.CacheCategoryChannelIcon, channelIconCacheKey(channelID))
}

// GetChannelVideos lists the latest uploads of a channel
func (u *YouTubeUseCase) GetChannelVideos(ctx context.Context, req *dto.YouTubeChannelVideosRequest) (*dto.YouTubeVideoResponse, error) {
	if req == nil || strings.TrimSpace(req.ChannelID) == "" {
		return nil, invalidArgument("channel ID is required")
	}
	q := *req
	q.ChannelID = strings.TrimSpace(q.ChannelID)
	q.MaxResults = u.clampMaxResults(q.MaxResults)

	outcome := u.fetch(ctx, "channel_videos", model.CacheCategorySearch, &q, func(ctx context.Context) model.FetchOutcome {
		return u.youtubeRepo.ListChannelVideos(ctx, &q)
	})
	return u.finish(ctx, videoPage("channel_videos", outcome), true, q.ExcludeShorts), nil
}

// GetPlaylistItems lists the entries of a playlist
func (u *YouTubeUseCase) GetPlaylistItems(ctx context.Context, req *dto.YouTubePlaylistRequest) (*dto.YouTubePlaylistItemsResponse, error) {
	if req == nil {
		return nil, invalidArgument("playlist ID is required")
	}
	q := *req
	q.PlaylistID = ExtractPlaylistID(q.PlaylistID)
	if q.PlaylistID == "" {
		return nil, invalidArgument("playlist ID is required")
	}
	q.MaxResults = u.clampMaxResults(q.MaxResults)

	outcome := u.fetch(ctx, "playlist_items", model.CacheCategoryDetails, &q, func(ctx context.Context) model.FetchOutcome {
		return u.youtubeRepo.ListPlaylistItems(ctx, &q)
	})
	resp := &dto.YouTubePlaylistItemsResponse{Items: []model.PlaylistItem{}}
	if !outcome.IsSuccess() {
		resp.Status, resp.Message = degrade(outcome)
		return resp, nil
	}
	items, list, err := decodePlaylistItems(outcome.Payload)
	if err != nil {
		resp.Status, resp.Message = malformed("playlist_items", err)
		return resp, nil
	}

	videos := make([]model.Video, len(items))
	for i := range items {
		videos[i] = items[i].Video
	}
	videos = u.enrich(ctx, videos)
	for i := range items {
		items[i].Video = videos[i]
	}
	if q.ExcludeShorts {
		kept := make([]model.PlaylistItem, 0, len(items))
		for _, it := range items {
			if !IsShort(it.Video, u.opts.ShortsMaxSeconds) {
				kept = append(kept, it)
			}
		}
		resp.FilteredShorts = len(items) - len(kept)
		items = kept
	}

	resp.Items = items
	resp.NextPageToken = list.NextPageToken
	resp.TotalResults = list.PageInfo.TotalResults
	resp.Status = dto.StatusOK
	return resp, nil
}

// ResolveStream finds a playable stream URL through the extraction mirrors.
// Absence is reported as Available=false, never as an error.
func (u *YouTubeUseCase) ResolveStream(ctx context.Context, videoID string) (*dto.StreamResponse, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, invalidArgument("video ID is required")
	}
	if u.streams == nil {
		return &dto.StreamResponse{Available: false}, nil
	}
	stream, err := u.streams.ResolveStream(ctx, videoID)
	if err != nil {
		logger.GetLogger().WithField("videoId", videoID).WithField("error", err).Warn("Stream resolution failed")
		return &dto.StreamResponse{Available: false}, nil
	}
	if stream == nil {
		return &dto.StreamResponse{Available: false}, nil
	}
	return &dto.StreamResponse{Available: true, Stream: stream}, nil
}

// Suggest returns autocomplete suggestions; failures yield an empty list.
func (u *YouTubeUseCase) Suggest(ctx context.Context, query string) (*dto.SuggestionResponse, error) {
	query = strings.TrimSpace(query)
	resp := &dto.SuggestionResponse{Query: query, Suggestions: []string{}}
	if query == "" || u.suggester == nil {
		return resp, nil
	}
	suggestions, err := u.suggester.Suggest(ctx, query)
	if err != nil {
		logger.GetLogger().WithField("query", query).WithField("error", err).Warn("Suggestion lookup failed")
		return resp, nil
	}
	if suggestions != nil {
		resp.Suggestions = suggestions
	}
	return resp, nil
}

// Resolve extracts video and playlist ids from a pasted URL or bare id.
func (u *YouTubeUseCase) Resolve(input string) (*dto.ResolveResponse, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, invalidArgument("url is required")
	}
	resp := &dto.ResolveResponse{VideoID: ExtractVideoID(input)}
	switch {
	case strings.Contains(input, "list="):
		resp.PlaylistID = ExtractPlaylistID(input)
	case resp.VideoID == "" && bareVideoID.MatchString(input):
		resp.VideoID = input
	case resp.VideoID == "":
		resp.PlaylistID = ExtractPlaylistID(input)
	}
	if resp.VideoID == "" && resp.PlaylistID == "" {
		return nil, invalidArgument("no video or playlist id found")
	}
	return resp, nil
}
