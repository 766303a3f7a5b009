package usecase_test

import (
	"testing"

	"satorii/domain/model"
	"satorii/usecase"

	"github.com/stretchr/testify/assert"
)

func seconds(n int) *int { return &n }

// liveBroadcast builds a video the way a P0D contentDetails entry decodes.
func liveBroadcast(th model.Thumbnails) model.Video {
	v := model.Video{Title: "Live now", Thumbnails: th}
	if d, ok := usecase.ParseISODuration("P0D"); ok {
		v.DurationSeconds = &d
	}
	return v
}

func TestIsShort(t *testing.T) {
	landscape := model.Thumbnails{High: &model.Thumbnail{URL: "h", Width: 480, Height: 360}}
	square := model.Thumbnails{High: &model.Thumbnail{URL: "h", Width: 360, Height: 360}}

	tests := []struct {
		name  string
		video model.Video
		want  bool
	}{
		{
			name:  "hashtag in title with long duration",
			video: model.Video{Title: "My trip #shorts", DurationSeconds: seconds(900), Thumbnails: landscape},
			want:  true,
		},
		{
			name:  "singular hashtag in description",
			video: model.Video{Title: "trip", Description: "watch more #SHORT", Thumbnails: landscape},
			want:  true,
		},
		{
			name:  "vertical thumbnail with unknown duration",
			video: model.Video{Title: "trip", Thumbnails: model.Thumbnails{Default: &model.Thumbnail{Width: 180, Height: 320}}},
			want:  true,
		},
		{
			name:  "45 seconds with square thumbnail",
			video: model.Video{Title: "trip", DurationSeconds: seconds(45), Thumbnails: square},
			want:  true,
		},
		{
			name:  "exactly at the ceiling",
			video: model.Video{Title: "trip", DurationSeconds: seconds(60), Thumbnails: landscape},
			want:  true,
		},
		{
			name:  "unknown duration without other signals",
			video: model.Video{Title: "trip", Thumbnails: landscape},
			want:  false,
		},
		{
			name:  "live broadcast reporting P0D",
			video: liveBroadcast(landscape),
			want:  false,
		},
		{
			name:  "600 seconds landscape",
			video: model.Video{Title: "trip", DurationSeconds: seconds(600), Thumbnails: landscape},
			want:  false,
		},
		{
			name:  "hashtag needs a word boundary",
			video: model.Video{Title: "#shortstack pancakes", DurationSeconds: seconds(600), Thumbnails: landscape},
			want:  false,
		},
		{
			name: "best thumbnail decides the aspect",
			video: model.Video{Title: "trip", DurationSeconds: seconds(600), Thumbnails: model.Thumbnails{
				Default: &model.Thumbnail{Width: 90, Height: 160},
				Maxres:  &model.Thumbnail{Width: 1280, Height: 720},
			}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.IsShort(tt.video, 60))
			// pure: same answer twice
			assert.Equal(t, tt.want, usecase.IsShort(tt.video, 60))
		})
	}
}

func TestFilterOutShorts(t *testing.T) {
	items := []model.Video{
		{ID: "a", Title: "long", DurationSeconds: seconds(600)},
		{ID: "b", Title: "clip #shorts"},
		{ID: "c", Title: "unknown"},
		{ID: "d", Title: "tiny", DurationSeconds: seconds(12)},
	}

	kept, dropped := usecase.FilterOutShorts(items, 60)

	assert.Equal(t, 2, dropped)
	assert.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].ID)
	assert.Equal(t, "c", kept[1].ID)
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"PT45S", 45, true},
		{"PT1M", 60, true},
		{"PT1H2M3S", 3723, true},
		{"P1DT1S", 86401, true},
		{"PT0S", 0, true},
		{"", 0, false},
		{"PT", 0, false},
		{"P", 0, false},
		{"45", 0, false},
		{"PT1.5S", 0, false},
		{"P0D", 0, false},
		{"P1D", 0, false},
	}
	for _, tt := range tests {
		got, ok := usecase.ParseISODuration(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
