package googleapi

import (
	"context"
	"fmt"
)

// Video is one search result for the read-side proxy route.
type Video struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
}

// SearchVideos runs a YouTube search and returns up to max video results.
func (s *Services) SearchVideos(ctx context.Context, query string, max int64) ([]Video, error) {
	svc, err := s.youtubeService(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(max).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	out := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		v := Video{}
		if item.Id != nil {
			v.VideoID = item.Id.VideoId
		}
		if item.Snippet != nil {
			v.Title = item.Snippet.Title
			v.ChannelTitle = item.Snippet.ChannelTitle
			v.PublishedAt = item.Snippet.PublishedAt
		}
		out = append(out, v)
	}
	return out, nil
}
