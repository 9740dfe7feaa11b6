package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// maxPageSize is the largest maxResults the Data API accepts
const maxPageSize = 50

var (
	// ErrChannelNotFound is returned when a handle resolves to no channel
	ErrChannelNotFound = errors.New("youtube channel not found")
	// ErrInvalidVideoCount is returned for a requested video count below 1
	ErrInvalidVideoCount = errors.New("number of videos must be at least 1")
)

// Video is a single upload of a channel
type Video struct {
	ID          string
	Title       string
	PublishedAt time.Time
}

// URL returns the watch URL of the video
func (v Video) URL() string {
	return WatchURL(v.ID)
}

// Client looks up channel uploads through the YouTube Data API v3
type Client struct {
	svc *ytapi.Service
}

// NewClient creates a Data API client authenticated with apiKey. Extra
// options (endpoint, HTTP client) are applied after the key.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := ytapi.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ListRecentVideos returns up to count of the channel's most recent uploads,
// newest first. The handle may be given with or without the leading "@".
func (c *Client) ListRecentVideos(ctx context.Context, handle string, count int) ([]Video, error) {
	if count < 1 {
		return nil, ErrInvalidVideoCount
	}
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, ErrChannelNotFound
	}
	if count > maxPageSize {
		count = maxPageSize
	}

	channels, err := c.svc.Channels.List([]string{"contentDetails"}).
		ForHandle(handle).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube channels.list: %w", err)
	}
	if len(channels.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, handle)
	}
	details := channels.Items[0].ContentDetails
	if details == nil || details.RelatedPlaylists == nil || details.RelatedPlaylists.Uploads == "" {
		return nil, fmt.Errorf("%w: %s has no uploads playlist", ErrChannelNotFound, handle)
	}

	items, err := c.svc.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(details.RelatedPlaylists.Uploads).
		MaxResults(int64(count)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube playlistItems.list: %w", err)
	}

	videos := make([]Video, 0, len(items.Items))
	for _, item := range items.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil || item.Snippet.ResourceId.VideoId == "" {
			continue
		}
		// Unparseable timestamps leave PublishedAt zero.
		published, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		videos = append(videos, Video{
			ID:          item.Snippet.ResourceId.VideoId,
			Title:       item.Snippet.Title,
			PublishedAt: published,
		})
	}
	return videos, nil
}
