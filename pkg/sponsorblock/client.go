// Package sponsorblock is a minimal client for the SponsorBlock segment API.
package sponsorblock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/johnquangdev/sponsor-digest/pkg/segment"
)

// DefaultBaseURL is the public SponsorBlock instance
const DefaultBaseURL = "https://sponsor.ajay.app"

// ErrNotFound is returned when SponsorBlock has no segments for a video
var ErrNotFound = errors.New("no sponsorblock segments found")

// ActionType tells a player what to do with a segment
type ActionType string

const (
	ActionSkip    ActionType = "skip"
	ActionMute    ActionType = "mute"
	ActionFull    ActionType = "full"
	ActionPOI     ActionType = "poi"
	ActionChapter ActionType = "chapter"
)

// Segment is one community-submitted segment
type Segment struct {
	UUID          string     `json:"UUID"`
	Category      string     `json:"category"`
	ActionType    ActionType `json:"actionType"`
	Segment       [2]float64 `json:"segment"`
	Votes         int        `json:"votes"`
	Locked        int        `json:"locked"`
	VideoDuration float64    `json:"videoDuration"`
}

// Interval converts the segment to a reconcilable interval
func (s Segment) Interval() segment.Interval {
	return segment.Interval{Start: s.Segment[0], Stop: s.Segment[1]}
}

// Client fetches skip segments
type Client struct {
	restyClient *resty.Client
	categories  []string
}

// NewClient creates a client against baseURL. Empty categories default to
// "sponsor".
func NewClient(baseURL string, categories []string, timeout time.Duration) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if len(categories) == 0 {
		categories = []string{"sponsor"}
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Accept", "application/json")
	client.SetTimeout(timeout)
	client.SetDisableWarn(true)

	return &Client{
		restyClient: client,
		categories:  categories,
	}
}

// GetSkipSegments returns the segments submitted for a video, in the order
// SponsorBlock reports them.
func (c *Client) GetSkipSegments(ctx context.Context, videoID string) ([]Segment, error) {
	categories, err := json.Marshal(c.categories)
	if err != nil {
		return nil, err
	}

	res, err := c.restyClient.R().
		SetContext(ctx).
		SetResult(&[]Segment{}).
		ForceContentType("application/json").
		SetQueryParam("videoID", videoID).
		SetQueryParam("categories", string(categories)).
		Get("/api/skipSegments")
	if err != nil {
		return nil, fmt.Errorf("sponsorblock request: %w", err)
	}

	switch {
	case res.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%w: video %s", ErrNotFound, videoID)
	case res.IsError():
		return nil, fmt.Errorf("sponsorblock returned status %d", res.StatusCode())
	}

	return *res.Result().(*[]Segment), nil
}
