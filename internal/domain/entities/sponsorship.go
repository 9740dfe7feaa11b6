package entities

import (
	"time"

	"github.com/johnquangdev/sponsor-digest/pkg/segment"
)

// ReportStatus is the outcome of analyzing one video
type ReportStatus string

const (
	ReportStatusCompleted   ReportStatus = "completed"   // Every sponsorship was summarized
	ReportStatusNoSegments  ReportStatus = "no_segments" // No sponsorship data for the video
	ReportStatusPartial     ReportStatus = "partial"     // Some segments were skipped after transcription failures
	ReportStatusUnavailable ReportStatus = "unavailable" // Video stream could not be read
	ReportStatusFailed      ReportStatus = "failed"      // Run aborted
)

// Sponsorship is one reconciled sponsorship segment with its transcript and
// summary
type Sponsorship struct {
	Start      float64 `json:"start"`
	Stop       float64 `json:"stop"`
	Transcript string  `json:"transcript"`
	Summary    string  `json:"summary"`
	ClipObject string  `json:"clip_object,omitempty"`
	ClipURL    string  `json:"clip_url,omitempty"`
}

// NewSponsorship creates a sponsorship for a reconciled interval
func NewSponsorship(iv segment.Interval) Sponsorship {
	return Sponsorship{Start: iv.Start, Stop: iv.Stop}
}

// Interval returns the time span of the sponsorship
func (s Sponsorship) Interval() segment.Interval {
	return segment.Interval{Start: s.Start, Stop: s.Stop}
}

// Duration returns the sponsorship length in seconds
func (s Sponsorship) Duration() float64 {
	return s.Interval().Duration()
}

// VideoReport is the result of analyzing one video
type VideoReport struct {
	VideoID         string        `json:"video_id"`
	URL             string        `json:"url"`
	Title           string        `json:"title,omitempty"`
	PublishedAt     *time.Time    `json:"published_at,omitempty"`
	TimeAgo         string        `json:"time_ago,omitempty"`
	Status          ReportStatus  `json:"status"`
	Sponsorships    []Sponsorship `json:"sponsorships"`
	SegmentCount    int           `json:"segment_count"`
	SkippedSegments int           `json:"skipped_segments"`
	Error           string        `json:"error,omitempty"`
	AnalyzedAt      time.Time     `json:"analyzed_at"`
}

// NewVideoReport creates an empty report for a video
func NewVideoReport(videoID, url string) *VideoReport {
	return &VideoReport{
		VideoID:      videoID,
		URL:          url,
		Status:       ReportStatusNoSegments,
		Sponsorships: []Sponsorship{},
		AnalyzedAt:   time.Now().UTC(),
	}
}

// MarkUnavailable drops any partial results; an unreadable stream reports
// no sponsorships at all
func (r *VideoReport) MarkUnavailable(errMsg string) {
	r.Status = ReportStatusUnavailable
	r.Sponsorships = []Sponsorship{}
	r.Error = errMsg
}

// MarkFailed marks the report as aborted
func (r *VideoReport) MarkFailed(errMsg string) {
	r.Status = ReportStatusFailed
	r.Error = errMsg
}

// Finalize derives the status from the collected sponsorships
func (r *VideoReport) Finalize() {
	switch {
	case r.Status == ReportStatusUnavailable || r.Status == ReportStatusFailed:
	case r.SkippedSegments > 0:
		r.Status = ReportStatusPartial
	case r.SegmentCount == 0:
		r.Status = ReportStatusNoSegments
	default:
		r.Status = ReportStatusCompleted
	}
}

// ChannelReport aggregates the reports of a channel's recent videos, newest
// first
type ChannelReport struct {
	Handle     string         `json:"handle"`
	Requested  int            `json:"requested"`
	Videos     []*VideoReport `json:"videos"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
}

// SponsorshipCount returns the number of sponsorships across all videos
func (c *ChannelReport) SponsorshipCount() int {
	n := 0
	for _, v := range c.Videos {
		n += len(v.Sponsorships)
	}
	return n
}
