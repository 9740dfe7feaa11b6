package sponsorship

import "time"

// SponsorshipResponse is one summarized sponsorship
type SponsorshipResponse struct {
	Start      float64 `json:"start"`
	Stop       float64 `json:"stop"`
	Duration   float64 `json:"duration"`
	Transcript string  `json:"transcript"`
	Summary    string  `json:"summary"`
	ClipURL    string  `json:"clip_url,omitempty"`
}

// VideoReportResponse is the analysis result of one video
type VideoReportResponse struct {
	VideoID         string                `json:"video_id"`
	URL             string                `json:"url"`
	Title           string                `json:"title,omitempty"`
	PublishedAt     *time.Time            `json:"published_at,omitempty"`
	TimeAgo         string                `json:"time_ago,omitempty"`
	Status          string                `json:"status"`
	Sponsorships    []SponsorshipResponse `json:"sponsorships"`
	SegmentCount    int                   `json:"segment_count"`
	SkippedSegments int                   `json:"skipped_segments"`
	Error           string                `json:"error,omitempty"`
	AnalyzedAt      time.Time             `json:"analyzed_at"`
}

// ChannelReportResponse is the analysis result of a channel's recent videos
type ChannelReportResponse struct {
	Handle           string                 `json:"handle"`
	Requested        int                    `json:"requested"`
	SponsorshipCount int                    `json:"sponsorship_count"`
	Videos           []*VideoReportResponse `json:"videos"`
	AnalyzedAt       time.Time              `json:"analyzed_at"`
}

// AnalysisRunResponse is one entry of the run history
type AnalysisRunResponse struct {
	ID               string     `json:"id"`
	VideoID          string     `json:"video_id"`
	ChannelHandle    *string    `json:"channel_handle,omitempty"`
	Status           string     `json:"status"`
	SegmentCount     int        `json:"segment_count"`
	SponsorshipCount int        `json:"sponsorship_count"`
	Error            *string    `json:"error,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	DurationSeconds  float64    `json:"duration_seconds"`
}
