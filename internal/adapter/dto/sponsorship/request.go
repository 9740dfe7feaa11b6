package sponsorship

// AnalyzeVideoRequest represents the request to analyze one video. Refresh
// discards a cached report first.
type AnalyzeVideoRequest struct {
	URL     string `json:"url" validate:"required,youtube_url"`
	Refresh bool   `json:"refresh,omitempty"`
}

// AnalyzeChannelRequest represents the request to analyze a channel's most
// recent uploads. Count defaults to the configured value when omitted.
type AnalyzeChannelRequest struct {
	Handle string `json:"handle" validate:"required,channel_handle"`
	Count  *int   `json:"count,omitempty" validate:"omitempty,min=1,max=50"`
}

// ListRunsRequest represents query parameters for the run history
type ListRunsRequest struct {
	VideoID string `query:"video_id"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=100"`
}
