package presenter

import (
	"github.com/samber/lo"

	"github.com/johnquangdev/sponsor-digest/internal/adapter/dto/sponsorship"
	"github.com/johnquangdev/sponsor-digest/internal/domain/entities"
)

// ToVideoReportResponse converts a VideoReport entity to its response DTO
func ToVideoReportResponse(r *entities.VideoReport) *sponsorship.VideoReportResponse {
	if r == nil {
		return nil
	}

	return &sponsorship.VideoReportResponse{
		VideoID:         r.VideoID,
		URL:             r.URL,
		Title:           r.Title,
		PublishedAt:     r.PublishedAt,
		TimeAgo:         r.TimeAgo,
		Status:          string(r.Status),
		Sponsorships:    lo.Map(r.Sponsorships, toSponsorshipResponse),
		SegmentCount:    r.SegmentCount,
		SkippedSegments: r.SkippedSegments,
		Error:           r.Error,
		AnalyzedAt:      r.AnalyzedAt,
	}
}

func toSponsorshipResponse(s entities.Sponsorship, _ int) sponsorship.SponsorshipResponse {
	return sponsorship.SponsorshipResponse{
		Start:      s.Start,
		Stop:       s.Stop,
		Duration:   s.Duration(),
		Transcript: s.Transcript,
		Summary:    s.Summary,
		ClipURL:    s.ClipURL,
	}
}

// ToChannelReportResponse converts a ChannelReport entity to its response DTO
func ToChannelReportResponse(r *entities.ChannelReport) *sponsorship.ChannelReportResponse {
	if r == nil {
		return nil
	}

	return &sponsorship.ChannelReportResponse{
		Handle:           r.Handle,
		Requested:        r.Requested,
		SponsorshipCount: r.SponsorshipCount(),
		Videos: lo.Map(r.Videos, func(v *entities.VideoReport, _ int) *sponsorship.VideoReportResponse {
			return ToVideoReportResponse(v)
		}),
		AnalyzedAt: r.AnalyzedAt,
	}
}

// ToAnalysisRunResponse converts one run history entity to a response DTO
func ToAnalysisRunResponse(run *entities.AnalysisRun) *sponsorship.AnalysisRunResponse {
	return &sponsorship.AnalysisRunResponse{
		ID:               run.ID.String(),
		VideoID:          run.VideoID,
		ChannelHandle:    run.ChannelHandle,
		Status:           string(run.Status),
		SegmentCount:     run.SegmentCount,
		SponsorshipCount: run.SponsorshipCount,
		Error:            run.Error,
		StartedAt:        run.StartedAt,
		CompletedAt:      run.CompletedAt,
		DurationSeconds:  run.Duration().Seconds(),
	}
}

// ToAnalysisRunResponses converts run history entities to response DTOs
func ToAnalysisRunResponses(runs []entities.AnalysisRun) []sponsorship.AnalysisRunResponse {
	return lo.Map(runs, func(run entities.AnalysisRun, _ int) sponsorship.AnalysisRunResponse {
		return *ToAnalysisRunResponse(&run)
	})
}
