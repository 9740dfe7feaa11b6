package presenter

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/sponsor-digest/internal/domain/entities"
)

func TestToVideoReportResponse(t *testing.T) {
	assert.Nil(t, ToVideoReportResponse(nil))

	report := entities.NewVideoReport("2e31eEkII8U", "https://www.youtube.com/watch?v=2e31eEkII8U")
	report.SegmentCount = 1
	report.Sponsorships = []entities.Sponsorship{{Start: 10, Stop: 40, Transcript: "t", Summary: "s", ClipURL: "https://c"}}
	report.Finalize()

	resp := ToVideoReportResponse(report)
	require.NotNil(t, resp)
	assert.Equal(t, "completed", resp.Status)
	require.Len(t, resp.Sponsorships, 1)
	assert.Equal(t, 30.0, resp.Sponsorships[0].Duration)
	assert.Equal(t, "https://c", resp.Sponsorships[0].ClipURL)
}

func TestToVideoReportResponse_EmptySponsorshipsIsNotNull(t *testing.T) {
	resp := ToVideoReportResponse(entities.NewVideoReport("v", "u"))
	assert.NotNil(t, resp.Sponsorships)
	assert.Empty(t, resp.Sponsorships)
}

func TestToChannelReportResponse(t *testing.T) {
	channel := &entities.ChannelReport{
		Handle:    "@Insider",
		Requested: 2,
		Videos: []*entities.VideoReport{
			{VideoID: "a", Sponsorships: []entities.Sponsorship{{Start: 1, Stop: 2}}},
			{VideoID: "b", Sponsorships: []entities.Sponsorship{}},
		},
	}

	resp := ToChannelReportResponse(channel)
	assert.Equal(t, 1, resp.SponsorshipCount)
	require.Len(t, resp.Videos, 2)
	assert.Equal(t, "b", resp.Videos[1].VideoID)
}

func TestToAnalysisRunResponses(t *testing.T) {
	started := time.Now().Add(-time.Minute)
	completed := started.Add(30 * time.Second)
	runs := []entities.AnalysisRun{{
		ID:          uuid.New(),
		VideoID:     "a",
		Status:      entities.ReportStatusCompleted,
		StartedAt:   started,
		CompletedAt: &completed,
	}}

	resp := ToAnalysisRunResponses(runs)
	require.Len(t, resp, 1)
	assert.Equal(t, "completed", resp[0].Status)
	assert.Equal(t, 30.0, resp[0].DurationSeconds)
}

func TestToAnalysisRunResponse_Running(t *testing.T) {
	id := uuid.New()
	handle := "@c"
	run := &entities.AnalysisRun{ID: id, VideoID: "a", ChannelHandle: &handle, Status: entities.ReportStatusRunning}

	resp := ToAnalysisRunResponse(run)
	assert.Equal(t, id.String(), resp.ID)
	require.NotNil(t, resp.ChannelHandle)
	assert.Equal(t, "@c", *resp.ChannelHandle)
	assert.Equal(t, "running", resp.Status)
	assert.Nil(t, resp.CompletedAt)
	assert.Zero(t, resp.DurationSeconds)
}
