package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReportStatusRunning marks a run whose report is not finished yet
const ReportStatusRunning ReportStatus = "running"

// AnalysisRun is the history record of one video analysis
type AnalysisRun struct {
	ID               uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VideoID          string       `json:"video_id" gorm:"type:varchar(32);not null;index"`
	ChannelHandle    *string      `json:"channel_handle,omitempty" gorm:"type:varchar(255);index"`
	Status           ReportStatus `json:"status" gorm:"type:varchar(50);not null;index;default:'running'"`
	SegmentCount     int          `json:"segment_count" gorm:"type:integer;default:0"`
	SponsorshipCount int          `json:"sponsorship_count" gorm:"type:integer;default:0"`
	Error            *string      `json:"error,omitempty" gorm:"type:text"`

	// Report is the final VideoReport as JSON
	Report datatypes.JSON `json:"report,omitempty" gorm:"type:jsonb;default:'{}'"`

	StartedAt   time.Time  `json:"started_at" gorm:"type:timestamp;not null"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:timestamp"`
}

// NewAnalysisRun creates a running record for a video
func NewAnalysisRun(runID uuid.UUID, videoID, channelHandle string) *AnalysisRun {
	run := &AnalysisRun{
		ID:        runID,
		VideoID:   videoID,
		Status:    ReportStatusRunning,
		Report:    datatypes.JSON("{}"),
		StartedAt: time.Now().UTC(),
	}
	if channelHandle != "" {
		run.ChannelHandle = &channelHandle
	}
	return run
}

// Complete copies the outcome of report into the run
func (r *AnalysisRun) Complete(report *VideoReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	r.Status = report.Status
	r.SegmentCount = report.SegmentCount
	r.SponsorshipCount = len(report.Sponsorships)
	r.Report = datatypes.JSON(raw)
	r.CompletedAt = &now
	if report.Error != "" {
		msg := report.Error
		r.Error = &msg
	}
	return nil
}

// Duration returns how long the run took, or zero while it is running
func (r *AnalysisRun) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// TableName specifies the table name for GORM
func (AnalysisRun) TableName() string {
	return "analysis_runs"
}
