package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/sponsor-digest/internal/domain/entities"
)

// ReportCache stores finished video reports by video ID
type ReportCache interface {
	// Get returns the cached report; found is false on a miss
	Get(ctx context.Context, videoID string) (report *entities.VideoReport, found bool, err error)
	Set(ctx context.Context, report *entities.VideoReport, ttl time.Duration) error
	Delete(ctx context.Context, videoID string) error
}

// AnalysisRepository defines persistence operations for the run history
type AnalysisRepository interface {
	CreateRun(ctx context.Context, run *entities.AnalysisRun) error
	UpdateRun(ctx context.Context, run *entities.AnalysisRun) error
	GetRun(ctx context.Context, runID uuid.UUID) (*entities.AnalysisRun, error)
	ListRecentRuns(ctx context.Context, limit int) ([]entities.AnalysisRun, error)
	ListRunsByVideo(ctx context.Context, videoID string, limit int) ([]entities.AnalysisRun, error)
}
