package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/sponsor-digest/internal/domain/entities"
)

const maxListLimit = 100

// AnalysisRepository handles analysis run history
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis run repository
func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// CreateRun inserts a new run
func (r *AnalysisRepository) CreateRun(ctx context.Context, run *entities.AnalysisRun) error {
	if run == nil {
		return errors.New("run cannot be nil")
	}
	return r.db.WithContext(ctx).Create(run).Error
}

// UpdateRun saves all fields of an existing run
func (r *AnalysisRepository) UpdateRun(ctx context.Context, run *entities.AnalysisRun) error {
	if run == nil {
		return errors.New("run cannot be nil")
	}
	return r.db.WithContext(ctx).Save(run).Error
}

// GetRun retrieves a run by ID, returning nil when it does not exist
func (r *AnalysisRepository) GetRun(ctx context.Context, runID uuid.UUID) (*entities.AnalysisRun, error) {
	var run entities.AnalysisRun
	if err := r.db.WithContext(ctx).Where("id = ?", runID).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// ListRecentRuns returns the newest runs first
func (r *AnalysisRepository) ListRecentRuns(ctx context.Context, limit int) ([]entities.AnalysisRun, error) {
	var runs []entities.AnalysisRun
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(clampLimit(limit)).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// ListRunsByVideo returns the newest runs of one video first
func (r *AnalysisRepository) ListRunsByVideo(ctx context.Context, videoID string, limit int) ([]entities.AnalysisRun, error) {
	var runs []entities.AnalysisRun
	if err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("started_at DESC").
		Limit(clampLimit(limit)).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// NoopAnalysisRepository discards runs. It is used when no database is
// configured.
type NoopAnalysisRepository struct{}

func (NoopAnalysisRepository) CreateRun(context.Context, *entities.AnalysisRun) error { return nil }
func (NoopAnalysisRepository) UpdateRun(context.Context, *entities.AnalysisRun) error { return nil }
func (NoopAnalysisRepository) GetRun(context.Context, uuid.UUID) (*entities.AnalysisRun, error) {
	return nil, nil
}
func (NoopAnalysisRepository) ListRecentRuns(context.Context, int) ([]entities.AnalysisRun, error) {
	return []entities.AnalysisRun{}, nil
}
func (NoopAnalysisRepository) ListRunsByVideo(context.Context, string, int) ([]entities.AnalysisRun, error) {
	return []entities.AnalysisRun{}, nil
}
