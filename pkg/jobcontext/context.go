package jobcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyRunID        KeyContext = "run_id"
	keyVideoID      KeyContext = "video_id"
	keyChannel      KeyContext = "channel_handle"
	keyRunStartTime KeyContext = "run_start_time"
)

// DefaultRunTimeout bounds a single video analysis when no timeout is given
const DefaultRunTimeout = 15 * time.Minute

// RunMetadata holds metadata for one video analysis run
type RunMetadata struct {
	RunID         uuid.UUID
	VideoID       string
	ChannelHandle string
	StartTime     time.Time
}

// RunBegin initializes a run context with metadata and timeout.
// A non-positive timeout uses DefaultRunTimeout.
func RunBegin(parentCtx context.Context, runID uuid.UUID, videoID string, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}
	// Create context with timeout to prevent infinite hanging
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyRunID, runID)
	ctx = context.WithValue(ctx, keyVideoID, videoID)
	ctx = context.WithValue(ctx, keyRunStartTime, time.Now())

	return ctx, cancel
}

// WithChannel tags ctx with the channel a run belongs to
func WithChannel(ctx context.Context, handle string) context.Context {
	return context.WithValue(ctx, keyChannel, handle)
}

// GetRunID extracts run ID from context
func GetRunID(ctx context.Context) (uuid.UUID, bool) {
	runID, ok := ctx.Value(keyRunID).(uuid.UUID)
	return runID, ok
}

// GetVideoID extracts video ID from context
func GetVideoID(ctx context.Context) (string, bool) {
	videoID, ok := ctx.Value(keyVideoID).(string)
	return videoID, ok
}

// GetChannel extracts the channel handle from context
func GetChannel(ctx context.Context) (string, bool) {
	handle, ok := ctx.Value(keyChannel).(string)
	return handle, ok
}

// GetRunStartTime extracts run start time from context
func GetRunStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyRunStartTime).(time.Time)
	return startTime, ok
}

// GetRunMetadata extracts all run metadata from context
func GetRunMetadata(ctx context.Context) *RunMetadata {
	runID, _ := GetRunID(ctx)
	videoID, _ := GetVideoID(ctx)
	handle, _ := GetChannel(ctx)
	startTime, _ := GetRunStartTime(ctx)

	return &RunMetadata{
		RunID:         runID,
		VideoID:       videoID,
		ChannelHandle: handle,
		StartTime:     startTime,
	}
}

// IsRetryableError checks if an error should trigger a retry
// Retryable errors include: network errors, timeouts, rate limits, 5xx
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Context errors (timeout, cancelled)
	if strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "context canceled") ||
		strings.Contains(errStr, "client.timeout exceeded") {
		return true
	}

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "eof") {
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429") {
		return true
	}

	// Server errors (5xx)
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}
