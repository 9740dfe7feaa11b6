package entities

import "errors"

// Domain errors
var (
	// Input errors
	ErrInvalidVideoURL      = errors.New("invalid youtube video url")
	ErrInvalidChannelHandle = errors.New("channel handle is required")
	ErrInvalidVideoCount    = errors.New("number of videos must be at least 1")

	// Lookup errors
	ErrChannelNotFound = errors.New("channel not found")
	ErrReportNotFound  = errors.New("report not found")
	ErrRunNotFound     = errors.New("analysis run not found")

	// Pipeline errors
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrSummaryFailed       = errors.New("summary generation failed")
)
