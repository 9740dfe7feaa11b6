package sponsorship

import (
	"context"
	"time"

	"github.com/johnquangdev/sponsor-digest/pkg/ai"
	"github.com/johnquangdev/sponsor-digest/pkg/segment"
	"github.com/johnquangdev/sponsor-digest/pkg/sponsorblock"
	"github.com/johnquangdev/sponsor-digest/pkg/youtube"
)

// SegmentSource returns community-submitted segments for a video. It returns
// an error matching sponsorblock.ErrNotFound when the video has none.
type SegmentSource interface {
	GetSkipSegments(ctx context.Context, videoID string) ([]sponsorblock.Segment, error)
}

// AudioExtractor returns WAV audio for one interval of a video
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoURL string, iv segment.Interval) ([]byte, error)
}

// Transcriber turns audio into text
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (*ai.Transcript, error)
}

// Summarizer completes a prompt
type Summarizer interface {
	GenerateSummary(ctx context.Context, prompt string) (string, error)
}

// VideoLister lists the most recent uploads of a channel
type VideoLister interface {
	ListRecentVideos(ctx context.Context, handle string, count int) ([]youtube.Video, error)
}

// ClipArchive stores extracted audio clips
type ClipArchive interface {
	UploadClip(ctx context.Context, videoID string, iv segment.Interval, wav []byte) (string, error)
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}
