// Package media pulls sponsorship audio out of online videos using yt-dlp
// and ffmpeg.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/johnquangdev/sponsor-digest/pkg/segment"
)

// ErrStreamUnavailable is returned when the video stream cannot be resolved
// or decoded
var ErrStreamUnavailable = errors.New("video stream unavailable")

// CommandRunner runs an external program and returns its stdout and stderr
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run implements CommandRunner
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Extractor resolves a video's audio stream with yt-dlp and trims the
// requested interval with ffmpeg into 16-bit PCM WAV held in memory.
type Extractor struct {
	YtDlpPath   string
	FFmpegPath  string
	CookiesFile string
	SampleRate  int
	Channels    int
	runner      CommandRunner
}

// NewExtractor creates an extractor. A nil runner uses ExecRunner.
func NewExtractor(ytDlpPath, ffmpegPath, cookiesFile string, sampleRate, channels int, runner CommandRunner) *Extractor {
	if ytDlpPath == "" {
		ytDlpPath = "yt-dlp"
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Extractor{
		YtDlpPath:   ytDlpPath,
		FFmpegPath:  ffmpegPath,
		CookiesFile: cookiesFile,
		SampleRate:  sampleRate,
		Channels:    channels,
		runner:      runner,
	}
}

// StreamURL resolves the direct media URL of a video without downloading it
func (e *Extractor) StreamURL(ctx context.Context, videoURL string) (string, error) {
	args := []string{
		"--quiet",
		"--no-warnings",
		"--no-playlist",
		"-f", "bestaudio/best",
		"--get-url",
	}
	if e.CookiesFile != "" {
		args = append(args, "--cookies", e.CookiesFile)
	}
	args = append(args, videoURL)

	stdout, stderr, err := e.runner.Run(ctx, e.YtDlpPath, args...)
	if err != nil {
		return "", fmt.Errorf("%w: yt-dlp: %v: %s", ErrStreamUnavailable, err, strings.TrimSpace(string(stderr)))
	}

	// yt-dlp prints one URL per selected format; the first is the audio.
	for _, line := range strings.Split(string(stdout), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", fmt.Errorf("%w: yt-dlp returned no stream url", ErrStreamUnavailable)
}

// ExtractAudio returns the audio of interval iv as a WAV buffer
func (e *Extractor) ExtractAudio(ctx context.Context, videoURL string, iv segment.Interval) ([]byte, error) {
	if iv.Stop <= iv.Start {
		return nil, fmt.Errorf("extract audio: invalid interval %.3f-%.3f", iv.Start, iv.Stop)
	}

	streamURL, err := e.StreamURL(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	stdout, stderr, err := e.runner.Run(ctx, e.FFmpegPath, e.ffmpegArgs(streamURL, iv)...)
	if err != nil {
		return nil, fmt.Errorf("%w: ffmpeg extract: %v: %s", ErrStreamUnavailable, err, strings.TrimSpace(string(stderr)))
	}
	if len(stdout) == 0 {
		return nil, fmt.Errorf("%w: ffmpeg produced no audio", ErrStreamUnavailable)
	}
	return stdout, nil
}

func (e *Extractor) ffmpegArgs(streamURL string, iv segment.Interval) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", streamURL,
		"-vn",
		"-sn",
		"-dn",
		"-af", fmt.Sprintf("atrim=start=%.3f:end=%.3f,asetpts=PTS-STARTPTS", iv.Start, iv.Stop),
	}
	if e.Channels > 0 {
		args = append(args, "-ac", fmt.Sprintf("%d", e.Channels))
	}
	if e.SampleRate > 0 {
		args = append(args, "-ar", fmt.Sprintf("%d", e.SampleRate))
	}
	return append(args,
		"-c:a", "pcm_s16le",
		"-f", "wav",
		"pipe:1",
	)
}
