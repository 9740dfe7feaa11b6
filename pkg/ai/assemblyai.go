package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/sponsor-digest/pkg/config"
)

// TranscriptStatus is the terminal outcome of a transcription
type TranscriptStatus string

const (
	TranscriptStatusOK    TranscriptStatus = "ok"
	TranscriptStatusError TranscriptStatus = "error"
)

// Transcript is the result of transcribing one audio clip
type Transcript struct {
	ID     string           `json:"id"`
	Status TranscriptStatus `json:"status"`
	Text   string           `json:"text"`
	Error  string           `json:"error,omitempty"`
}

// ErrEmptyAudio is returned when Transcribe is called without audio
var ErrEmptyAudio = errors.New("no audio to transcribe")

const defaultPollInterval = 3 * time.Second

// AssemblyAIClient transcribes in-memory audio with the AssemblyAI SDK
type AssemblyAIClient struct {
	client       *aai.Client
	languageCode string
	pollInterval time.Duration
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var (
		apiKey, baseURL, language string
		timeout                   = 30 * time.Second
		poll                      = defaultPollInterval
	)
	if cfg != nil {
		apiKey = cfg.APIKey
		baseURL = cfg.BaseURL
		language = cfg.LanguageCode
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		if cfg.PollInterval > 0 {
			poll = cfg.PollInterval
		}
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}

	opts := []aai.ClientOption{
		aai.WithAPIKey(apiKey),
		aai.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, aai.WithBaseURL(baseURL))
	}

	return &AssemblyAIClient{
		client:       aai.NewClientWithOptions(opts...),
		languageCode: language,
		pollInterval: poll,
	}
}

// Transcribe uploads audio, submits a transcription job and waits for it to
// finish. A job that AssemblyAI marks as failed is returned as a Transcript
// with StatusError, not as an error; errors mean the service could not be
// reached or the context ended.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio []byte) (*Transcript, error) {
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}

	uploadURL, err := c.client.Upload(ctx, bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("upload audio to assemblyai: %w", err)
	}

	params := &aai.TranscriptOptionalParams{}
	if c.languageCode != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(c.languageCode)
	} else {
		params.LanguageDetection = aai.Bool(true)
	}

	submitted, err := c.client.Transcripts.SubmitFromURL(ctx, uploadURL, params)
	if err != nil {
		return nil, fmt.Errorf("submit transcription: %w", err)
	}
	if submitted.ID == nil {
		return nil, fmt.Errorf("assemblyai returned no transcript id")
	}

	return c.wait(ctx, *submitted.ID)
}

func (c *AssemblyAIClient) wait(ctx context.Context, transcriptID string) (*Transcript, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		transcript, err := c.client.Transcripts.Get(ctx, transcriptID)
		if err != nil {
			return nil, fmt.Errorf("get transcript %s: %w", transcriptID, err)
		}

		switch transcript.Status {
		case aai.TranscriptStatusCompleted:
			return &Transcript{
				ID:     transcriptID,
				Status: TranscriptStatusOK,
				Text:   deref(transcript.Text),
			}, nil
		case aai.TranscriptStatusError:
			msg := deref(transcript.Error)
			if msg == "" {
				msg = "transcription failed"
			}
			return &Transcript{
				ID:     transcriptID,
				Status: TranscriptStatusError,
				Error:  msg,
			}, nil
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
