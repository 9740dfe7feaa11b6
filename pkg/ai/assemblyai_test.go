package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/sponsor-digest/pkg/config"
)

// newAssemblyServer fakes the upload, submit and poll endpoints. finalStatus
// is returned from the second poll onward.
func newAssemblyServer(t *testing.T, finalStatus string, finalBody map[string]interface{}) (*httptest.Server, *int32) {
	t.Helper()
	var polls int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/v2/upload"):
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "RIFFWAVE", string(body))
			json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.assemblyai.test/upload/1"})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/v2/transcript"):
			var payload map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "https://cdn.assemblyai.test/upload/1", payload["audio_url"])
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "transcript-123", "status": "queued"})
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/v2/transcript/transcript-123"):
			if atomic.AddInt32(&polls, 1) == 1 {
				json.NewEncoder(w).Encode(map[string]interface{}{"id": "transcript-123", "status": "processing"})
				return
			}
			body := map[string]interface{}{"id": "transcript-123", "status": finalStatus}
			for k, v := range finalBody {
				body[k] = v
			}
			json.NewEncoder(w).Encode(body)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)
	return ts, &polls
}

func newTestAssemblyClient(url string) *AssemblyAIClient {
	return NewAssemblyAIClient(&config.AssemblyAIConfig{
		APIKey:       "test-key",
		BaseURL:      url,
		Timeout:      5 * time.Second,
		PollInterval: 10 * time.Millisecond,
	})
}

func TestTranscribe_Success(t *testing.T) {
	ts, polls := newAssemblyServer(t, "completed", map[string]interface{}{
		"text": "This video is sponsored by Acme.",
	})

	transcript, err := newTestAssemblyClient(ts.URL).Transcribe(context.Background(), []byte("RIFFWAVE"))
	require.NoError(t, err)

	assert.Equal(t, "transcript-123", transcript.ID)
	assert.Equal(t, TranscriptStatusOK, transcript.Status)
	assert.Equal(t, "This video is sponsored by Acme.", transcript.Text)
	assert.Empty(t, transcript.Error)
	assert.Equal(t, int32(2), atomic.LoadInt32(polls))
}

func TestTranscribe_ServiceReportsError(t *testing.T) {
	ts, _ := newAssemblyServer(t, "error", map[string]interface{}{
		"error": "audio too short",
	})

	transcript, err := newTestAssemblyClient(ts.URL).Transcribe(context.Background(), []byte("RIFFWAVE"))
	require.NoError(t, err)

	assert.Equal(t, TranscriptStatusError, transcript.Status)
	assert.Equal(t, "audio too short", transcript.Error)
	assert.Empty(t, transcript.Text)
}

func TestTranscribe_EmptyAudio(t *testing.T) {
	client := newTestAssemblyClient("http://127.0.0.1:1")

	_, err := client.Transcribe(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyAudio)
}

func TestTranscribe_UploadFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Authentication error, API token missing/invalid"}`))
	}))
	defer ts.Close()

	_, err := newTestAssemblyClient(ts.URL).Transcribe(context.Background(), []byte("RIFFWAVE"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload audio")
}

func TestTranscribe_ContextCanceledWhilePolling(t *testing.T) {
	ts, _ := newAssemblyServer(t, "processing", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestAssemblyClient(ts.URL).Transcribe(ctx, []byte("RIFFWAVE"))
	require.Error(t, err)
}
