package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "https://www.youtube.com/watch?v=2e31eEkII8U", want: "2e31eEkII8U"},
		{in: "https://youtube.com/watch?feature=share&v=2e31eEkII8U&t=10", want: "2e31eEkII8U"},
		{in: "https://m.youtube.com/watch?v=2e31eEkII8U", want: "2e31eEkII8U"},
		{in: "youtube.com/watch?v=2e31eEkII8U", want: "2e31eEkII8U"},
		{in: "https://youtu.be/2e31eEkII8U?si=abc", want: "2e31eEkII8U"},
		{in: "https://www.youtube.com/shorts/2e31eEkII8U", want: "2e31eEkII8U"},
		{in: "https://www.youtube.com/embed/2e31eEkII8U", want: "2e31eEkII8U"},
		{in: "https://www.youtube.com/live/2e31eEkII8U?feature=shared", want: "2e31eEkII8U"},
		{in: "  2e31eEkII8U  ", want: "2e31eEkII8U"},
		{in: "", wantErr: true},
		{in: "https://vimeo.com/12345678901", wantErr: true},
		{in: "https://www.youtube.com/watch?v=short", wantErr: true},
		{in: "https://www.youtube.com/@Insider", wantErr: true},
		{in: "not a url at all", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVideoID(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidVideoURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=2e31eEkII8U", WatchURL("2e31eEkII8U"))
	assert.Equal(t, WatchURL("abc"), Video{ID: "abc"}.URL())
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewClient(context.Background(), "test-key", option.WithEndpoint(ts.URL+"/"))
	require.NoError(t, err)
	return client
}

func TestListRecentVideos_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/channels"):
			assert.Equal(t, "@Insider", r.URL.Query().Get("forHandle"))
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"items": []interface{}{
					map[string]interface{}{
						"id": "UC123",
						"contentDetails": map[string]interface{}{
							"relatedPlaylists": map[string]string{"uploads": "UU123"},
						},
					},
				},
			})
		case strings.HasSuffix(r.URL.Path, "/playlistItems"):
			assert.Equal(t, "UU123", r.URL.Query().Get("playlistId"))
			assert.Equal(t, "2", r.URL.Query().Get("maxResults"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"items": []interface{}{
					map[string]interface{}{"snippet": map[string]interface{}{
						"title":       "Newest",
						"publishedAt": "2024-05-02T10:00:00Z",
						"resourceId":  map[string]string{"videoId": "aaaaaaaaaaa"},
					}},
					map[string]interface{}{"snippet": map[string]interface{}{
						"title":       "Older",
						"publishedAt": "2024-05-01T10:00:00Z",
						"resourceId":  map[string]string{"videoId": "bbbbbbbbbbb"},
					}},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	videos, err := client.ListRecentVideos(context.Background(), "@Insider", 2)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "aaaaaaaaaaa", videos[0].ID)
	assert.Equal(t, "Newest", videos[0].Title)
	assert.Equal(t, time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC), videos[0].PublishedAt.UTC())
	assert.Equal(t, "bbbbbbbbbbb", videos[1].ID)
}

func TestListRecentVideos_UnknownHandle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[]}`))
	})

	_, err := client.ListRecentVideos(context.Background(), "nobody", 3)
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestListRecentVideos_InvalidCount(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.ListRecentVideos(context.Background(), "Insider", 0)
	assert.ErrorIs(t, err, ErrInvalidVideoCount)

	_, err = client.ListRecentVideos(context.Background(), "Insider", -1)
	assert.ErrorIs(t, err, ErrInvalidVideoCount)
	assert.False(t, called, "api must not be called for an invalid count")
}

func TestListRecentVideos_EmptyHandle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("api must not be called for an empty handle")
	})

	_, err := client.ListRecentVideos(context.Background(), "   ", 3)
	assert.ErrorIs(t, err, ErrChannelNotFound)
}
