package sponsorblock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/sponsor-digest/pkg/segment"
)

func TestGetSkipSegments_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/skipSegments", r.URL.Path)
		assert.Equal(t, "2e31eEkII8U", r.URL.Query().Get("videoID"))
		assert.Equal(t, `["sponsor","selfpromo"]`, r.URL.Query().Get("categories"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"segment":[10.5,20],"UUID":"a","category":"sponsor","actionType":"skip","votes":4,"videoDuration":600},
			{"segment":[11,25],"UUID":"b","category":"sponsor","actionType":"mute","votes":1,"videoDuration":600}
		]`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL+"/", []string{"sponsor", "selfpromo"}, 5*time.Second)

	segments, err := client.GetSkipSegments(context.Background(), "2e31eEkII8U")
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, ActionSkip, segments[0].ActionType)
	assert.Equal(t, segment.Interval{Start: 10.5, Stop: 20}, segments[0].Interval())
	assert.Equal(t, ActionMute, segments[1].ActionType)
	assert.Equal(t, "b", segments[1].UUID)
}

func TestGetSkipSegments_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Not Found"))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, nil, 5*time.Second)

	_, err := client.GetSkipSegments(context.Background(), "2e31eEkII8U")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSkipSegments_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, nil, 5*time.Second)

	_, err := client.GetSkipSegments(context.Background(), "2e31eEkII8U")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "status 502")
}

func TestNewClient_DefaultCategory(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `["sponsor"]`, r.URL.Query().Get("categories"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	segments, err := NewClient(ts.URL, nil, time.Second).GetSkipSegments(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestGetSkipSegments_DecodesWithoutContentType(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`[{"segment":[5,9],"UUID":"c","category":"sponsor","actionType":"skip"}]`))
	}))
	defer ts.Close()

	segments, err := NewClient(ts.URL, nil, time.Second).GetSkipSegments(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, segment.Interval{Start: 5, Stop: 9}, segments[0].Interval())
}

func TestGetSkipSegments_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not":"a list"`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, nil, time.Second).GetSkipSegments(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
