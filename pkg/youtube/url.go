package youtube

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidVideoURL is returned when no video ID can be found in the input
var ErrInvalidVideoURL = errors.New("invalid youtube video url")

var videoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseVideoID extracts the 11-character video ID from a watch, youtu.be,
// shorts, embed or live URL. A bare video ID is accepted as is.
func ParseVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidVideoURL
	}
	if videoIDRE.MatchString(raw) {
		return raw, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidVideoURL, err)
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	host = strings.TrimPrefix(host, "music.")

	var id string
	switch host {
	case "youtu.be":
		id = firstPathSegment(u.Path)
	case "youtube.com", "youtube-nocookie.com":
		if u.Path == "/watch" {
			id = u.Query().Get("v")
			break
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id = firstPathSegment(strings.TrimPrefix(u.Path, prefix))
				break
			}
		}
	default:
		return "", fmt.Errorf("%w: unsupported host %q", ErrInvalidVideoURL, u.Hostname())
	}

	if !videoIDRE.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoURL, raw)
	}
	return id, nil
}

// WatchURL returns the canonical watch URL for a video ID
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func firstPathSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return p
}
