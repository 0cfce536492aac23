// Package videoid normalizes arbitrary YouTube URL forms to the 11-character
// video ID the detection core operates on.
package videoid

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	bareID     = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	urlPattern = regexp.MustCompile(
		`(?:youtube\.com/watch\?(?:[^#]*&)?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/|youtube\.com/live/)([A-Za-z0-9_-]{11})`)
)

// Parse extracts a video ID from a watch/short/embed URL or accepts a bare
// 11-character ID as-is.
func Parse(input string) (string, error) {
	s := strings.TrimSpace(input)
	if bareID.MatchString(s) {
		return s, nil
	}
	if m := urlPattern.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("no video ID found in %q", input)
}

// WatchURL returns the canonical watch-page URL for a video ID.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
