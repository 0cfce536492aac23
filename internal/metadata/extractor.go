// Package metadata extracts watch-page metadata from markup already captured
// during a detection load, so no extra navigation is spent on it.
package metadata

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// WatchPage is the metadata recorded alongside a detection result.
type WatchPage struct {
	Title   string
	Channel string
}

// ExtractWatchPage pulls title and channel name out of serialized watch-page
// markup. Missing fields stay empty; only a markup parse failure errors.
func ExtractWatchPage(markup string) (WatchPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return WatchPage{}, err
	}

	var wp WatchPage

	if content, ok := doc.Find(`meta[name="title"]`).Attr("content"); ok && content != "" {
		wp.Title = content
	}
	if wp.Title == "" {
		if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
			wp.Title = content
		}
	}
	if wp.Title == "" {
		wp.Title = strings.TrimSuffix(strings.TrimSpace(doc.Find("title").First().Text()), " - YouTube")
	}

	if content, ok := doc.Find(`link[itemprop="name"]`).Attr("content"); ok {
		wp.Channel = content
	}
	if wp.Channel == "" {
		wp.Channel = strings.TrimSpace(doc.Find(`ytd-channel-name a, a.yt-simple-endpoint.style-scope.yt-formatted-string`).First().Text())
	}

	return wp, nil
}
