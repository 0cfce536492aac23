package signals

import "strings"

// URLMatch is the classification of one outbound request URL. The category
// flags are itemized regardless of which pattern matched first so diagnostic
// fields are always populated; MatchedPattern names the first hit.
type URLMatch struct {
	IsAdRelated         bool
	AdBreak             bool
	Pagead              bool
	ThirdPartyAdNetwork bool
	AdUnitParam         bool
	ViewabilityTracker  bool
	MatchedPattern      string
}

type urlPattern struct {
	name       string
	substrings []string
	mark       func(*URLMatch)
}

// adURLPatterns is the fixed, ordered classification table. It is built once
// at init and never mutated, so it is safe to share across sessions.
// Order matters: the ad-break query marker is the most specific signal and
// must win MatchedPattern over the broader ad-serving hosts.
var adURLPatterns = []urlPattern{
	{
		name:       "ad_break",
		substrings: []string{"ad_break"},
		mark:       func(m *URLMatch) { m.AdBreak = true },
	},
	{
		name:       "pagead",
		substrings: []string{"/pagead/", "pagead2.googlesyndication.com"},
		mark:       func(m *URLMatch) { m.Pagead = true },
	},
	{
		name: "ad_network",
		substrings: []string{
			"doubleclick.net",
			"googleadservices.com",
			"googlesyndication.com",
			"imasdk.googleapis.com",
		},
		mark: func(m *URLMatch) { m.ThirdPartyAdNetwork = true },
	},
	{
		name:       "ad_unit",
		substrings: []string{"adunit=", "ad_type=", "adurl="},
		mark:       func(m *URLMatch) { m.AdUnitParam = true },
	},
	{
		name:       "viewability",
		substrings: []string{"activeview", "viewability"},
		mark:       func(m *URLMatch) { m.ViewabilityTracker = true },
	},
}

// ClassifyRequestURL tests a request URL against the pattern table,
// case-insensitively. Pure and stateless.
func ClassifyRequestURL(rawURL string) URLMatch {
	var match URLMatch
	lower := strings.ToLower(rawURL)
	for _, p := range adURLPatterns {
		if !containsAny(lower, p.substrings) {
			continue
		}
		p.mark(&match)
		match.IsAdRelated = true
		if match.MatchedPattern == "" {
			match.MatchedPattern = p.name
		}
	}
	return match
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
