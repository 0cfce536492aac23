// Package signals holds the three independent ad-evidence probes: the
// document-structure probe, the outbound-request classifier, and the
// rendered-player probe. Each returns partial evidence, never a verdict.
package signals

import "strings"

// Configuration tokens YouTube embeds in the watch-page player response when
// an ad slot is configured. Matching is substring-based so every quoting
// style ("adTimeOffset":, 'adTimeOffset':, unquoted) is covered.
const (
	adTimeOffsetToken = "adtimeoffset"
	playerAdsToken    = "playerads"
)

// DomMarkers is the outcome of one document-structure probe.
type DomMarkers struct {
	AdTimeOffset bool
	PlayerAds    bool
}

// ProbeDom scans serialized page markup for the known ad-configuration
// tokens, case-insensitively. Empty markup yields no markers. Pure and
// stateless.
func ProbeDom(markup string) DomMarkers {
	if markup == "" {
		return DomMarkers{}
	}
	lower := strings.ToLower(markup)
	return DomMarkers{
		AdTimeOffset: strings.Contains(lower, adTimeOffsetToken),
		PlayerAds:    strings.Contains(lower, playerAdsToken),
	}
}
