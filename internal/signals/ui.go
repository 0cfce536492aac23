package signals

import (
	"context"

	"github.com/chromedp/chromedp"
)

// UIMarkers is the snapshot returned by one rendered-player probe. Fields
// mirror the JSON bag produced by uiProbeJS.
type UIMarkers struct {
	AdShowing   bool     `json:"adShowing"`
	AdBadge     bool     `json:"adBadge"`
	Sponsored   bool     `json:"sponsored"`
	ImageMarker bool     `json:"imageMarker"`
	SkipButton  bool     `json:"skipButton"`
	AdCountdown bool     `json:"adCountdown"`
	AdOverlay   bool     `json:"adOverlay"`
	BadgeTexts  []string `json:"badgeTexts"`
}

// uiProbeJS queries the live player for visible ad affordances. It must
// never throw: a player that has not finished initializing reads as all
// markers false.
const uiProbeJS = `(() => {
	const player = document.querySelector('.html5-video-player');
	const adShowing = !!(player && player.classList.contains('ad-showing'));

	const badgeTexts = Array.from(document.querySelectorAll('.ytp-ad-badge__text, .ytp-ad-simple-ad-badge'))
		.map(el => (el.textContent || '').trim().toLowerCase());
	const adBadge = badgeTexts.some(t => t === 'ad' || t.includes('ad'));
	let sponsored = badgeTexts.some(t => t.includes('sponsored'));

	if (!sponsored && player) {
		for (const node of player.querySelectorAll('*')) {
			const text = (node.textContent || '').trim().toLowerCase();
			if (text === 'sponsored' || (text.length < 40 && text.includes('sponsored'))) {
				sponsored = true;
				break;
			}
		}
	}

	const imageMarker = !!document.querySelector('.ytp-ad-image, .ytp-ad-image-overlay');
	const skipButton = !!document.querySelector('.ytp-ad-skip-button, .ytp-ad-skip-button-modern');
	const adCountdown = !!document.querySelector(
		'.ytp-ad-preview-container, .ytp-ad-timed-pie-countdown-container, .ytp-ad-duration-remaining');
	const adOverlay = !!document.querySelector('.ytp-ad-overlay-container, .ytp-ad-overlay-slot');

	return {adShowing, adBadge, sponsored, imageMarker, skipButton, adCountdown, adOverlay, badgeTexts};
})()`

// ProbeUI evaluates the marker script in the page attached to ctx. An
// evaluation failure means "no evidence this checkpoint", so callers get
// zero markers plus the error for logging.
func ProbeUI(ctx context.Context) (UIMarkers, error) {
	var m UIMarkers
	if err := chromedp.Run(ctx, chromedp.Evaluate(uiProbeJS, &m)); err != nil {
		return UIMarkers{}, err
	}
	return m, nil
}
