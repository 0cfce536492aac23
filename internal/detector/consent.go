package detector

import (
	"context"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// consentClickJS clicks the "Accept all" control on the cookie-consent
// banner when one is visible. Returns whether a click happened.
const consentClickJS = `(() => {
	const candidates = Array.from(document.querySelectorAll('button, [role="button"]'));
	const button = candidates.find(b => {
		const label = ((b.getAttribute('aria-label') || '') + ' ' + (b.textContent || '')).toLowerCase();
		return label.includes('accept all') ||
			label.includes('accept the use of cookies');
	});
	if (!button) return false;
	button.click();
	return true;
})()`

// dismissConsent is best-effort: the banner only renders on some
// geographies and sessions, and failing to click it never aborts a load.
func (s *session) dismissConsent(parent context.Context) {
	s.sleep(parent, consentDelay)

	clickCtx, cancel := context.WithTimeout(s.tabCtx, consentDelay)
	defer cancel()

	var clicked bool
	if err := chromedp.Run(clickCtx, chromedp.Evaluate(consentClickJS, &clicked)); err != nil {
		log.Debug().Err(err).Msg("Consent handling failed")
		return
	}
	if clicked {
		log.Info().Str("video_id", s.videoID).Msg("Dismissed consent banner")
		s.sleep(parent, consentDelay)
	}
}
