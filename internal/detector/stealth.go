package detector

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// evasionsJS holds the embedded script patching the fingerprint surfaces
// sites commonly probe for automated control.
//
//go:embed evasions.js
var evasionsJS string

// webdriverOverrideJS hides the single most-checked automation signal. It is
// installed even when the wider stealth patch layer is disabled.
const webdriverOverrideJS = `Object.defineProperty(navigator, 'webdriver', { get: () => undefined });`

// installEvasions registers the evasion scripts to run in every new document
// of the browsing context, before any page script executes.
func installEvasions(stealthPatches bool) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if _, err := page.AddScriptToEvaluateOnNewDocument(webdriverOverrideJS).Do(ctx); err != nil {
			return fmt.Errorf("webdriver override: %w", err)
		}
		if !stealthPatches {
			log.Debug().Msg("Stealth patch layer disabled")
			return nil
		}
		if _, err := page.AddScriptToEvaluateOnNewDocument(evasionsJS).Do(ctx); err != nil {
			return fmt.Errorf("stealth patches: %w", err)
		}
		log.Debug().Msg("Stealth patch layer applied")
		return nil
	})
}
