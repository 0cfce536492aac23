// Package verdict collapses accumulated evidence into a single verdict.
package verdict

import "github.com/miavo090821/dissertation/pkg/models"

// Determine maps evidence to (verdict, decisive method, confidence) via a
// fixed priority cascade, first match wins:
//
//  1. sponsored label seen        -> ad delivered, high confidence
//  2. network ad-break observed   -> ad delivered, high confidence
//  3. any other player marker     -> ad delivered, medium confidence
//  4. DOM configuration markers   -> ad delivered, medium confidence
//  5. nothing                     -> no ad, medium confidence
//
// The sponsored label renders only while an ad unit is on screen, making it
// the lowest-false-positive signal; the ad-break request is tied to an
// actual ad-serving call. The remaining markers can reflect ad capability
// without delivery, hence medium confidence. Absence of evidence resolves to
// a medium-confidence negative, never "unknown".
func Determine(dom models.DomEvidence, nw models.NetworkEvidence, ui models.UIEvidence) (bool, models.DetectionMethod, models.Confidence) {
	switch {
	case ui.SponsoredLabelSeen:
		return true, models.MethodUI, models.ConfidenceHigh
	case nw.AdBreakObserved:
		return true, models.MethodNetwork, models.ConfidenceHigh
	case ui.AnyMarker():
		return true, models.MethodUI, models.ConfidenceMedium
	case dom.HasAds():
		return true, models.MethodDOM, models.ConfidenceMedium
	default:
		return false, models.MethodNone, models.ConfidenceMedium
	}
}
