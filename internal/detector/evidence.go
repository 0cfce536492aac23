package detector

import (
	"github.com/miavo090821/dissertation/internal/signals"
	"github.com/miavo090821/dissertation/pkg/models"
)

// mergeUIMarkers folds one probe snapshot into the sticky UI evidence and
// returns the names of markers seen for the first time. Once set, a marker
// stays set for the rest of the session.
func mergeUIMarkers(ev *models.UIEvidence, m signals.UIMarkers, checkpoint string) []string {
	var newly []string
	mark := func(seen *bool, observed bool, name string) {
		if observed && !*seen {
			*seen = true
			newly = append(newly, name)
		}
	}

	mark(&ev.SponsoredLabelSeen, m.Sponsored, "sponsored_label")
	mark(&ev.AdBadgeSeen, m.AdBadge, "ad_badge")
	mark(&ev.AdImageMarkerSeen, m.ImageMarker, "ad_image")
	mark(&ev.SkipButtonSeen, m.SkipButton, "skip_button")
	mark(&ev.AdCountdownSeen, m.AdCountdown, "ad_countdown")
	mark(&ev.AdOverlaySeen, m.AdOverlay, "ad_overlay")
	mark(&ev.AdModeClassSeen, m.AdShowing, "ad_mode_class")

	if len(newly) > 0 {
		ev.RawMarkerLog = append(ev.RawMarkerLog, models.MarkerObservation{
			Checkpoint:    checkpoint,
			NewlyDetected: newly,
		})
	}
	return newly
}
