package detector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/miavo090821/dissertation/internal/metadata"
	"github.com/miavo090821/dissertation/internal/ratelimit"
	"github.com/miavo090821/dissertation/internal/signals"
	"github.com/miavo090821/dissertation/pkg/models"
)

// State machine timings. The pre-roll poll has a hard iteration ceiling and
// the ad wait a hard total ceiling, so one video's runtime stays bounded no
// matter what the player does.
const (
	settleDelay         = 2 * time.Second
	consentDelay        = 1 * time.Second
	prerollPollCount    = 4
	prerollPollInterval = 2 * time.Second
	playbackSettleDelay = 3 * time.Second
	adWaitMaxChecks     = 10
	adWaitInterval      = 2 * time.Second
	seekSettleDelay     = 2 * time.Second
	interLoadDelay      = 2 * time.Second
	markupTimeout       = 15 * time.Second
)

var seekFractions = []float64{0.25, 0.5, 0.75}

// session holds the mutable per-video state of the detection state machine.
// A fresh session is created for every Detect call; nothing here is shared
// across videos.
type session struct {
	tabCtx   context.Context
	opts     Options
	limiter  *ratelimit.HostLimiter
	videoID  string
	watchURL string

	dom models.DomEvidence
	ui  models.UIEvidence

	netMu   sync.Mutex
	network models.NetworkEvidence

	title   string
	channel string
}

// freeze copies the accumulated evidence into the result. Network evidence
// is copied under the observer lock since CDP events arrive on their own
// goroutine.
func (s *session) freeze(result *models.AdDetectionResult) {
	result.Dom = s.dom
	result.UI = s.ui
	result.Title = s.title
	result.Channel = s.channel
	s.netMu.Lock()
	result.Network = s.network
	s.netMu.Unlock()
}

// run executes the load loop. Per-load failures are absorbed into the load's
// finding record; only caller cancellation aborts the session.
func (s *session) run(parent context.Context) error {
	for load := 1; load <= s.opts.NumLoads; load++ {
		if err := parent.Err(); err != nil {
			return err
		}
		if err := s.runLoad(parent, load); err != nil {
			log.Warn().
				Str("video_id", s.videoID).
				Int("load", load).
				Err(err).
				Msg("Page load failed, evidence from this load is absent")
			s.dom.RecordLoad(models.LoadFinding{Load: load, Error: err.Error()})
		}
		if load < s.opts.NumLoads {
			s.sleep(parent, interLoadDelay)
		}
	}
	return parent.Err()
}

// runLoad walks one page load through the scripted checkpoints: navigate,
// dismiss consent, settle, pre-roll poll, DOM check, and (first load only)
// the forced playback and seek sequence.
func (s *session) runLoad(parent context.Context, load int) error {
	if err := s.limiter.Wait(parent, s.watchURL); err != nil {
		return fmt.Errorf("pacing: %w", err)
	}

	navCtx, cancel := context.WithTimeout(s.tabCtx, s.opts.NavTimeout)
	err := chromedp.Run(navCtx,
		chromedp.Navigate(s.watchURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	cancel()
	if err != nil {
		return fmt.Errorf("navigation: %w", err)
	}

	s.dismissConsent(parent)

	// Let the player finish client-side initialization.
	s.sleep(parent, settleDelay)

	s.pollPreRoll(parent)
	s.domCheck(load)

	if load == 1 {
		s.playAndSeek(parent)
	}
	return nil
}

// pollPreRoll probes the player UI at fixed intervals, stopping early the
// moment the sponsored label shows. Most pre-roll ads render within this
// window.
func (s *session) pollPreRoll(parent context.Context) {
	for poll := 1; poll <= prerollPollCount; poll++ {
		s.checkUIMarkers(fmt.Sprintf("pre-roll %d", poll))
		if s.ui.SponsoredLabelSeen {
			log.Info().Str("video_id", s.videoID).Msg("Pre-roll ad detected")
			return
		}
		if poll < prerollPollCount {
			s.sleep(parent, prerollPollInterval)
		}
	}
}

// domCheck captures the serialized page markup and records this load's DOM
// markers. A capture failure counts as a failed load: the finding carries
// the error and the counters are untouched.
func (s *session) domCheck(load int) {
	var markup string
	captureCtx, cancel := context.WithTimeout(s.tabCtx, markupTimeout)
	err := chromedp.Run(captureCtx, chromedp.OuterHTML("html", &markup, chromedp.ByQuery))
	cancel()
	if err != nil {
		log.Warn().Int("load", load).Err(err).Msg("Markup capture failed")
		s.dom.RecordLoad(models.LoadFinding{Load: load, Error: fmt.Sprintf("markup capture: %v", err)})
		return
	}

	markers := signals.ProbeDom(markup)
	s.dom.RecordLoad(models.LoadFinding{
		Load:         load,
		AdTimeOffset: markers.AdTimeOffset,
		PlayerAds:    markers.PlayerAds,
	})
	log.Debug().
		Int("load", load).
		Bool("ad_time_offset", markers.AdTimeOffset).
		Bool("player_ads", markers.PlayerAds).
		Msg("DOM check complete")

	if s.title == "" {
		if wp, err := metadata.ExtractWatchPage(markup); err == nil {
			s.title = wp.Title
			s.channel = wp.Channel
		}
	}
}

// playAndSeek mutes and starts playback, waits out any ad already playing
// (seeking during ad playback is frequently blocked), then seeks to 25/50/75%
// of the duration to provoke mid-roll insertion, re-probing the UI after
// each step. Every failure in here is non-fatal; evidence gathered earlier
// in the load stays valid.
func (s *session) playAndSeek(parent context.Context) {
	log.Debug().Str("video_id", s.videoID).Msg("Starting playback and seek sequence")

	if err := s.eval(startPlaybackJS); err != nil {
		log.Warn().Err(err).Msg("Playback start failed")
		return
	}
	s.sleep(parent, playbackSettleDelay)
	markers := s.checkUIMarkers("after play")

	if markers.AdShowing {
		log.Info().Str("video_id", s.videoID).Msg("Ad playing, waiting for it to end")
		for i := 0; i < adWaitMaxChecks; i++ {
			s.sleep(parent, adWaitInterval)
			markers = s.checkUIMarkers("ad wait")
			if !markers.AdShowing {
				break
			}
		}
	}

	for _, fraction := range seekFractions {
		checkpoint := fmt.Sprintf("seek %d%%", int(fraction*100))
		if err := s.eval(seekJS(fraction)); err != nil {
			log.Warn().Str("checkpoint", checkpoint).Err(err).Msg("Seek failed")
			continue
		}
		s.sleep(parent, seekSettleDelay)
		s.checkUIMarkers(checkpoint)
	}

	s.sleep(parent, seekSettleDelay)
	s.checkUIMarkers("final")
}

// checkUIMarkers probes the player and merges the snapshot into the sticky
// UI evidence. A probe failure means no evidence this checkpoint, nothing
// more.
func (s *session) checkUIMarkers(checkpoint string) signals.UIMarkers {
	markers, err := signals.ProbeUI(s.tabCtx)
	if err != nil {
		log.Debug().Str("checkpoint", checkpoint).Err(err).Msg("UI probe failed")
		return signals.UIMarkers{}
	}
	newly := mergeUIMarkers(&s.ui, markers, checkpoint)
	if len(newly) > 0 {
		log.Info().
			Str("video_id", s.videoID).
			Str("checkpoint", checkpoint).
			Strs("markers", newly).
			Msg("Ad markers detected")
	}
	return markers
}

const startPlaybackJS = `(() => {
	const video = document.querySelector('video');
	if (!video) return false;
	video.muted = true;
	const p = video.play();
	if (p && p.catch) p.catch(() => {});
	return true;
})()`

func seekJS(fraction float64) string {
	return fmt.Sprintf(`(() => {
	const video = document.querySelector('video');
	if (!video || !video.duration) return false;
	video.currentTime = video.duration * %g;
	return true;
})()`, fraction)
}

// eval runs a page script that reports success as a boolean.
func (s *session) eval(js string) error {
	var ok bool
	return chromedp.Run(s.tabCtx, chromedp.Evaluate(js, &ok))
}

// sleep waits without outliving either the caller or the browsing context.
func (s *session) sleep(parent context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-parent.Done():
	case <-s.tabCtx.Done():
	}
}
