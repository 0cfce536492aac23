// Package detector drives a real browser through watch pages and decides
// whether the platform actually delivered an advertisement, as opposed to
// merely carrying ad infrastructure. One browser process serves a whole
// batch; every video gets its own isolated incognito context.
package detector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/miavo090821/dissertation/internal/ratelimit"
	"github.com/miavo090821/dissertation/internal/retry"
	"github.com/miavo090821/dissertation/internal/signals"
	"github.com/miavo090821/dissertation/internal/verdict"
	"github.com/miavo090821/dissertation/internal/videoid"
	"github.com/miavo090821/dissertation/pkg/models"
)

// Options configures the session driver.
type Options struct {
	Headless         bool
	NumLoads         int
	StealthPatches   bool
	UseChromeChannel bool
	ChromePath       string
	UserAgent        string
	Proxy            string
	NavTimeout       time.Duration
	LoadRateRPS      float64
	LoadRateBurst    int
}

// Detector owns one long-lived browser process for the lifetime of a batch
// run. Setup launches it, Cleanup tears it down; Detect runs the per-video
// detection state machine inside a fresh browsing context.
type Detector struct {
	opts    Options
	limiter *ratelimit.HostLimiter

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// New creates a Detector. Zero-value option fields get defaults.
func New(opts Options) *Detector {
	if opts.NumLoads <= 0 {
		opts.NumLoads = 1
	}
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}
	if opts.Headless {
		log.Warn().Msg("Headless mode may not observe ads: ad delivery is unreliable without a visible browser")
	}
	return &Detector{
		opts:    opts,
		limiter: ratelimit.NewHostLimiter(opts.LoadRateRPS, opts.LoadRateBurst),
	}
}

// Setup launches the browser process with automation-evasion flags. A launch
// failure is fatal for the whole batch and is propagated to the caller.
func (d *Detector) Setup(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.browserCtx != nil {
		return nil
	}

	chromePath := d.opts.ChromePath
	if chromePath == "" {
		chromePath = FindChrome(d.opts.UseChromeChannel)
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("autoplay-policy", "no-user-gesture-required"),
		chromedp.Flag("window-size", "1280,720"),
		chromedp.Flag("disk-cache-size", "0"),
		chromedp.Flag("media-cache-size", "0"),
	}
	if chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}
	if d.opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(d.opts.UserAgent))
	}
	if d.opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(d.opts.Proxy))
	}
	if d.opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	d.allocCancel = allocCancel

	launch := func() error {
		browserCtx, browserCancel := chromedp.NewContext(allocCtx)
		if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
			browserCancel()
			return fmt.Errorf("browser launch: %w", err)
		}
		d.browserCtx = browserCtx
		d.browserCancel = browserCancel
		return nil
	}

	if err := retry.WithRetry(ctx, retry.DefaultConfig(), launch); err != nil {
		allocCancel()
		d.allocCancel = nil
		return err
	}

	log.Info().
		Str("chrome_path", chromePath).
		Bool("headless", d.opts.Headless).
		Bool("stealth", d.opts.StealthPatches).
		Msg("Browser launched with evasion flags")

	return nil
}

// Cleanup closes the browser and releases the allocator. Idempotent, safe
// to call after a partially failed Setup.
func (d *Detector) Cleanup() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.browserCancel != nil {
		log.Debug().Msg("Closing browser")
		d.browserCancel()
		d.browserCancel = nil
		d.browserCtx = nil
	}
	if d.allocCancel != nil {
		d.allocCancel()
		d.allocCancel = nil
	}
}

// Detect runs the full detection state machine for one video and returns an
// immutable result. Evidence containers are created fresh per call; the
// browsing context is always disposed before returning, and any failure
// along the way is folded into the result's Error while partial evidence is
// preserved.
func (d *Detector) Detect(ctx context.Context, videoID string) (result models.AdDetectionResult) {
	result = models.AdDetectionResult{VideoID: videoID}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("video_id", videoID).Interface("panic", r).Msg("Detection panicked")
			result.Error = fmt.Sprintf("panic: %v", r)
		}
		v, method, confidence := verdict.Determine(result.Dom, result.Network, result.UI)
		result.Verdict = &v
		result.DecisiveMethod = method
		result.Confidence = confidence
		log.Info().
			Str("video_id", videoID).
			Bool("verdict", v).
			Str("method", string(method)).
			Str("confidence", string(confidence)).
			Msg("Detection finished")
	}()

	d.mu.Lock()
	browserCtx := d.browserCtx
	d.mu.Unlock()
	if browserCtx == nil {
		result.Error = "detector is not set up"
		return result
	}

	log.Info().Str("video_id", videoID).Msg("Detecting ads")

	// Fresh incognito browsing context, so cookies and storage never leak
	// between videos even though the browser process is shared.
	var browserContextID cdp.BrowserContextID
	var targetID target.ID
	err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		id, err := target.CreateBrowserContext().WithDisposeOnDetach(true).Do(ctx)
		if err != nil {
			return fmt.Errorf("create browsing context: %w", err)
		}
		browserContextID = id
		tid, err := target.CreateTarget("about:blank").WithBrowserContextID(id).Do(ctx)
		if err != nil {
			return fmt.Errorf("create target: %w", err)
		}
		targetID = tid
		return nil
	}))
	if err != nil {
		result.Error = err.Error()
		return result
	}

	tabCtx, tabCancel := chromedp.NewContext(browserCtx, chromedp.WithTargetID(targetID))
	defer func() {
		tabCancel()
		err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
			return target.DisposeBrowserContext(browserContextID).Do(ctx)
		}))
		if err != nil {
			log.Debug().Err(err).Msg("Browsing context disposal failed")
		}
	}()

	sess := &session{
		tabCtx:   tabCtx,
		opts:     d.opts,
		limiter:  d.limiter,
		videoID:  videoID,
		watchURL: videoid.WatchURL(videoID),
	}

	// Every outbound request during the session feeds the network evidence.
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if e, ok := ev.(*network.EventRequestWillBeSent); ok && e.Request != nil {
			sess.observeRequest(e.Request.URL)
		}
	})

	// Override the automation-detectable navigator flag and install the
	// stealth patch layer before any page script can run.
	if err := chromedp.Run(tabCtx, network.Enable(), installEvasions(d.opts.StealthPatches)); err != nil {
		result.Error = fmt.Sprintf("evasion setup: %v", err)
		sess.freeze(&result)
		return result
	}

	if err := sess.run(ctx); err != nil {
		result.Error = err.Error()
	}

	tabCancel()
	sess.freeze(&result)
	return result
}

// observeRequest classifies one outbound request URL into the session's
// network evidence. Called from the CDP event goroutine.
func (s *session) observeRequest(rawURL string) {
	match := signals.ClassifyRequestURL(rawURL)
	if !match.IsAdRelated {
		return
	}
	s.netMu.Lock()
	defer s.netMu.Unlock()
	s.network.AdRequestCount++
	s.network.AdBreakObserved = s.network.AdBreakObserved || match.AdBreak
	s.network.Pagead = s.network.Pagead || match.Pagead
	s.network.ThirdPartyAdNetwork = s.network.ThirdPartyAdNetwork || match.ThirdPartyAdNetwork
	s.network.AdUnitParam = s.network.AdUnitParam || match.AdUnitParam
	s.network.ViewabilityTracker = s.network.ViewabilityTracker || match.ViewabilityTracker
	s.network.MatchedURLs = append(s.network.MatchedURLs, rawURL)
	log.Debug().
		Str("pattern", match.MatchedPattern).
		Str("url", truncateURL(rawURL)).
		Msg("Ad-related request observed")
}

func truncateURL(u string) string {
	if len(u) > 160 {
		return u[:160] + "..."
	}
	return u
}
