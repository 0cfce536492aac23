// internal/cli/detect.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/miavo090821/dissertation/internal/detector"
	"github.com/miavo090821/dissertation/internal/ui"
	"github.com/miavo090821/dissertation/internal/videoid"
	"github.com/miavo090821/dissertation/pkg/models"
)

var detectOutput string

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect <video-url-or-id>",
	Short: "Detect ad delivery on a single video",
	Long: `Opens the watch page in an isolated browsing context, observes document
markers, outbound ad requests, and the rendered player through a scripted
playback-and-seek sequence, and prints the verdict with its evidence.`,
	Example: `  # Detect by video ID
  adscan detect dQw4w9WgXcQ

  # Detect by URL, five loads for DOM corroboration
  adscan detect "https://www.youtube.com/watch?v=dQw4w9WgXcQ" --methodology

  # Save the full result as JSON
  adscan detect dQw4w9WgXcQ --output=result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().StringVarP(&detectOutput, "output", "o", "", "File path to save the result (.json or .csv)")
}

func runDetect(cmd *cobra.Command, args []string) error {
	id, err := videoid.Parse(args[0])
	if err != nil {
		return err
	}

	det := detector.New(detectorOptions())
	ctx := cmd.Context()

	if err := det.Setup(ctx); err != nil {
		return fmt.Errorf("browser setup: %w", err)
	}
	defer det.Cleanup()

	result := det.Detect(ctx, id)
	printResult(result)

	return saveResults([]models.AdDetectionResult{result}, detectOutput)
}

func detectorOptions() detector.Options {
	return detector.Options{
		Headless:         cfg.Headless,
		NumLoads:         cfg.NumLoads,
		StealthPatches:   cfg.StealthPatches,
		UseChromeChannel: cfg.UseChromeChannel,
		ChromePath:       cfg.ChromePath,
		UserAgent:        cfg.UserAgent,
		Proxy:            cfg.Proxy,
		NavTimeout:       cfg.NavTimeout,
		LoadRateRPS:      cfg.LoadRateRPS,
		LoadRateBurst:    cfg.LoadRateBurst,
	}
}

func printResult(r models.AdDetectionResult) {
	verdict := ui.ColorYellow + "Unknown" + ui.ColorReset
	if r.Verdict != nil {
		if *r.Verdict {
			verdict = ui.ColorRed + "Has Ads" + ui.ColorReset
		} else {
			verdict = ui.ColorGreen + "No Ads" + ui.ColorReset
		}
	}

	fmt.Printf("\n%sVideo%s    %s\n", ui.ColorBold, ui.ColorReset, r.VideoID)
	if r.Title != "" {
		fmt.Printf("%sTitle%s    %s\n", ui.ColorBold, ui.ColorReset, r.Title)
	}
	fmt.Printf("%sVerdict%s  %s  %s(%s, %s confidence)%s\n",
		ui.ColorBold, ui.ColorReset, verdict,
		ui.ColorDim, r.DecisiveMethod, r.Confidence, ui.ColorReset)

	fmt.Printf("\n%sUI%s       sponsored=%v badge=%v skip=%v countdown=%v overlay=%v ad-mode=%v\n",
		ui.ColorCyan, ui.ColorReset,
		r.UI.SponsoredLabelSeen, r.UI.AdBadgeSeen, r.UI.SkipButtonSeen,
		r.UI.AdCountdownSeen, r.UI.AdOverlaySeen, r.UI.AdModeClassSeen)
	fmt.Printf("%sNetwork%s  ad-requests=%d ad-break=%v pagead=%v third-party=%v\n",
		ui.ColorCyan, ui.ColorReset,
		r.Network.AdRequestCount, r.Network.AdBreakObserved,
		r.Network.Pagead, r.Network.ThirdPartyAdNetwork)
	fmt.Printf("%sDOM%s      markers=%v loads=%d/%d\n",
		ui.ColorCyan, ui.ColorReset,
		r.Dom.HasAds(), r.Dom.LoadsWithEvidence, r.Dom.TotalLoads)

	if r.Error != "" {
		fmt.Fprintf(os.Stderr, "%sError%s    %s\n", ui.ColorRed, ui.ColorReset, r.Error)
	}
	fmt.Println()
}
