// internal/cli/batch.go
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/miavo090821/dissertation/internal/detector"
	"github.com/miavo090821/dissertation/internal/output"
	"github.com/miavo090821/dissertation/internal/ui"
	"github.com/miavo090821/dissertation/internal/videoid"
	"github.com/miavo090821/dissertation/pkg/models"
)

var batchOutput string

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <ids-file>",
	Short: "Detect ad delivery for a list of videos",
	Long: `Reads one video URL or ID per line (CSV-friendly: only the first column is
used; blank lines and # comments are skipped) and runs detection
sequentially over the shared browser process, writing a flattened report
when done. A single failing video never stops the batch.`,
	Example: `  # Run over a list of URLs with the default delay
  adscan batch video_urls.csv

  # Five loads per video, 5s between videos, JSON report
  adscan batch ids.txt --methodology --delay=5s --output=results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "ad_detection.csv", "Report file path (.csv or .json)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ids, err := readVideoIDs(args[0])
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("no video IDs found in %s", args[0])
	}

	det := detector.New(detectorOptions())
	ctx := cmd.Context()

	if err := det.Setup(ctx); err != nil {
		return fmt.Errorf("browser setup: %w", err)
	}
	defer det.Cleanup()

	bar := progressbar.NewOptions(len(ids),
		progressbar.OptionSetDescription("detecting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	onProgress := func(completed, total int, result models.AdDetectionResult) {
		_ = bar.Add(1)
		if result.Error != "" {
			log.Warn().
				Str("video_id", result.VideoID).
				Str("error", result.Error).
				Msg("Video finished with error")
		}
	}

	results := det.DetectBatch(ctx, ids, cfg.Delay, onProgress)

	if err := saveResults(results, batchOutput); err != nil {
		return err
	}

	printBatchSummary(results)
	return nil
}

// readVideoIDs loads one URL or ID per line. CSV input is tolerated by
// taking the first column; lines that yield no ID are skipped with a warning
// rather than aborting the batch.
func readVideoIDs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.IndexByte(line, ','); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		id, err := videoid.Parse(line)
		if err != nil {
			log.Warn().Str("line", line).Msg("Skipping line with no video ID")
			continue
		}
		ids = append(ids, id)
	}
	return ids, scanner.Err()
}

func saveResults(results []models.AdDetectionResult, path string) error {
	if path == "" {
		return nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return output.WriteJSON(results, path)
	default:
		return output.WriteCSV(results, path)
	}
}

func printBatchSummary(results []models.AdDetectionResult) {
	var withAds, withoutAds, failed int
	for i := range results {
		switch {
		case results[i].Error != "":
			failed++
		case results[i].Verdict != nil && *results[i].Verdict:
			withAds++
		default:
			withoutAds++
		}
	}
	fmt.Printf("\n%sBatch complete%s  %s%d with ads%s, %s%d without%s, %s%d failed%s  ->  %s\n",
		ui.ColorBold, ui.ColorReset,
		ui.ColorRed, withAds, ui.ColorReset,
		ui.ColorGreen, withoutAds, ui.ColorReset,
		ui.ColorYellow, failed, ui.ColorReset,
		batchOutput)
}
