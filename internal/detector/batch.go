package detector

import (
	"context"
	"time"

	"github.com/miavo090821/dissertation/pkg/models"
)

// VideoDetector is what the batch runner needs from a detector.
type VideoDetector interface {
	Detect(ctx context.Context, videoID string) models.AdDetectionResult
}

// ProgressFunc is invoked after each video completes.
type ProgressFunc func(completed, total int, result models.AdDetectionResult)

// DetectBatch runs detection for each video ID in order, strictly
// sequentially: the browser process and its observers are not built for
// concurrent contexts, and serial processing keeps evasion state
// predictable. One failing video never stops the batch; every requested ID
// yields exactly one result, in input order. The delay applies between
// videos, not after the last one.
func DetectBatch(ctx context.Context, det VideoDetector, videoIDs []string, delay time.Duration, onProgress ProgressFunc) []models.AdDetectionResult {
	results := make([]models.AdDetectionResult, 0, len(videoIDs))

	for i, videoID := range videoIDs {
		result := det.Detect(ctx, videoID)
		results = append(results, result)

		if onProgress != nil {
			onProgress(i+1, len(videoIDs), result)
		}

		if i < len(videoIDs)-1 && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
			}
		}
	}

	return results
}

// DetectBatch runs the package-level batch loop with this detector.
func (d *Detector) DetectBatch(ctx context.Context, videoIDs []string, delay time.Duration, onProgress ProgressFunc) []models.AdDetectionResult {
	return DetectBatch(ctx, d, videoIDs, delay, onProgress)
}
