package output

import (
	"encoding/json"
	"os"

	"github.com/miavo090821/dissertation/pkg/models"
)

// WriteJSON writes the full structured results, evidence records included.
func WriteJSON(results []models.AdDetectionResult, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
