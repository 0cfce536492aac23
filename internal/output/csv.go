// Package output writes detection results for the downstream reporting
// collaborator. The flattened record contract lives on the result type; this
// package only handles file encoding.
package output

import (
	"encoding/csv"
	"os"

	"github.com/miavo090821/dissertation/pkg/models"
)

// WriteCSV writes one flattened row per result, in input order, with the
// fixed column order from models.RecordColumns.
func WriteCSV(results []models.AdDetectionResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	columns := models.RecordColumns()
	if err := writer.Write(columns); err != nil {
		return err
	}

	for i := range results {
		record := results[i].ToRecord()
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = record[col]
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
