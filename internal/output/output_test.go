package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/miavo090821/dissertation/pkg/models"
)

func sampleResults() []models.AdDetectionResult {
	withAds := true
	noAds := false
	return []models.AdDetectionResult{
		{
			VideoID:        "aaaaaaaaaaa",
			Title:          "First",
			Verdict:        &withAds,
			DecisiveMethod: models.MethodUI,
			Confidence:     models.ConfidenceHigh,
			UI:             models.UIEvidence{SponsoredLabelSeen: true},
		},
		{
			VideoID:        "bbbbbbbbbbb",
			Verdict:        &noAds,
			DecisiveMethod: models.MethodNone,
			Confidence:     models.ConfidenceMedium,
		},
		{
			VideoID: "ccccccccccc",
			Error:   "tab crashed",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := WriteCSV(sampleResults(), path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3", len(rows))
	}

	columns := models.RecordColumns()
	if len(rows[0]) != len(columns) {
		t.Fatalf("header has %d columns, want %d", len(rows[0]), len(columns))
	}
	for i, col := range columns {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}

	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[col] = i
	}
	if got := rows[1][index["verdict"]]; got != "Yes" {
		t.Errorf("row 1 verdict = %q, want Yes", got)
	}
	if got := rows[2][index["verdict"]]; got != "No" {
		t.Errorf("row 2 verdict = %q, want No", got)
	}
	if got := rows[3][index["verdict"]]; got != "Unknown" {
		t.Errorf("row 3 verdict = %q, want Unknown", got)
	}
	if got := rows[3][index["error"]]; got != "tab crashed" {
		t.Errorf("row 3 error = %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := WriteJSON(sampleResults(), path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("output should end with a newline")
	}

	var decoded []models.AdDetectionResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("got %d results back, want 3", len(decoded))
	}
	if decoded[0].VideoID != "aaaaaaaaaaa" || !*decoded[0].Verdict {
		t.Errorf("first result mangled: %+v", decoded[0])
	}
	if decoded[2].Verdict != nil {
		t.Error("unresolved verdict should round-trip as null")
	}
	if !decoded[0].UI.SponsoredLabelSeen {
		t.Error("evidence should survive the round trip")
	}
}
