package models

import "testing"

func TestDomEvidence_RecordLoad(t *testing.T) {
	var dom DomEvidence

	dom.RecordLoad(LoadFinding{Load: 1, Error: "navigation: timeout"})
	dom.RecordLoad(LoadFinding{Load: 2, AdTimeOffset: true})
	dom.RecordLoad(LoadFinding{Load: 3})

	if dom.TotalLoads != 2 {
		t.Errorf("TotalLoads = %d, want 2 (failed load excluded)", dom.TotalLoads)
	}
	if dom.LoadsWithEvidence != 1 {
		t.Errorf("LoadsWithEvidence = %d, want 1", dom.LoadsWithEvidence)
	}
	if !dom.HasAdTimeOffsetMarker {
		t.Error("HasAdTimeOffsetMarker should stay true after a later clean load")
	}
	if dom.HasPlayerAdsMarker {
		t.Error("HasPlayerAdsMarker should be false")
	}
	if !dom.HasAds() {
		t.Error("HasAds should be true")
	}
	if len(dom.RawFindings) != 3 {
		t.Errorf("RawFindings length = %d, want 3 (failed load kept in audit trail)", len(dom.RawFindings))
	}
	if dom.LoadsWithEvidence > dom.TotalLoads {
		t.Error("invariant violated: LoadsWithEvidence > TotalLoads")
	}
}

func TestUIEvidence_AnyMarker(t *testing.T) {
	var ui UIEvidence
	if ui.AnyMarker() {
		t.Error("empty evidence should report no markers")
	}
	ui.AdOverlaySeen = true
	if !ui.AnyMarker() {
		t.Error("AnyMarker should be true once any boolean is set")
	}
	if ui.HasAds() {
		t.Error("HasAds must track only the sponsored label")
	}
	ui.SponsoredLabelSeen = true
	if !ui.HasAds() {
		t.Error("HasAds should follow the sponsored label")
	}
}

func TestAdDetectionResult_ToRecord(t *testing.T) {
	verdict := true
	result := AdDetectionResult{
		VideoID:        "dQw4w9WgXcQ",
		Title:          "Some video",
		Dom:            DomEvidence{HasPlayerAdsMarker: true, TotalLoads: 3, LoadsWithEvidence: 1},
		Network:        NetworkEvidence{AdRequestCount: 4, AdBreakObserved: true},
		UI:             UIEvidence{SponsoredLabelSeen: true, SkipButtonSeen: true},
		Verdict:        &verdict,
		DecisiveMethod: MethodUI,
		Confidence:     ConfidenceHigh,
	}

	record := result.ToRecord()

	want := map[string]string{
		"video_id":           "dQw4w9WgXcQ",
		"verdict":            "Yes",
		"decisive_method":    "ui",
		"confidence":         "high",
		"dom_player_ads":     "Yes",
		"dom_ad_time_offset": "No",
		"dom_total_loads":    "3",
		"net_ad_break":       "Yes",
		"net_ad_request_count": "4",
		"ui_sponsored_label": "Yes",
		"ui_skip_button":     "Yes",
		"ui_ad_overlay":      "No",
		"error":              "",
	}
	for key, value := range want {
		if record[key] != value {
			t.Errorf("record[%q] = %q, want %q", key, record[key], value)
		}
	}
}

func TestAdDetectionResult_ToRecordNilVerdict(t *testing.T) {
	result := AdDetectionResult{VideoID: "abc123def45", Error: "browser crashed"}
	record := result.ToRecord()
	if record["verdict"] != "Unknown" {
		t.Errorf("nil verdict rendered as %q, want Unknown", record["verdict"])
	}
	if record["error"] != "browser crashed" {
		t.Errorf("error = %q", record["error"])
	}
}

func TestRecordColumns_CoverToRecord(t *testing.T) {
	record := (&AdDetectionResult{}).ToRecord()
	columns := RecordColumns()

	if len(columns) != len(record) {
		t.Fatalf("RecordColumns has %d entries, ToRecord %d", len(columns), len(record))
	}
	for _, col := range columns {
		if _, ok := record[col]; !ok {
			t.Errorf("column %q missing from ToRecord", col)
		}
	}
}
