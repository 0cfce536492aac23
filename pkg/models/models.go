package models

import "strconv"

// DetectionMethod identifies which signal source decided a verdict.
type DetectionMethod string

const (
	MethodDOM     DetectionMethod = "dom"
	MethodNetwork DetectionMethod = "network"
	MethodUI      DetectionMethod = "ui"
	MethodNone    DetectionMethod = "none"
)

// Confidence grades how trustworthy a verdict is.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// LoadFinding records the outcome of a single page load.
// A load that failed before the markup could be captured carries a non-empty
// Error and contributes nothing to the evidence counters.
type LoadFinding struct {
	Load         int    `json:"load"`
	AdTimeOffset bool   `json:"ad_time_offset"`
	PlayerAds    bool   `json:"player_ads"`
	Error        string `json:"error,omitempty"`
}

// DomEvidence accumulates document-structure markers across page loads.
// Marker booleans and counters only ever grow; LoadsWithEvidence <= TotalLoads.
type DomEvidence struct {
	HasAdTimeOffsetMarker bool          `json:"has_ad_time_offset_marker"`
	HasPlayerAdsMarker    bool          `json:"has_player_ads_marker"`
	LoadsWithEvidence     int           `json:"loads_with_evidence"`
	TotalLoads            int           `json:"total_loads"`
	RawFindings           []LoadFinding `json:"raw_findings,omitempty"`
}

// RecordLoad folds one page load into the evidence. Failed loads are kept in
// RawFindings for the audit trail but excluded from the counters.
func (d *DomEvidence) RecordLoad(f LoadFinding) {
	d.RawFindings = append(d.RawFindings, f)
	if f.Error != "" {
		return
	}
	d.TotalLoads++
	d.HasAdTimeOffsetMarker = d.HasAdTimeOffsetMarker || f.AdTimeOffset
	d.HasPlayerAdsMarker = d.HasPlayerAdsMarker || f.PlayerAds
	if f.AdTimeOffset || f.PlayerAds {
		d.LoadsWithEvidence++
	}
}

// HasAds reports whether either configuration marker was ever observed.
func (d *DomEvidence) HasAds() bool {
	return d.HasAdTimeOffsetMarker || d.HasPlayerAdsMarker
}

// NetworkEvidence accumulates outbound-request classification over a session.
// AdBreakObserved is the only field treated as decisive; the rest are
// diagnostic. AdRequestCount never decreases.
type NetworkEvidence struct {
	AdRequestCount      int      `json:"ad_request_count"`
	AdBreakObserved     bool     `json:"ad_break_observed"`
	Pagead              bool     `json:"pagead"`
	ThirdPartyAdNetwork bool     `json:"third_party_ad_network"`
	AdUnitParam         bool     `json:"ad_unit_param"`
	ViewabilityTracker  bool     `json:"viewability_tracker"`
	MatchedURLs         []string `json:"matched_urls,omitempty"`
}

// MarkerObservation logs which UI markers first appeared at a checkpoint.
type MarkerObservation struct {
	Checkpoint    string   `json:"checkpoint"`
	NewlyDetected []string `json:"newly_detected"`
}

// UIEvidence accumulates rendered-player markers. Every boolean is sticky:
// once a marker has been seen it stays set for the rest of the session even
// if a later probe no longer finds it.
type UIEvidence struct {
	SponsoredLabelSeen bool                `json:"sponsored_label_seen"`
	AdBadgeSeen        bool                `json:"ad_badge_seen"`
	AdImageMarkerSeen  bool                `json:"ad_image_marker_seen"`
	SkipButtonSeen     bool                `json:"skip_button_seen"`
	AdCountdownSeen    bool                `json:"ad_countdown_seen"`
	AdOverlaySeen      bool                `json:"ad_overlay_seen"`
	AdModeClassSeen    bool                `json:"ad_mode_class_seen"`
	RawMarkerLog       []MarkerObservation `json:"raw_marker_log,omitempty"`
}

// HasAds reports the primary UI indicator. The sponsored label renders only
// while an ad unit is actually on screen, so it alone carries the verdict.
func (u *UIEvidence) HasAds() bool {
	return u.SponsoredLabelSeen
}

// AnyMarker reports whether any player marker was seen at all.
func (u *UIEvidence) AnyMarker() bool {
	return u.SponsoredLabelSeen || u.AdBadgeSeen || u.AdImageMarkerSeen ||
		u.SkipButtonSeen || u.AdCountdownSeen || u.AdOverlaySeen || u.AdModeClassSeen
}

// AdDetectionResult is the immutable per-video output of a detection run.
// Verdict is a pointer so the uncertain state remains representable; the
// default cascade always resolves it, but callers receiving a result built
// by other means must handle nil.
type AdDetectionResult struct {
	VideoID        string          `json:"video_id"`
	Title          string          `json:"title,omitempty"`
	Channel        string          `json:"channel,omitempty"`
	Dom            DomEvidence     `json:"dom"`
	Network        NetworkEvidence `json:"network"`
	UI             UIEvidence      `json:"ui"`
	Verdict        *bool           `json:"verdict"`
	DecisiveMethod DetectionMethod `json:"decisive_method"`
	Confidence     Confidence      `json:"confidence"`
	Error          string          `json:"error,omitempty"`
}

// RecordColumns is the fixed column order for flattened records.
func RecordColumns() []string {
	return []string{
		"video_id",
		"title",
		"channel",
		"verdict",
		"decisive_method",
		"confidence",
		"dom_ad_time_offset",
		"dom_player_ads",
		"dom_loads_with_evidence",
		"dom_total_loads",
		"net_ad_request_count",
		"net_ad_break",
		"net_pagead",
		"net_third_party_ad_network",
		"net_ad_unit_param",
		"net_viewability_tracker",
		"ui_sponsored_label",
		"ui_ad_badge",
		"ui_ad_image",
		"ui_skip_button",
		"ui_ad_countdown",
		"ui_ad_overlay",
		"ui_ad_mode_class",
		"error",
	}
}

// ToRecord flattens the result for the reporting collaborator. Booleans
// render as Yes/No, a nil verdict as Unknown, and a missing error as "".
func (r *AdDetectionResult) ToRecord() map[string]string {
	verdict := "Unknown"
	if r.Verdict != nil {
		verdict = yesNo(*r.Verdict)
	}
	return map[string]string{
		"video_id":                   r.VideoID,
		"title":                      r.Title,
		"channel":                    r.Channel,
		"verdict":                    verdict,
		"decisive_method":            string(r.DecisiveMethod),
		"confidence":                 string(r.Confidence),
		"dom_ad_time_offset":         yesNo(r.Dom.HasAdTimeOffsetMarker),
		"dom_player_ads":             yesNo(r.Dom.HasPlayerAdsMarker),
		"dom_loads_with_evidence":    strconv.Itoa(r.Dom.LoadsWithEvidence),
		"dom_total_loads":            strconv.Itoa(r.Dom.TotalLoads),
		"net_ad_request_count":       strconv.Itoa(r.Network.AdRequestCount),
		"net_ad_break":               yesNo(r.Network.AdBreakObserved),
		"net_pagead":                 yesNo(r.Network.Pagead),
		"net_third_party_ad_network": yesNo(r.Network.ThirdPartyAdNetwork),
		"net_ad_unit_param":          yesNo(r.Network.AdUnitParam),
		"net_viewability_tracker":    yesNo(r.Network.ViewabilityTracker),
		"ui_sponsored_label":         yesNo(r.UI.SponsoredLabelSeen),
		"ui_ad_badge":                yesNo(r.UI.AdBadgeSeen),
		"ui_ad_image":                yesNo(r.UI.AdImageMarkerSeen),
		"ui_skip_button":             yesNo(r.UI.SkipButtonSeen),
		"ui_ad_countdown":            yesNo(r.UI.AdCountdownSeen),
		"ui_ad_overlay":              yesNo(r.UI.AdOverlaySeen),
		"ui_ad_mode_class":           yesNo(r.UI.AdModeClassSeen),
		"error":                      r.Error,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
