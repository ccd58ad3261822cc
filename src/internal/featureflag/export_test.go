package featureflag

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleFlags() []*FeatureFlag {
	updated := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	return []*FeatureFlag{
		{Key: "new_dashboard", Name: "New dashboard", IsEnabled: true, RolloutPercent: 100, UpdatedBy: "admin-1", UpdatedAt: updated},
		{Key: "dark_mode", Name: "Dark mode", IsEnabled: false, RolloutPercent: 0, UpdatedBy: "admin-2", UpdatedAt: updated},
		{Key: "beta_search", Name: "Beta search", IsEnabled: true, RolloutPercent: 25, UpdatedBy: "admin-1", UpdatedAt: updated},
	}
}

func TestBuildReportSummaryCounts(t *testing.T) {
	flags := sampleFlags()
	report := BuildReport(flags, time.Now())

	if report.Summary.TotalFeatures != len(flags) {
		t.Errorf("totalFeatures = %d, expected %d", report.Summary.TotalFeatures, len(flags))
	}
	if report.Summary.EnabledFeatures != 2 {
		t.Errorf("enabledFeatures = %d, expected 2", report.Summary.EnabledFeatures)
	}
	if len(report.Features) != len(flags) {
		t.Errorf("features length = %d, expected %d", len(report.Features), len(flags))
	}
}

func TestBuildReportEmptyInput(t *testing.T) {
	report := BuildReport(nil, time.Now())

	if report.Summary.TotalFeatures != 0 || report.Summary.EnabledFeatures != 0 {
		t.Errorf("expected zero summary, got %+v", report.Summary)
	}
}

func TestExportJSONRoundTrips(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	data, err := ExportJSON(sampleFlags(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Summary struct {
			TotalFeatures   int `json:"totalFeatures"`
			EnabledFeatures int `json:"enabledFeatures"`
		} `json:"summary"`
		Features []struct {
			Key string `json:"key"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	if decoded.Summary.TotalFeatures != 3 || decoded.Summary.EnabledFeatures != 2 {
		t.Errorf("unexpected summary: %+v", decoded.Summary)
	}
	if len(decoded.Features) != 3 || decoded.Features[0].Key != "new_dashboard" {
		t.Errorf("unexpected features payload: %+v", decoded.Features)
	}
}

func TestExportCSVRows(t *testing.T) {
	data, err := ExportCSV(sampleFlags())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d records", len(records))
	}

	header := strings.Join(records[0], ",")
	if header != "key,name,enabled,rollout_percent,updated_by,updated_at" {
		t.Errorf("unexpected header: %q", header)
	}

	first := records[1]
	if first[0] != "new_dashboard" || first[2] != "true" || first[3] != "100" {
		t.Errorf("unexpected first row: %v", first)
	}
	if first[5] != "2025-03-01T09:30:00Z" {
		t.Errorf("unexpected timestamp formatting: %q", first[5])
	}
}
