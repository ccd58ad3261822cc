package featureflag

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"
)

// ReportSummary aggregates the exported flag list.
type ReportSummary struct {
	TotalFeatures   int `json:"totalFeatures"`
	EnabledFeatures int `json:"enabledFeatures"`
}

// Report is the JSON export document.
type Report struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Summary     ReportSummary  `json:"summary"`
	Features    []*FeatureFlag `json:"features"`
}

// BuildReport assembles the export document. Plain serialization, no
// compression or schema versioning.
func BuildReport(flags []*FeatureFlag, now time.Time) *Report {
	enabled := 0
	for _, flag := range flags {
		if flag.IsEnabled {
			enabled++
		}
	}

	return &Report{
		GeneratedAt: now,
		Summary: ReportSummary{
			TotalFeatures:   len(flags),
			EnabledFeatures: enabled,
		},
		Features: flags,
	}
}

// ExportJSON renders the report as indented JSON.
func ExportJSON(flags []*FeatureFlag, now time.Time) ([]byte, error) {
	return json.MarshalIndent(BuildReport(flags, now), "", "  ")
}

// ExportCSV renders the flag list as CSV with a fixed header row.
func ExportCSV(flags []*FeatureFlag) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"key", "name", "enabled", "rollout_percent", "updated_by", "updated_at"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, flag := range flags {
		record := []string{
			flag.Key,
			flag.Name,
			strconv.FormatBool(flag.IsEnabled),
			strconv.Itoa(flag.RolloutPercent),
			flag.UpdatedBy,
			flag.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
