package pipeline

import "github.com/lucasjlepore/powerdash"

// Options configures the power_analyze pipeline.
type Options struct {
	FitPath       string
	OutDir        string
	FTPOverride   float64
	MaxHROverride float64
	Format        string // parquet|csv
	Overwrite     bool
	CopySource    bool
}

// BytesOptions configures the in-memory pipeline variant used by the wasm
// build and by tests.
type BytesOptions struct {
	SourceFileName string
	FitData        []byte
	FTPOverride    float64
	MaxHROverride  float64
	Format         string // parquet|csv
	CopySource     bool
}

// Result returns generated output paths.
type Result struct {
	OutputDir       string   `json:"output_dir"`
	SummaryPath     string   `json:"summary_path"`
	CurvePath       string   `json:"curve_path"`
	CurveTablePath  string   `json:"curve_table_path"`
	BestWindowsPath string   `json:"best_windows_path"`
	ZoneReportPath  string   `json:"zone_report_path"`
	SamplesPath     string   `json:"samples_path"`
	NotesPath       string   `json:"notes_path"`
	SourceCopyPath  string   `json:"source_copy_path,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}

// BytesResult holds every artifact in memory, keyed by file name.
type BytesResult struct {
	Files    map[string][]byte
	Warnings []string
}

// ActivitySummaryFile is the activity_summary.json artifact.
type ActivitySummaryFile struct {
	SourceFileName string              `json:"source_file_name,omitempty"`
	SampleCount    int                 `json:"sample_count"`
	Analysis       *powerdash.Analysis `json:"analysis"`
	Warnings       []string            `json:"warnings,omitempty"`
}

// PowerCurveFile is the JSON shape of the persisted best-powers record; the
// same points also go out as power_curve.parquet|csv.
type PowerCurveFile struct {
	Points powerdash.PowerCurve `json:"points"`
}

// BestWindowsFile is the best_windows.json artifact.
type BestWindowsFile struct {
	Windows []powerdash.PeakWindow `json:"windows"`
}

// ZoneReportFile is the zone_report.json artifact.
type ZoneReportFile struct {
	FTPWatts        float64                `json:"ftp_watts,omitempty"`
	MaxHeartRateBPM float64                `json:"max_heart_rate_bpm,omitempty"`
	PowerZones      []powerdash.ZoneResult `json:"power_zones,omitempty"`
	HeartRateZones  []powerdash.ZoneResult `json:"heart_rate_zones,omitempty"`
}

// SampleRow is one row of the canonical sample table. Nil marks a reading
// the device reported as invalid.
type SampleRow struct {
	TimeS  float64  `json:"time_s"`
	PowerW *float64 `json:"power_w,omitempty"`
	HRBPM  *float64 `json:"hr_bpm,omitempty"`
}
