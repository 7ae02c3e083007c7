package pipeline

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasjlepore/powerdash"
)

// Artifact file names shared by the disk and in-memory pipelines.
const (
	summaryFileName     = "activity_summary.json"
	curveRecordFileName = "power_curve.json"
	bestWindowsFileName = "best_windows.json"
	zoneReportFileName  = "zone_report.json"
	notesFileName       = "training_notes.md"
	sourceCopyFileName  = "source.fit"
)

// Run executes the full power_analyze pipeline and writes all artifacts into
// the output directory.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.FitPath) == "" {
		return nil, fmt.Errorf("fit path is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	data, err := os.ReadFile(opts.FitPath)
	if err != nil {
		return nil, fmt.Errorf("read FIT file: %w", err)
	}

	bytesRes, err := RunBytes(BytesOptions{
		SourceFileName: filepath.Base(opts.FitPath),
		FitData:        data,
		FTPOverride:    opts.FTPOverride,
		MaxHROverride:  opts.MaxHROverride,
		Format:         opts.Format,
		CopySource:     opts.CopySource,
	})
	if err != nil {
		return nil, err
	}

	if err := prepareOutDir(opts.OutDir, opts.Overwrite); err != nil {
		return nil, err
	}
	result := &Result{OutputDir: opts.OutDir, Warnings: bytesRes.Warnings}
	for name, content := range bytesRes.Files {
		path := filepath.Join(opts.OutDir, name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		switch {
		case name == summaryFileName:
			result.SummaryPath = path
		case name == curveRecordFileName:
			result.CurvePath = path
		case name == bestWindowsFileName:
			result.BestWindowsPath = path
		case name == zoneReportFileName:
			result.ZoneReportPath = path
		case name == notesFileName:
			result.NotesPath = path
		case name == sourceCopyFileName:
			result.SourceCopyPath = path
		case strings.HasPrefix(name, "power_curve."):
			result.CurveTablePath = path
		case strings.HasPrefix(name, "samples."):
			result.SamplesPath = path
		}
	}
	return result, nil
}

// RunBytes executes the pipeline entirely in memory.
func RunBytes(opts BytesOptions) (*BytesResult, error) {
	if len(opts.FitData) == 0 {
		return nil, fmt.Errorf("fit data is required")
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "parquet"
	}
	if format != "parquet" && format != "csv" {
		return nil, fmt.Errorf("unsupported format %q (expected parquet|csv)", format)
	}

	series, err := SeriesFromFITBytes(opts.FitData)
	if err != nil {
		return nil, err
	}
	analysis := powerdash.Analyze(series, powerdash.Config{
		FTPWatts:        opts.FTPOverride,
		MaxHeartRateBPM: opts.MaxHROverride,
	})
	if analysis == nil {
		return nil, fmt.Errorf("too few usable samples for analysis")
	}

	warnings := make([]string, 0, 2)
	if analysis.FTPSource == "unavailable" {
		warnings = append(warnings, "ftp unavailable: IF, TSS, and power zones omitted")
	}
	if analysis.FTPSource == "estimated" {
		warnings = append(warnings, "ftp estimated from best 20-minute power; pass an override for exact IF/TSS")
	}

	files := make(map[string][]byte, 8)

	summary := ActivitySummaryFile{
		SourceFileName: opts.SourceFileName,
		SampleCount:    series.Len(),
		Analysis:       analysis,
		Warnings:       warnings,
	}
	if files[summaryFileName], err = marshalJSON(summary); err != nil {
		return nil, fmt.Errorf("marshal activity summary: %w", err)
	}
	if files[curveRecordFileName], err = marshalJSON(PowerCurveFile{Points: analysis.Curve}); err != nil {
		return nil, fmt.Errorf("marshal power curve record: %w", err)
	}
	if files[bestWindowsFileName], err = marshalJSON(BestWindowsFile{Windows: analysis.PeakWindows}); err != nil {
		return nil, fmt.Errorf("marshal best windows: %w", err)
	}
	zoneReport := ZoneReportFile{
		FTPWatts:        analysis.FTPWatts,
		MaxHeartRateBPM: analysis.MaxHeartRate,
		PowerZones:      analysis.PowerZones,
		HeartRateZones:  analysis.HeartRateZones,
	}
	if files[zoneReportFileName], err = marshalJSON(zoneReport); err != nil {
		return nil, fmt.Errorf("marshal zone report: %w", err)
	}
	files[notesFileName] = []byte(powerdash.BuildTrainingNotes(analysis) + "\n")

	rows := sampleRows(series)
	switch format {
	case "csv":
		files["samples.csv"] = marshalSamplesCSV(rows)
		files["power_curve.csv"] = marshalCurveCSV(analysis.Curve)
	case "parquet":
		if files["samples.parquet"], err = marshalSamplesParquet(rows); err != nil {
			return nil, fmt.Errorf("marshal samples parquet: %w", err)
		}
		if files["power_curve.parquet"], err = marshalCurveParquet(analysis.Curve); err != nil {
			return nil, fmt.Errorf("marshal curve parquet: %w", err)
		}
	}

	if opts.CopySource {
		files[sourceCopyFileName] = append([]byte(nil), opts.FitData...)
	}

	return &BytesResult{Files: files, Warnings: warnings}, nil
}

func prepareOutDir(dir string, overwrite bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if overwrite {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("inspect output directory: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("output directory %s is not empty (use overwrite)", dir)
	}
	return nil
}

func marshalJSON(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func marshalSamplesCSV(rows []SampleRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"time_s", "power_w", "hr_bpm", "valid_power", "valid_hr"})
	for _, s := range rows {
		_ = w.Write([]string{
			formatFloat(s.TimeS),
			formatFloatPtr(s.PowerW),
			formatFloatPtr(s.HRBPM),
			strconv.FormatBool(s.PowerW != nil),
			strconv.FormatBool(s.HRBPM != nil),
		})
	}
	w.Flush()
	return buf.Bytes()
}

func marshalCurveCSV(curve powerdash.PowerCurve) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"duration_s", "power_w"})
	for _, pt := range curve {
		_ = w.Write([]string{
			strconv.FormatInt(pt.DurationS, 10),
			formatFloat(pt.PowerW),
		})
	}
	w.Flush()
	return buf.Bytes()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
