package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasjlepore/powerdash/pipeline"
)

func main() {
	var (
		fitPath   = flag.String("fit", "", "Path to input .fit file")
		outDir    = flag.String("out", "", "Output directory")
		ftp       = flag.Float64("ftp", 0, "FTP override in watts")
		maxHR     = flag.Float64("maxhr", 0, "Max heart rate override in bpm")
		format    = flag.String("format", "parquet", "Columnar output format: parquet|csv")
		overwrite = flag.Bool("overwrite", true, "Allow writing into non-empty output directories")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --fit input.fit --out outdir [--ftp 250] [--maxhr 185] [--format parquet|csv]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*fitPath) == "" || strings.TrimSpace(*outDir) == "" {
		flag.Usage()
		os.Exit(2)
	}

	result, err := pipeline.Run(pipeline.Options{
		FitPath:       *fitPath,
		OutDir:        *outDir,
		FTPOverride:   *ftp,
		MaxHROverride: *maxHR,
		Format:        *format,
		Overwrite:     *overwrite,
		CopySource:    true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "power_analyze failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("power_analyze complete\n")
	fmt.Printf("Output dir:        %s\n", result.OutputDir)
	fmt.Printf("activity summary:  %s\n", result.SummaryPath)
	fmt.Printf("power curve:       %s\n", result.CurvePath)
	fmt.Printf("curve table:       %s\n", result.CurveTablePath)
	fmt.Printf("best windows:      %s\n", result.BestWindowsPath)
	fmt.Printf("zone report:       %s\n", result.ZoneReportPath)
	fmt.Printf("samples:           %s\n", result.SamplesPath)
	fmt.Printf("training notes:    %s\n", result.NotesPath)
	if result.SourceCopyPath != "" {
		fmt.Printf("source copy:       %s\n", result.SourceCopyPath)
	}
	for _, w := range result.Warnings {
		fmt.Printf("warning:           %s\n", w)
	}
}
