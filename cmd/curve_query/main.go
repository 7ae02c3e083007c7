package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasjlepore/powerdash"
)

// curveRecord matches both the pipeline's power_curve.json artifact and the
// raw observation lists persisted by the dashboard's best-powers records.
type curveRecord struct {
	Points       []powerdash.CurvePoint  `json:"points,omitempty"`
	Observations []powerdash.Observation `json:"observations,omitempty"`
}

func main() {
	var (
		curvePath = flag.String("curve", "", "Path to a power curve JSON record")
		at        = flag.String("at", "", "Comma-separated durations in seconds to query")
		dump      = flag.Bool("dump", false, "Print the canonical curve as JSON")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --curve curve.json [--at 60,300,1200] [--dump]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*curvePath) == "" {
		flag.Usage()
		os.Exit(2)
	}

	curve, err := loadCurve(*curvePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "curve_query failed: %v\n", err)
		os.Exit(1)
	}
	if len(curve) == 0 {
		fmt.Fprintln(os.Stderr, "curve_query failed: record contains no usable observations")
		os.Exit(1)
	}

	if *dump {
		out, err := json.MarshalIndent(curveRecord{Points: curve}, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "curve_query failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	}

	for _, field := range strings.Split(*at, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		duration, err := strconv.ParseFloat(field, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %q: %v\n", field, err)
			continue
		}
		if power, ok := curve.ValueAt(duration); ok {
			fmt.Printf("%gs: %.1f W\n", duration, power)
		} else {
			fmt.Printf("%gs: no data\n", duration)
		}
	}
}

func loadCurve(path string) (powerdash.PowerCurve, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curve record: %w", err)
	}
	var record curveRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal curve record: %w", err)
	}
	observations := record.Observations
	for _, pt := range record.Points {
		d := float64(pt.DurationS)
		p := pt.PowerW
		observations = append(observations, powerdash.Observation{DurationS: &d, PowerW: &p})
	}
	return powerdash.BuildCurve(observations), nil
}
