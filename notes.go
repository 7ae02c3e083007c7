package powerdash

import (
	"fmt"
	"math"
	"strings"
)

// BuildTrainingNotes turns an analysis into a plain-text session summary for
// the dashboard's notes panel.
func BuildTrainingNotes(a *Analysis) string {
	if a == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(
		&b,
		"Duration %s | Power %.0f avg / %.0f NP / %.0f max W | Work %.0f kJ | VI %.2f\n",
		formatDuration(a.SpanSeconds),
		a.AvgPowerWatts,
		a.NormalizedPower,
		a.MaxPowerWatts,
		a.WorkKilojoules,
		a.VariabilityIndex,
	)
	if a.AvgHeartRate > 0 {
		fmt.Fprintf(&b, "HR %.0f avg / %.0f max bpm\n", a.AvgHeartRate, a.MaxHeartRate)
	}

	if a.FTPWatts > 0 {
		fmt.Fprintf(
			&b,
			"Load IF %.2f | TSS %.0f | FTP %.0f W (%s)\n",
			a.IntensityFactor,
			a.TrainingStress,
			a.FTPWatts,
			a.FTPSource,
		)
	} else {
		fmt.Fprintf(&b, "Load IF/TSS unavailable (FTP not provided and could not be estimated)\n")
	}

	if len(a.PeakWindows) > 0 {
		b.WriteString("\nPeak Efforts\n")
		for _, pw := range a.PeakWindows {
			fmt.Fprintf(
				&b,
				"- %s: %.0f W (starting at %s)\n",
				formatDuration(float64(pw.DurationS)),
				pw.Window.AvgPowerW,
				formatDuration(pw.Window.StartS),
			)
		}
	}

	writeZoneSection(&b, "Power Zone Distribution", a.PowerZones)
	writeZoneSection(&b, "Heart Rate Zone Distribution", a.HeartRateZones)

	if a.PowerHRDecoupling != 0 && a.VariabilityIndex <= 1.10 {
		fmt.Fprintf(&b, "\nPower:HR decoupling: %+.1f%%\n", a.PowerHRDecoupling)
	} else if a.VariabilityIndex > 1.10 {
		fmt.Fprintf(&b, "\nPower:HR decoupling: not reliable for high-variability sessions (VI %.2f)\n", a.VariabilityIndex)
	}

	return strings.TrimSpace(b.String())
}

func writeZoneSection(b *strings.Builder, title string, zones []ZoneResult) {
	if len(zones) == 0 {
		return
	}
	total := int64(0)
	for _, z := range zones {
		total += z.SecondsInZone
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, z := range zones {
		pct := 0.0
		if total > 0 {
			pct = float64(z.SecondsInZone) / float64(total) * 100.0
		}
		fmt.Fprintf(b, "- %s: %s (%.1f%%)\n", z.Label, formatDuration(float64(z.SecondsInZone)), pct)
	}
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	s := int(math.Round(seconds))
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, sec)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, sec)
	}
	return fmt.Sprintf("%ds", sec)
}
