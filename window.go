package powerdash

// Window is the best contiguous stretch of a requested duration.
type Window struct {
	StartS    float64 `json:"start_s"`
	EndS      float64 `json:"end_s"`
	AvgPowerW float64 `json:"avg_power_w"`
}

// windowEndTolerance absorbs floating error when a candidate window ends
// exactly at the last recorded timestamp.
const windowEndTolerance = 1e-9

// FindBestWindow locates the contiguous window of durationS seconds with the
// highest average power. Candidate start times are exactly the recorded
// sample timestamps: under piecewise-linear power the optimum window boundary
// always touches a sample boundary, though very sparse recordings can in
// principle hide a better window between two samples (documented baseline
// behavior). Returns nil when fewer than 2 samples exist, when no window of
// the requested length fits, or when the best average is not positive, so
// callers can distinguish "no real effort" from a zero reading.
func FindBestWindow(s *SampleSeries, durationS float64) *Window {
	if s.Len() < 2 || !isFinite(durationS) || durationS <= 0 {
		return nil
	}
	lastT := s.TimeS[len(s.TimeS)-1]
	if s.TimeS[0]+durationS > lastT+windowEndTolerance {
		return nil
	}

	table := BuildEnergyTable(s)
	if table == nil {
		return nil
	}

	var best *Window
	for _, start := range s.TimeS {
		end := start + durationS
		if end > lastT+windowEndTolerance {
			break
		}
		avg := (table.EnergyAt(end) - table.EnergyAt(start)) / durationS
		if best == nil || avg > best.AvgPowerW {
			best = &Window{StartS: start, EndS: end, AvgPowerW: avg}
		}
	}
	if best == nil || best.AvgPowerW <= 0 {
		return nil
	}
	return best
}
