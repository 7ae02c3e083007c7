package powerdash

const secondsPerHour = 3600.0

// Config controls optional calculations that require athlete-specific inputs.
type Config struct {
	FTPWatts        float64
	MaxHeartRateBPM float64
}

// StandardCurveDurations are the whole-second durations the dashboard charts
// on its power-duration views.
var StandardCurveDurations = []float64{1, 5, 10, 30, 60, 120, 300, 600, 1200, 1800, 3600}

// PeakWindow pairs a requested duration with the best window achieving it.
type PeakWindow struct {
	DurationS int64  `json:"duration_s"`
	Window    Window `json:"window"`
}

// Analysis contains the metrics one activity contributes to the dashboard.
type Analysis struct {
	SpanSeconds       float64      `json:"span_seconds"`
	AvgPowerWatts     float64      `json:"avg_power_watts"`
	MaxPowerWatts     float64      `json:"max_power_watts"`
	NormalizedPower   float64      `json:"normalized_power_watts"`
	VariabilityIndex  float64      `json:"variability_index"`
	WorkKilojoules    float64      `json:"work_kilojoules"`
	AvgHeartRate      float64      `json:"avg_heart_rate_bpm"`
	MaxHeartRate      float64      `json:"max_heart_rate_bpm"`
	FTPWatts          float64      `json:"ftp_watts"`
	FTPSource         string       `json:"ftp_source"`
	IntensityFactor   float64      `json:"intensity_factor"`
	TrainingStress    float64      `json:"training_stress_score"`
	PowerHRDecoupling float64      `json:"power_hr_decoupling_pct"`
	PeakWindows       []PeakWindow `json:"peak_windows,omitempty"`
	Curve             PowerCurve   `json:"power_curve,omitempty"`
	PowerZones        []ZoneResult `json:"power_zones,omitempty"`
	HeartRateZones    []ZoneResult `json:"heart_rate_zones,omitempty"`
}

// Analyze runs every engine computation over one cleaned series. A nil result
// means the series is too short for any analytics; individual metrics that
// cannot be computed are left at their zero value so one failed metric never
// blocks the others.
func Analyze(s *SampleSeries, cfg Config) *Analysis {
	if s.Len() < 2 {
		return nil
	}

	a := &Analysis{
		SpanSeconds:   s.SpanSeconds(),
		AvgPowerWatts: average(s.PowerW),
		MaxPowerWatts: maxValue(s.PowerW),
		AvgHeartRate:  average(s.HRBPM),
		MaxHeartRate:  maxValue(s.HRBPM),
	}

	if table := BuildEnergyTable(s); table != nil {
		a.WorkKilojoules = table.Total() / 1000.0
	}

	first, last := s.TimeS[0], s.TimeS[len(s.TimeS)-1]
	if np, ok := NormalizedPower(s, first, last); ok {
		a.NormalizedPower = np
	}
	if a.NormalizedPower == 0 {
		a.NormalizedPower = a.AvgPowerWatts
	}

	observations := make([]Observation, 0, len(StandardCurveDurations))
	for _, d := range StandardCurveDurations {
		w := FindBestWindow(s, d)
		if w == nil {
			continue
		}
		a.PeakWindows = append(a.PeakWindows, PeakWindow{DurationS: int64(d), Window: *w})
		dur, pow := d, w.AvgPowerW
		observations = append(observations, Observation{DurationS: &dur, PowerW: &pow})
	}
	a.Curve = BuildCurve(observations)

	a.FTPWatts = safePositive(cfg.FTPWatts)
	if a.FTPWatts > 0 {
		a.FTPSource = "input"
	} else if est := estimateFTP(a.Curve); est > 0 {
		a.FTPWatts = est
		a.FTPSource = "estimated"
	} else {
		a.FTPSource = "unavailable"
	}

	if a.AvgPowerWatts > 0 {
		a.VariabilityIndex = a.NormalizedPower / a.AvgPowerWatts
	}
	if a.FTPWatts > 0 && a.NormalizedPower > 0 {
		a.IntensityFactor = a.NormalizedPower / a.FTPWatts
	}
	if a.SpanSeconds > 0 && a.IntensityFactor > 0 {
		a.TrainingStress = (a.SpanSeconds / secondsPerHour) * a.IntensityFactor * a.IntensityFactor * 100.0
	}

	if a.FTPWatts > 0 {
		a.PowerZones = AccumulateZones(s.PowerW, s.TimeS, DefaultPowerZones(), a.FTPWatts)
	}
	maxHR := safePositive(cfg.MaxHeartRateBPM)
	if maxHR == 0 {
		maxHR = a.MaxHeartRate
	}
	if maxHR > 0 && len(s.HRBPM) == len(s.TimeS) {
		a.HeartRateZones = AccumulateZones(s.HRBPM, s.TimeS, DefaultHeartRateZones(), maxHR)
	}

	a.PowerHRDecoupling = powerHRDecoupling(s)
	return a
}

// estimateFTP applies the conventional 95% of best 20-minute power.
func estimateFTP(curve PowerCurve) float64 {
	best20, ok := curve.ValueAt(1200)
	if !ok || best20 <= 0 {
		return 0
	}
	return best20 * 0.95
}

// powerHRDecoupling compares the power:HR ratio of the first and second
// halves of the paired samples, in percent. Requires at least 20 paired
// readings to say anything.
func powerHRDecoupling(s *SampleSeries) float64 {
	if len(s.HRBPM) != len(s.TimeS) {
		return 0
	}
	power := make([]float64, 0, s.Len())
	hr := make([]float64, 0, s.Len())
	for i := range s.TimeS {
		p, h := s.PowerW[i], s.HRBPM[i]
		if !isFinite(p) || !isFinite(h) || h <= 0 {
			continue
		}
		power = append(power, p)
		hr = append(hr, h)
	}
	n := len(power)
	if n < 20 {
		return 0
	}
	mid := n / 2

	p1, h1 := average(power[:mid]), average(hr[:mid])
	p2, h2 := average(power[mid:]), average(hr[mid:])
	if p1 == 0 || p2 == 0 || h1 == 0 || h2 == 0 {
		return 0
	}
	firstRatio := p1 / h1
	secondRatio := p2 / h2
	if firstRatio == 0 {
		return 0
	}
	return ((secondRatio / firstRatio) - 1.0) * 100.0
}
