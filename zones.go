package powerdash

import "math"

// ZoneDefinition is one physiological intensity band, expressed as fractions
// of a reference value (FTP for power, max HR for heart rate). An
// UpperFraction of zero or +Inf leaves the zone unbounded above. Bounds are
// half-open: a value sitting exactly on a boundary belongs to the zone that
// starts there.
type ZoneDefinition struct {
	Label         string  `json:"label"`
	LowerFraction float64 `json:"lower_fraction"`
	UpperFraction float64 `json:"upper_fraction,omitempty"`
}

// ZoneResult is accumulated time for one zone.
type ZoneResult struct {
	Label         string `json:"label"`
	SecondsInZone int64  `json:"seconds_in_zone"`
}

// DefaultPowerZones returns the seven FTP-based zones the dashboard charts.
func DefaultPowerZones() []ZoneDefinition {
	return []ZoneDefinition{
		{Label: "Z1 Active Recovery", LowerFraction: 0, UpperFraction: 0.55},
		{Label: "Z2 Endurance", LowerFraction: 0.55, UpperFraction: 0.75},
		{Label: "Z3 Tempo", LowerFraction: 0.75, UpperFraction: 0.90},
		{Label: "Z4 Threshold", LowerFraction: 0.90, UpperFraction: 1.05},
		{Label: "Z5 VO2", LowerFraction: 1.05, UpperFraction: 1.20},
		{Label: "Z6 Anaerobic", LowerFraction: 1.20, UpperFraction: 1.50},
		{Label: "Z7 Neuromuscular", LowerFraction: 1.50},
	}
}

// DefaultHeartRateZones returns the five max-HR zones the dashboard charts.
func DefaultHeartRateZones() []ZoneDefinition {
	return []ZoneDefinition{
		{Label: "Z1 Recovery", LowerFraction: 0, UpperFraction: 0.70},
		{Label: "Z2 Aerobic", LowerFraction: 0.70, UpperFraction: 0.80},
		{Label: "Z3 Tempo", LowerFraction: 0.80, UpperFraction: 0.88},
		{Label: "Z4 Threshold", LowerFraction: 0.88, UpperFraction: 0.95},
		{Label: "Z5 Maximal", LowerFraction: 0.95},
	}
}

// AccumulateZones buckets each finite sample into at most one zone, weighting
// it by its effective duration: the gap to the next sample when positive and
// finite, else the gap from the previous sample, else 1 second. Zones are
// caller-guaranteed non-overlapping and ordered. Seconds round to the nearest
// integer and zones that collected no time are dropped, preserving the
// definition order among the remainder.
func AccumulateZones(values, timeS []float64, zones []ZoneDefinition, reference float64) []ZoneResult {
	if len(values) == 0 || len(values) != len(timeS) || len(zones) == 0 {
		return nil
	}
	if !isFinite(reference) || reference <= 0 {
		return nil
	}

	accum := make([]float64, len(zones))
	for i, v := range values {
		if !isFinite(v) {
			continue
		}
		dt := effectiveDuration(timeS, i)
		for z, zone := range zones {
			lower := reference * zone.LowerFraction
			upper := math.Inf(1)
			if zone.UpperFraction > 0 && !math.IsInf(zone.UpperFraction, 1) {
				upper = reference * zone.UpperFraction
			}
			if v >= lower && v < upper {
				accum[z] += dt
				break
			}
		}
	}

	out := make([]ZoneResult, 0, len(zones))
	for z, zone := range zones {
		seconds := int64(math.Round(accum[z]))
		if seconds <= 0 {
			continue
		}
		out = append(out, ZoneResult{Label: zone.Label, SecondsInZone: seconds})
	}
	return out
}

// effectiveDuration handles the last sample and single malformed gaps without
// discarding the sample's contribution.
func effectiveDuration(timeS []float64, i int) float64 {
	if i+1 < len(timeS) {
		if dt := timeS[i+1] - timeS[i]; isFinite(dt) && dt > 0 {
			return dt
		}
	}
	if i > 0 {
		if dt := timeS[i] - timeS[i-1]; isFinite(dt) && dt > 0 {
			return dt
		}
	}
	return 1
}
