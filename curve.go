package powerdash

import (
	"math"
	"sort"
)

// Observation is one (duration, power) pair extracted from a persisted best
// powers record. Either field may be nil when the source row was incomplete.
type Observation struct {
	DurationS *float64 `json:"duration_s"`
	PowerW    *float64 `json:"power_w"`
}

// CurvePoint is one point on a canonical power curve: the maximum observed
// average power for a whole-second duration.
type CurvePoint struct {
	DurationS int64   `json:"duration_s"`
	PowerW    float64 `json:"power_w"`
}

// PowerCurve is ordered by strictly increasing duration with at most one
// point per duration.
type PowerCurve []CurvePoint

// BuildCurve reduces raw observations into a canonical curve. Pairs with a
// nil or non-finite value are discarded, durations round to the nearest
// second with a minimum of 1, and duplicate durations keep the maximum power.
// The result is independent of observation order.
func BuildCurve(observations []Observation) PowerCurve {
	best := make(map[int64]float64, len(observations))
	for _, obs := range observations {
		if obs.DurationS == nil || obs.PowerW == nil {
			continue
		}
		d, p := *obs.DurationS, *obs.PowerW
		if !isFinite(d) || !isFinite(p) {
			continue
		}
		sec := int64(math.Round(d))
		if sec < 1 {
			sec = 1
		}
		if prev, ok := best[sec]; !ok || p > prev {
			best[sec] = p
		}
	}
	if len(best) == 0 {
		return nil
	}

	curve := make(PowerCurve, 0, len(best))
	for sec, p := range best {
		curve = append(curve, CurvePoint{DurationS: sec, PowerW: p})
	}
	sort.Slice(curve, func(i, j int) bool {
		return curve[i].DurationS < curve[j].DurationS
	})
	return curve
}

// ValueAt queries the curve at an arbitrary duration. Queries at or below the
// first point return that point's power; queries beyond the last point report
// no value (the curve is never extrapolated upward). In-range queries between
// points interpolate linearly.
func (c PowerCurve) ValueAt(durationS float64) (float64, bool) {
	if len(c) == 0 || !isFinite(durationS) {
		return 0, false
	}
	if durationS <= float64(c[0].DurationS) {
		return c[0].PowerW, true
	}
	idx := sort.Search(len(c), func(i int) bool {
		return float64(c[i].DurationS) >= durationS
	})
	if idx >= len(c) {
		return 0, false
	}
	hi := c[idx]
	if float64(hi.DurationS) == durationS {
		return hi.PowerW, true
	}
	lo := c[idx-1]
	x0, x1 := float64(lo.DurationS), float64(hi.DurationS)
	if x1 == x0 {
		// Cannot happen for curves from BuildCurve, but curves may arrive
		// from untrusted persisted records.
		return hi.PowerW, true
	}
	frac := (durationS - x0) / (x1 - x0)
	return lo.PowerW + frac*(hi.PowerW-lo.PowerW), true
}

// Observations converts the curve back into observation pairs, the shape the
// dashboard persists in its best-powers records.
func (c PowerCurve) Observations() []Observation {
	out := make([]Observation, 0, len(c))
	for _, pt := range c {
		d := float64(pt.DurationS)
		p := pt.PowerW
		out = append(out, Observation{DurationS: &d, PowerW: &p})
	}
	return out
}
