package powerdash

import "sort"

// EnergyTable holds cumulative trapezoidal energy (joules) over a sample
// series, supporting O(log n) windowed-average queries.
type EnergyTable struct {
	timeS  []float64
	powerW []float64
	energy []float64
}

// BuildEnergyTable computes the cumulative time-integral of power. Non-finite
// power values contribute zero instantaneous power; this is a deliberate
// simplification, not a gap-aware model. Intervals with a non-positive time
// delta also contribute zero. Returns nil for fewer than 2 samples.
func BuildEnergyTable(s *SampleSeries) *EnergyTable {
	if s.Len() < 2 {
		return nil
	}
	n := s.Len()
	t := &EnergyTable{
		timeS:  append([]float64(nil), s.TimeS...),
		powerW: make([]float64, n),
		energy: make([]float64, n),
	}
	for i, p := range s.PowerW {
		if isFinite(p) {
			t.powerW[i] = p
		}
	}
	for i := 1; i < n; i++ {
		dt := t.timeS[i] - t.timeS[i-1]
		joules := 0.0
		if dt > 0 {
			joules = (t.powerW[i-1] + t.powerW[i]) / 2 * dt
		}
		t.energy[i] = t.energy[i-1] + joules
	}
	return t
}

// EnergyAt returns cumulative energy at an arbitrary time. Times outside the
// recorded span clamp to the nearest endpoint (0 below, total above). Inside
// a sampling interval the trapezoid is split at the interpolated power.
func (t *EnergyTable) EnergyAt(timeS float64) float64 {
	if t == nil || len(t.timeS) == 0 {
		return 0
	}
	if !isFinite(timeS) || timeS <= t.timeS[0] {
		return 0
	}
	last := len(t.timeS) - 1
	if timeS >= t.timeS[last] {
		return t.energy[last]
	}

	idx := sort.SearchFloat64s(t.timeS, timeS)
	if idx < len(t.timeS) && t.timeS[idx] == timeS {
		return t.energy[idx]
	}
	t0, t1 := t.timeS[idx-1], t.timeS[idx]
	p0, p1 := t.powerW[idx-1], t.powerW[idx]
	dt := t1 - t0
	if dt <= 0 {
		return t.energy[idx-1]
	}
	pInterp := p0 + (p1-p0)*(timeS-t0)/dt
	return t.energy[idx-1] + (p0+pInterp)/2*(timeS-t0)
}

// Total returns the cumulative energy over the whole series.
func (t *EnergyTable) Total() float64 {
	if t == nil || len(t.energy) == 0 {
		return 0
	}
	return t.energy[len(t.energy)-1]
}
