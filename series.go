// Package powerdash implements the power-duration analytics used by the
// training dashboard: canonical best-power curves, peak-window search,
// normalized power, and time-in-zone accumulation.
//
// Every function is a pure transformation over caller-supplied slices. The
// package never mutates its inputs and keeps no state between calls, so
// concurrent calls sharing the same underlying arrays are safe.
package powerdash

import "math"

// SampleSeries holds aligned time, power, and optional heart-rate streams for
// one activity. TimeS is strictly increasing elapsed seconds; PowerW and
// HRBPM have the same length as TimeS, with NaN marking a missing reading so
// index alignment is preserved for gap detection.
type SampleSeries struct {
	TimeS  []float64
	PowerW []float64
	HRBPM  []float64
}

// NewSampleSeries builds a cleaned series from raw streams. Samples with a
// non-finite or non-increasing timestamp are dropped; non-finite power and
// heart-rate values are kept in place as NaN. powerW must match timeS in
// length or the series is rejected. hrBPM is optional and is ignored when its
// length differs. Inputs are copied, never mutated.
func NewSampleSeries(timeS, powerW, hrBPM []float64) *SampleSeries {
	if len(timeS) == 0 || len(powerW) != len(timeS) {
		return nil
	}
	hasHR := len(hrBPM) == len(timeS)

	s := &SampleSeries{
		TimeS:  make([]float64, 0, len(timeS)),
		PowerW: make([]float64, 0, len(timeS)),
	}
	if hasHR {
		s.HRBPM = make([]float64, 0, len(timeS))
	}

	lastT := math.Inf(-1)
	for i, t := range timeS {
		if !isFinite(t) || t <= lastT {
			continue
		}
		lastT = t
		s.TimeS = append(s.TimeS, t)
		s.PowerW = append(s.PowerW, missingToNaN(powerW[i]))
		if hasHR {
			s.HRBPM = append(s.HRBPM, missingToNaN(hrBPM[i]))
		}
	}
	if len(s.TimeS) == 0 {
		return nil
	}
	return s
}

// Len returns the number of retained samples.
func (s *SampleSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.TimeS)
}

// SpanSeconds returns the recorded time span, or 0 for fewer than 2 samples.
func (s *SampleSeries) SpanSeconds() float64 {
	if s.Len() < 2 {
		return 0
	}
	return s.TimeS[len(s.TimeS)-1] - s.TimeS[0]
}

func missingToNaN(v float64) float64 {
	if !isFinite(v) {
		return math.NaN()
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func safePositive(v float64) float64 {
	if !isFinite(v) || v <= 0 {
		return 0
	}
	return v
}

// average ignores non-finite entries, returning 0 when none remain.
func average(values []float64) float64 {
	total := 0.0
	count := 0
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		total += v
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// maxValue ignores non-finite entries, returning 0 when none remain.
func maxValue(values []float64) float64 {
	max := 0.0
	found := false
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		if !found || v > max {
			max = v
			found = true
		}
	}
	if !found {
		return 0
	}
	return max
}
