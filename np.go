package powerdash

import "math"

// npWindowSeconds is the rolling window of the normalized-power definition.
const npWindowSeconds = 30

// NormalizedPower estimates normalized power over [startS, endS]: power is
// resampled to a uniform 1-second grid, a rolling 30-sample mean is taken,
// and the result is the fourth root of the mean of the fourth powers of that
// rolling series. Grids shorter than the rolling window fall back to the
// plain mean, since NP is undefined below its own window length. Reports
// false when fewer than 2 samples fall in range or the computation
// degenerates.
func NormalizedPower(s *SampleSeries, startS, endS float64) (float64, bool) {
	if s.Len() < 2 || !isFinite(startS) || !isFinite(endS) || endS <= startS {
		return 0, false
	}
	inRange := 0
	for _, t := range s.TimeS {
		if t >= startS && t <= endS {
			inRange++
		}
	}
	if inRange < 2 {
		return 0, false
	}

	grid := resampleOneHz(s, startS, endS)
	if len(grid) < 1 {
		return 0, false
	}
	if len(grid) < npWindowSeconds {
		return average(grid), true
	}

	sum := 0.0
	for i := 0; i < npWindowSeconds; i++ {
		sum += grid[i]
	}
	fourthPowerTotal := 0.0
	count := 0
	for i := npWindowSeconds - 1; i < len(grid); i++ {
		if i >= npWindowSeconds {
			sum += grid[i] - grid[i-npWindowSeconds]
		}
		rolling := sum / npWindowSeconds
		fourthPowerTotal += math.Pow(rolling, 4)
		count++
	}
	if count == 0 {
		return 0, false
	}
	meanFourth := fourthPowerTotal / float64(count)
	if meanFourth <= 0 {
		return 0, false
	}
	return math.Pow(meanFourth, 0.25), true
}

// resampleOneHz linearly interpolates power onto whole seconds spanning
// [floor(startS), ceil(endS)] inclusive. A single cursor advances through the
// series so the total resampling cost stays O(n). Grid points outside the
// recorded span clamp to the boundary sample; missing power reads as 0, the
// same convention the energy table uses.
func resampleOneHz(s *SampleSeries, startS, endS float64) []float64 {
	gridStart := math.Floor(startS)
	gridEnd := math.Ceil(endS)
	if gridEnd < gridStart {
		return nil
	}

	n := s.Len()
	first, last := s.TimeS[0], s.TimeS[n-1]
	grid := make([]float64, 0, int(gridEnd-gridStart)+1)
	cursor := 0
	for t := gridStart; t <= gridEnd; t++ {
		switch {
		case t <= first:
			grid = append(grid, powerOrZero(s.PowerW[0]))
		case t >= last:
			grid = append(grid, powerOrZero(s.PowerW[n-1]))
		default:
			for cursor < n-2 && s.TimeS[cursor+1] < t {
				cursor++
			}
			t0, t1 := s.TimeS[cursor], s.TimeS[cursor+1]
			p0, p1 := powerOrZero(s.PowerW[cursor]), powerOrZero(s.PowerW[cursor+1])
			dt := t1 - t0
			if dt <= 0 {
				grid = append(grid, p0)
				continue
			}
			grid = append(grid, p0+(p1-p0)*(t-t0)/dt)
		}
	}
	return grid
}

func powerOrZero(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}
