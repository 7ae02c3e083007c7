package powerdash

import (
	"math"
	"testing"
)

func TestNormalizedPowerConstant(t *testing.T) {
	s := constantSeries(t, 100, 250)
	np, ok := NormalizedPower(s, 0, 30)
	if !ok {
		t.Fatal("expected a normalized power value")
	}
	if math.Abs(np-250) > 1e-6 {
		t.Fatalf("normalized power = %v, want 250", np)
	}
}

func TestNormalizedPowerShortWindowFallsBackToMean(t *testing.T) {
	s := constantSeries(t, 100, 250)
	np, ok := NormalizedPower(s, 0, 10)
	if !ok {
		t.Fatal("expected a fallback mean")
	}
	if math.Abs(np-250) > 1e-9 {
		t.Fatalf("fallback mean = %v, want 250", np)
	}
}

func TestNormalizedPowerExceedsMeanForVariableLoad(t *testing.T) {
	timeS := make([]float64, 0, 241)
	power := make([]float64, 0, 241)
	for i := 0; i <= 240; i++ {
		p := 100.0
		if (i/30)%2 == 1 {
			p = 400
		}
		timeS = append(timeS, float64(i))
		power = append(power, p)
	}
	s := NewSampleSeries(timeS, power, nil)

	np, ok := NormalizedPower(s, 0, 240)
	if !ok {
		t.Fatal("expected a normalized power value")
	}
	mean := average(power)
	if np <= mean {
		t.Fatalf("normalized power %v should exceed mean %v for surging load", np, mean)
	}
}

func TestNormalizedPowerTooFewSamplesInRange(t *testing.T) {
	s := NewSampleSeries([]float64{0, 10, 20, 30, 40}, []float64{250, 250, 250, 250, 250}, nil)
	if _, ok := NormalizedPower(s, 12, 18); ok {
		t.Fatal("expected no value when the window brackets fewer than 2 samples")
	}
}

func TestNormalizedPowerInvalidWindow(t *testing.T) {
	s := constantSeries(t, 100, 250)
	if _, ok := NormalizedPower(s, 30, 30); ok {
		t.Fatal("expected no value for an empty window")
	}
	if _, ok := NormalizedPower(s, 40, 30); ok {
		t.Fatal("expected no value for an inverted window")
	}
	if _, ok := NormalizedPower(s, math.NaN(), 30); ok {
		t.Fatal("expected no value for a NaN bound")
	}
	if _, ok := NormalizedPower(nil, 0, 30); ok {
		t.Fatal("expected no value for a nil series")
	}
}

func TestNormalizedPowerZeroLoadIsDegenerate(t *testing.T) {
	s := constantSeries(t, 100, 0)
	if _, ok := NormalizedPower(s, 0, 60); ok {
		t.Fatal("expected no value when the 4th-power mean is not positive")
	}
}

func TestResampleHandlesMissingPower(t *testing.T) {
	s := NewSampleSeries([]float64{0, 1, 2, 3, 4}, []float64{100, math.NaN(), 100, 100, 100}, nil)
	grid := resampleOneHz(s, 0, 4)
	if len(grid) != 5 {
		t.Fatalf("grid length = %d, want 5", len(grid))
	}
	if grid[1] != 0 {
		t.Fatalf("missing sample should resample to 0, got %v", grid[1])
	}
	if grid[0] != 100 || grid[4] != 100 {
		t.Fatalf("boundary samples should pass through, got %v and %v", grid[0], grid[4])
	}
}
