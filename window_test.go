package powerdash

import (
	"math"
	"testing"
)

func constantSeries(t *testing.T, seconds int, powerW float64) *SampleSeries {
	t.Helper()
	timeS := make([]float64, 0, seconds+1)
	power := make([]float64, 0, seconds+1)
	for i := 0; i <= seconds; i++ {
		timeS = append(timeS, float64(i))
		power = append(power, powerW)
	}
	s := NewSampleSeries(timeS, power, nil)
	if s == nil {
		t.Fatal("expected a series")
	}
	return s
}

func TestFindBestWindowConstantPower(t *testing.T) {
	s := constantSeries(t, 100, 250)
	w := FindBestWindow(s, 30)
	if w == nil {
		t.Fatal("expected a window")
	}
	if math.Abs(w.AvgPowerW-250) > 1e-9 {
		t.Fatalf("avg power = %v, want 250", w.AvgPowerW)
	}
	// Every placement ties at 250; the earliest start must win.
	if w.StartS != 0 || math.Abs(w.EndS-30) > 1e-9 {
		t.Fatalf("window = [%v,%v], want [0,30]", w.StartS, w.EndS)
	}
}

func TestFindBestWindowLocatesSurge(t *testing.T) {
	timeS := make([]float64, 0, 100)
	power := make([]float64, 0, 100)
	for i := 0; i < 100; i++ {
		p := 100.0
		if i >= 40 && i <= 50 {
			p = 300
		}
		timeS = append(timeS, float64(i))
		power = append(power, p)
	}
	s := NewSampleSeries(timeS, power, nil)

	w := FindBestWindow(s, 10)
	if w == nil {
		t.Fatal("expected a window")
	}
	if w.StartS != 40 {
		t.Fatalf("window start = %v, want 40", w.StartS)
	}
	if math.Abs(w.AvgPowerW-300) > 1e-9 {
		t.Fatalf("avg power = %v, want 300", w.AvgPowerW)
	}
}

func TestFindBestWindowDurationLongerThanSpan(t *testing.T) {
	s := constantSeries(t, 20, 250)
	if w := FindBestWindow(s, 30); w != nil {
		t.Fatalf("expected nil for an unfittable duration, got %+v", w)
	}
}

func TestFindBestWindowExactSpanFits(t *testing.T) {
	s := constantSeries(t, 30, 250)
	w := FindBestWindow(s, 30)
	if w == nil {
		t.Fatal("expected a window spanning the whole recording")
	}
	if w.StartS != 0 || math.Abs(w.EndS-30) > 1e-9 {
		t.Fatalf("window = [%v,%v], want [0,30]", w.StartS, w.EndS)
	}
}

func TestFindBestWindowZeroPowerIsDegenerate(t *testing.T) {
	s := constantSeries(t, 60, 0)
	if w := FindBestWindow(s, 10); w != nil {
		t.Fatalf("expected nil for a zero-power recording, got %+v", w)
	}
}

func TestFindBestWindowInvalidArguments(t *testing.T) {
	s := constantSeries(t, 60, 250)
	for _, d := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if w := FindBestWindow(s, d); w != nil {
			t.Fatalf("duration %v: expected nil, got %+v", d, w)
		}
	}
	short := NewSampleSeries([]float64{0}, []float64{250}, nil)
	if w := FindBestWindow(short, 10); w != nil {
		t.Fatalf("expected nil for a single-sample series, got %+v", w)
	}
	if w := FindBestWindow(nil, 10); w != nil {
		t.Fatalf("expected nil for a nil series, got %+v", w)
	}
}

func TestFindBestWindowIrregularSampling(t *testing.T) {
	// 10-second recording gaps around a high-power burst.
	timeS := []float64{0, 10, 11, 12, 13, 14, 24}
	power := []float64{100, 100, 400, 400, 400, 100, 100}
	s := NewSampleSeries(timeS, power, nil)

	w := FindBestWindow(s, 3)
	if w == nil {
		t.Fatal("expected a window")
	}
	if w.StartS != 10 {
		t.Fatalf("window start = %v, want 10", w.StartS)
	}
	// Trapezoids: 10->11 ramps 100->400, 11->13 holds 400.
	want := (250 + 400 + 400) / 3.0
	if math.Abs(w.AvgPowerW-want) > 1e-9 {
		t.Fatalf("avg power = %v, want %v", w.AvgPowerW, want)
	}
}
