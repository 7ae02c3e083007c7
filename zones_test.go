package powerdash

import (
	"math"
	"testing"
)

func TestAccumulateZonesConservation(t *testing.T) {
	n := 100
	values := make([]float64, 0, n)
	timeS := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		timeS = append(timeS, float64(i))
		values = append(values, float64(50+i*3))
	}
	all := []ZoneDefinition{{Label: "All", LowerFraction: 0}}

	results := AccumulateZones(values, timeS, all, 250)
	if len(results) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(results))
	}
	// 1 Hz sampling: every sample weighs 1 second, the last falls back to
	// its previous gap.
	if results[0].SecondsInZone != int64(n) {
		t.Fatalf("seconds in zone = %d, want %d", results[0].SecondsInZone, n)
	}
}

func TestAccumulateZonesDropsEmptyZones(t *testing.T) {
	values := []float64{200, 210, 220}
	timeS := []float64{0, 1, 2}
	zones := []ZoneDefinition{
		{Label: "Low", LowerFraction: 0, UpperFraction: 0.5},
		{Label: "High", LowerFraction: 0.5},
	}
	results := AccumulateZones(values, timeS, zones, 250)
	if len(results) != 1 {
		t.Fatalf("expected 1 populated zone, got %d: %v", len(results), results)
	}
	if results[0].Label != "High" {
		t.Fatalf("expected High zone, got %q", results[0].Label)
	}
}

func TestAccumulateZonesHalfOpenBoundary(t *testing.T) {
	zones := []ZoneDefinition{
		{Label: "Below", LowerFraction: 0, UpperFraction: 0.5},
		{Label: "At", LowerFraction: 0.5, UpperFraction: 1.0},
	}
	// 125 sits exactly on the 0.5 * 250 boundary: it belongs to the zone
	// starting there, not the one ending there.
	results := AccumulateZones([]float64{125}, []float64{0}, zones, 250)
	if len(results) != 1 || results[0].Label != "At" {
		t.Fatalf("boundary value landed in %v, want the At zone", results)
	}
}

func TestAccumulateZonesEffectiveDurationFallbacks(t *testing.T) {
	values := []float64{100, 100, 100}
	timeS := []float64{0, 10, 20}
	all := []ZoneDefinition{{Label: "All", LowerFraction: 0}}
	results := AccumulateZones(values, timeS, all, 250)
	if len(results) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(results))
	}
	// Two forward gaps of 10s plus the last sample's backward fallback.
	if results[0].SecondsInZone != 30 {
		t.Fatalf("seconds in zone = %d, want 30", results[0].SecondsInZone)
	}
}

func TestAccumulateZonesSingleSampleDefaultsToOneSecond(t *testing.T) {
	all := []ZoneDefinition{{Label: "All", LowerFraction: 0}}
	results := AccumulateZones([]float64{200}, []float64{0}, all, 250)
	if len(results) != 1 || results[0].SecondsInZone != 1 {
		t.Fatalf("expected 1 second in zone, got %v", results)
	}
}

func TestAccumulateZonesSkipsNonFiniteValues(t *testing.T) {
	values := []float64{200, math.NaN(), math.Inf(1), 200}
	timeS := []float64{0, 1, 2, 3}
	all := []ZoneDefinition{{Label: "All", LowerFraction: 0}}
	results := AccumulateZones(values, timeS, all, 250)
	if len(results) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(results))
	}
	if results[0].SecondsInZone != 2 {
		t.Fatalf("seconds in zone = %d, want 2", results[0].SecondsInZone)
	}
}

func TestAccumulateZonesRejectsBadInput(t *testing.T) {
	all := []ZoneDefinition{{Label: "All", LowerFraction: 0}}
	if r := AccumulateZones(nil, nil, all, 250); r != nil {
		t.Fatalf("expected nil for empty values, got %v", r)
	}
	if r := AccumulateZones([]float64{1}, []float64{0, 1}, all, 250); r != nil {
		t.Fatalf("expected nil for mismatched lengths, got %v", r)
	}
	if r := AccumulateZones([]float64{1}, []float64{0}, all, 0); r != nil {
		t.Fatalf("expected nil for a non-positive reference, got %v", r)
	}
	if r := AccumulateZones([]float64{1}, []float64{0}, nil, 250); r != nil {
		t.Fatalf("expected nil for empty zone definitions, got %v", r)
	}
}

func TestAccumulateZonesPreservesDefinitionOrder(t *testing.T) {
	values := []float64{300, 100, 200}
	timeS := []float64{0, 1, 2}
	zones := []ZoneDefinition{
		{Label: "A", LowerFraction: 0, UpperFraction: 0.6},
		{Label: "B", LowerFraction: 0.6, UpperFraction: 1.0},
		{Label: "C", LowerFraction: 1.0},
	}
	results := AccumulateZones(values, timeS, zones, 250)
	if len(results) != 3 {
		t.Fatalf("expected 3 zones, got %d", len(results))
	}
	for i, want := range []string{"A", "B", "C"} {
		if results[i].Label != want {
			t.Fatalf("zone %d = %q, want %q", i, results[i].Label, want)
		}
	}
}

func TestDefaultZoneSetsAreContiguous(t *testing.T) {
	for _, zones := range [][]ZoneDefinition{DefaultPowerZones(), DefaultHeartRateZones()} {
		for i := 1; i < len(zones); i++ {
			if zones[i].LowerFraction != zones[i-1].UpperFraction {
				t.Fatalf("zone %q does not start where %q ends", zones[i].Label, zones[i-1].Label)
			}
		}
		if last := zones[len(zones)-1]; last.UpperFraction != 0 {
			t.Fatalf("last zone %q should be unbounded", last.Label)
		}
	}
}
