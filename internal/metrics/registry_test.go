package metrics

import "testing"

func TestRegistry_FixedOrder(t *testing.T) {
	want := []string{
		"Documentation",
		"Commit Quality",
		"Activity",
		"Issue Management",
		"Community",
		"Branch Management",
	}

	reg := Registry()
	if len(reg) != len(want) {
		t.Fatalf("Registry() returned %d calculators, want %d", len(reg), len(want))
	}

	for i, calc := range reg {
		if calc.Name() != want[i] {
			t.Errorf("Registry()[%d].Name() = %q, want %q", i, calc.Name(), want[i])
		}
	}
}

func TestRegistry_WeightsSumToOne(t *testing.T) {
	var sum float64
	for _, calc := range Registry() {
		sum += calc.Weight()
	}
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("weights sum to %v, want 1.0", sum)
	}
}
