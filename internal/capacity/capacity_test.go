package capacity

import (
	"math"
	"testing"

	"github.com/beggy/beggy-backend/pkg/enums"
)

func TestCheckIsOverweight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		current float64
		max     float64
		want    bool
	}{
		{"at limit", 20, 20, false},
		{"over limit", 22.5, 20, true},
		{"under limit", 5, 20, false},
		{"no limit", 10, 0, false},
		{"negative limit", 10, -5, false},
	}
	for _, tc := range cases {
		if got := CheckIsOverweight(tc.current, tc.max); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestCheckIsOverCapacity(t *testing.T) {
	t.Parallel()

	if CheckIsOverCapacity(50, 50) {
		t.Fatal("equal to limit should not be over capacity")
	}
	if !CheckIsOverCapacity(50.01, 50) {
		t.Fatal("expected over capacity")
	}
	if CheckIsOverCapacity(100, 0) {
		t.Fatal("unset limit should never be exceeded")
	}
}

func TestCheckIsFull(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		weight    float64
		maxWeight float64
		volume    float64
		maxVolume float64
		want      bool
	}{
		{"weight at threshold", 19, 20, 10, 50, true},
		{"both below threshold", 10, 20, 30, 50, false},
		{"volume at threshold", 1, 20, 47.5, 50, true},
		{"volume just below", 1, 20, 47.4, 50, false},
		{"over limit is also full", 25, 20, 0, 50, true},
		{"unset limits ignored", 100, 0, 100, 0, false},
		{"only volume limit set", 100, 0, 48, 50, true},
	}
	for _, tc := range cases {
		if got := CheckIsFull(tc.weight, tc.maxWeight, tc.volume, tc.maxVolume); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestGetContainerStatusPriority(t *testing.T) {
	t.Parallel()

	cases := []struct {
		overweight   bool
		overCapacity bool
		full         bool
		count        int
		want         enums.ContainerStatus
	}{
		{true, true, true, 0, enums.ContainerStatusOverweight},
		{true, false, false, 3, enums.ContainerStatusOverweight},
		{false, true, true, 10, enums.ContainerStatusOverCapacity},
		{false, false, true, 2, enums.ContainerStatusFull},
		{false, false, true, 0, enums.ContainerStatusFull},
		{false, false, false, 0, enums.ContainerStatusEmpty},
		{false, false, false, 3, enums.ContainerStatusOK},
	}
	for _, tc := range cases {
		got := GetContainerStatus(tc.overweight, tc.overCapacity, tc.full, tc.count)
		if got != tc.want {
			t.Fatalf("GetContainerStatus(%v, %v, %v, %d) = %s, want %s",
				tc.overweight, tc.overCapacity, tc.full, tc.count, got, tc.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	t.Parallel()

	if got := Percentage(19.5, 20); got != 97.5 {
		t.Fatalf("expected 97.5, got %v", got)
	}
	if got := Percentage(1, 3); got != 33.33 {
		t.Fatalf("expected 33.33, got %v", got)
	}
	if got := Percentage(5, 0); got != 0 {
		t.Fatalf("expected 0 for unset limit, got %v", got)
	}
	if got := Percentage(30, 20); got != 150 {
		t.Fatalf("expected 150, got %v", got)
	}
}

func TestEvaluateNearlyFullSuitcase(t *testing.T) {
	t.Parallel()

	summary := Evaluate(Measurements{
		MaxWeight:       20,
		MaxCapacity:     50,
		CurrentWeight:   19.5,
		CurrentCapacity: 48,
		ItemCount:       6,
	})

	if summary.IsOverweight || summary.IsOverCapacity {
		t.Fatalf("expected no violations, got %+v", summary)
	}
	if !summary.IsFull {
		t.Fatalf("expected full, got %+v", summary)
	}
	if summary.Status != enums.ContainerStatusFull {
		t.Fatalf("expected FULL, got %s", summary.Status)
	}
	if summary.WeightPercentage != 97.5 || summary.CapacityPercentage != 96 {
		t.Fatalf("unexpected percentages: %+v", summary)
	}
}

func TestEvaluateEmptyContainer(t *testing.T) {
	t.Parallel()

	summary := Evaluate(Measurements{MaxWeight: 10, MaxCapacity: 30})
	if summary.Status != enums.ContainerStatusEmpty {
		t.Fatalf("expected EMPTY, got %s", summary.Status)
	}
	if summary.WeightPercentage != 0 || summary.CapacityPercentage != 0 {
		t.Fatalf("expected zero percentages, got %+v", summary)
	}
}

func TestViolations(t *testing.T) {
	t.Parallel()

	got := Violations(Measurements{MaxWeight: 20, CurrentWeight: 22, MaxCapacity: 40, CurrentCapacity: 41})
	if len(got) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(got))
	}
	if got[0].Dimension != "weight" || got[1].Dimension != "volume" {
		t.Fatalf("unexpected violation order: %+v", got)
	}
	if v := Violations(Measurements{MaxWeight: 20, CurrentWeight: 19}); len(v) != 0 {
		t.Fatalf("expected no violations, got %+v", v)
	}
}

func TestEvaluateNeverPanicsOnExtremeInput(t *testing.T) {
	t.Parallel()

	inputs := []Measurements{
		{MaxWeight: 20, MaxCapacity: 50, CurrentWeight: math.Inf(1), CurrentCapacity: 1, ItemCount: 2},
		{MaxWeight: math.Inf(1), MaxCapacity: 50, CurrentWeight: 10, CurrentCapacity: 1, ItemCount: 1},
		{MaxWeight: 20, MaxCapacity: math.NaN(), CurrentWeight: 10, CurrentCapacity: math.NaN(), ItemCount: 1},
		{MaxWeight: math.SmallestNonzeroFloat64, MaxCapacity: 50, CurrentWeight: math.MaxFloat64, ItemCount: 1},
	}
	for i, m := range inputs {
		summary := Evaluate(m)
		for _, pct := range []float64{summary.WeightPercentage, summary.CapacityPercentage} {
			if math.IsInf(pct, 0) || math.IsNaN(pct) {
				t.Fatalf("case %d: percentage %v is not finite", i, pct)
			}
		}
	}

	if got := Evaluate(inputs[0]); got.Status != enums.ContainerStatusOverweight || !got.IsFull {
		t.Fatalf("infinite load should be overweight and full, got %+v", got)
	}
	if got := Percentage(1, math.Inf(1)); got != 0 {
		t.Fatalf("expected 0 against an infinite limit, got %v", got)
	}
}
