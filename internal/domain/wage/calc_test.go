package wage

import (
	"math"
	"testing"
)

func TestAdjustedPayNilSalary(t *testing.T) {
	if got := AdjustedPay(40, nil); got != nil {
		t.Fatalf("expected nil for unset salary, got %v", *got)
	}
}

func TestAdjustedPayKnownValues(t *testing.T) {
	salary := 104000.0
	got := AdjustedPay(80, &salary)
	if got == nil {
		t.Fatal("expected a value for set salary")
	}
	// hourly 50.00, factor (120*50)/2080 = 2.8846..., rate 19.3653...
	if math.Abs(*got-1549.23) > 0.005 {
		t.Fatalf("expected ~1549.23, got %v", *got)
	}
}

func TestAdjustedPayCanBeNegative(t *testing.T) {
	salary := 200000.0
	got := AdjustedPay(10, &salary)
	if got == nil {
		t.Fatal("expected a value for set salary")
	}
	// hourly 96.15 already exceeds the base rate; shortfall goes negative
	// and must not be clamped to zero.
	if *got >= 0 {
		t.Fatalf("expected negative adjusted pay, got %v", *got)
	}
}

func TestHourlyRate(t *testing.T) {
	salary := 104000.0
	rate := HourlyRate(&salary)
	if rate == nil || *rate != 50 {
		t.Fatalf("expected hourly rate 50, got %v", rate)
	}
	if HourlyRate(nil) != nil {
		t.Fatal("expected nil hourly rate for unset salary")
	}
}

func TestCACCost(t *testing.T) {
	if got := CACCost(10); got != 8.00 {
		t.Fatalf("expected 8.00, got %v", got)
	}
	if got := CACCost(0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}
