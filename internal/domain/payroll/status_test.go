package payroll

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusAwaitingPay, StatusReadyForDIR} {
		if !ValidStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "done", "completed", "PENDING"} {
		if ValidStatus(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestNextStatus(t *testing.T) {
	if got := NextStatus(StatusPending); got != StatusAwaitingPay {
		t.Fatalf("expected awaiting_pay, got %q", got)
	}
	if got := NextStatus(StatusAwaitingPay); got != StatusReadyForDIR {
		t.Fatalf("expected ready_for_dir, got %q", got)
	}
	if got := NextStatus(StatusReadyForDIR); got != "" {
		t.Fatalf("expected terminal state, got %q", got)
	}
	if got := NextStatus("bogus"); got != "" {
		t.Fatalf("expected empty for unknown, got %q", got)
	}
}
