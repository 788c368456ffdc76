package payroll

// EmployeePeriod workflow statuses, in forward order. An admin may set any
// status directly; the UI only ever requests the next forward state or a
// reset to pending. ReadyForDIR is the normal terminal state but resetting
// to pending is always permitted for correcting mistakes. The one implicit
// transition is DIR XML generation, which advances the record to
// ready_for_dir as a side effect and snapshots the hourly wage used.
const (
	StatusPending     = "pending"
	StatusAwaitingPay = "awaiting_pay"
	StatusReadyForDIR = "ready_for_dir"
)

// StatusLabels are the human-readable workflow labels.
var StatusLabels = map[string]string{
	StatusPending:     "Pending",
	StatusAwaitingPay: "Awaiting Pay",
	StatusReadyForDIR: "Ready for DIR",
}

// ValidStatus reports whether s is one of the three workflow statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAwaitingPay, StatusReadyForDIR:
		return true
	}
	return false
}

// NextStatus returns the forward transition from s, or "" when s is
// terminal or unknown.
func NextStatus(s string) string {
	switch s {
	case StatusPending:
		return StatusAwaitingPay
	case StatusAwaitingPay:
		return StatusReadyForDIR
	}
	return ""
}
