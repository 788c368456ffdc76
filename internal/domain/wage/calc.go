// Package wage holds the prevailing-wage adjustment formula. The adjusted
// pay figure is the per-ticket gap owed to meet the prevailing rate; it can
// legitimately be zero or negative when the employee's derived hourly rate
// already meets or exceeds the base rate, and it is never clamped.
package wage

const (
	// BaseRate is the prevailing-wage base rate per hour.
	BaseRate = 76.94
	// FixedDeduction is subtracted from the base rate alongside the
	// employee's own hourly rate.
	FixedDeduction = 4.69
	// YearlyHours converts a yearly salary to an hourly rate (40 x 52).
	YearlyHours = 2080
	// CACRate is the flat per-hour remittance cost.
	CACRate = 0.80
)

// HourlyRate derives an hourly rate from a yearly salary. A nil salary
// means "not yet set" and propagates as nil; it is never coerced to zero.
func HourlyRate(yearlySalary *float64) *float64 {
	if yearlySalary == nil {
		return nil
	}
	rate := *yearlySalary / YearlyHours
	return &rate
}

// AdjustmentFactor is the salary-dependent component of the adjusted rate.
func AdjustmentFactor(hourlyRate float64) float64 {
	return (120 * hourlyRate) / YearlyHours
}

// AdjustedPay computes the prevailing-wage shortfall owed for a block of
// hours. Returns nil when the salary has not been set; callers must keep
// that state distinct from a computed zero.
func AdjustedPay(hoursWorked float64, yearlySalary *float64) *float64 {
	hourlyRate := HourlyRate(yearlySalary)
	if hourlyRate == nil {
		return nil
	}
	adjustedRate := BaseRate - (*hourlyRate + FixedDeduction + AdjustmentFactor(*hourlyRate))
	pay := adjustedRate * hoursWorked
	return &pay
}

// CACCost is the flat remittance cost for a block of hours. It has no
// salary dependency and is always computable.
func CACCost(hoursWorked float64) float64 {
	return hoursWorked * CACRate
}
