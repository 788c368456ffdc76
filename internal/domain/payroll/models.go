package payroll

import (
	"time"

	"dirtrack/internal/domain/employee"
	"dirtrack/internal/domain/payperiod"
	"dirtrack/internal/domain/ticket"
)

// EmployeePeriod is the persisted workflow record for one employee in one
// semi-monthly pay period. It is created lazily by the first status
// transition or XML generation for that tuple and upserted thereafter;
// (EmployeeID, Year, Month, Half) is unique.
type EmployeePeriod struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Year       int       `json:"year"`
	Month      int       `json:"month"` // zero-based, matches payperiod.Period
	Half       int       `json:"half"`
	Status     string    `json:"status"`
	HourlyWage *float64  `json:"hourlyWage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// EmployeeGroup is one employee's aggregate inside a period.
// TotalAdjustedPay is nil whenever the employee's salary has not been set:
// a partial sum over the defined subset would misstate money owed, so one
// unknown salary invalidates the whole total.
type EmployeeGroup struct {
	Employee         employee.Employee `json:"employee"`
	Tickets          []ticket.Ticket   `json:"tickets"`
	TotalHours       float64           `json:"totalHours"`
	TotalAdjustedPay *float64          `json:"totalAdjustedPay"`
	TotalCACCost     float64           `json:"totalCacCost"`
	Status           string            `json:"status"`
	HourlyWage       *float64          `json:"hourlyWage,omitempty"`
	EmployeePeriodID string            `json:"employeePeriodId,omitempty"`
}

// PeriodGroup is one pay period's rollup across employees. The same
// all-or-nothing rule applies one level up: TotalAdjustedPay is nil if any
// employee in the period has a nil total. TotalCACCost has no salary
// dependency and is always summed.
type PeriodGroup struct {
	Period           payperiod.Period `json:"period"`
	Key              string           `json:"key"`
	Label            string           `json:"label"`
	Employees        []EmployeeGroup  `json:"employees"`
	TotalHours       float64          `json:"totalHours"`
	TotalAdjustedPay *float64         `json:"totalAdjustedPay"`
	TotalCACCost     float64          `json:"totalCacCost"`
}
