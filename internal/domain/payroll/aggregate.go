package payroll

import (
	"sort"
	"strings"

	"dirtrack/internal/domain/employee"
	"dirtrack/internal/domain/payperiod"
	"dirtrack/internal/domain/ticket"
	"dirtrack/internal/domain/wage"
)

type groupKey struct {
	period     payperiod.Period
	employeeID string
}

// BuildPeriods groups tickets by (pay period, employee), sums hours and
// adjusted pay, and attaches the persisted workflow status for each group.
// Pure: the caller supplies the full ticket set (pre-filtered or not) and
// the known EmployeePeriod records.
//
// Adjusted pay follows strict all-or-nothing propagation. Salary is a
// property of the employee, so a single ticket with an unknown salary makes
// the employee's entire period total nil, and one nil employee total makes
// the period rollup nil. CAC cost has no salary dependency and is always
// summed. Intermediate sums keep full float64 precision; rounding to two
// decimals happens only at serialization boundaries.
func BuildPeriods(tickets []ticket.WithEmployee, periods []EmployeePeriod) []PeriodGroup {
	statusIndex := make(map[groupKey]EmployeePeriod, len(periods))
	for _, ep := range periods {
		key := groupKey{
			period:     payperiod.Period{Year: ep.Year, Month: ep.Month, Half: ep.Half},
			employeeID: ep.EmployeeID,
		}
		statusIndex[key] = ep
	}

	groups := make(map[groupKey]*EmployeeGroup)
	var order []groupKey
	for _, t := range tickets {
		key := groupKey{period: payperiod.FromDate(t.DateWorked), employeeID: t.EmployeeID}
		group, ok := groups[key]
		if !ok {
			group = &EmployeeGroup{Employee: t.Employee, Status: StatusPending}
			if ep, found := statusIndex[key]; found {
				group.Status = ep.Status
				group.HourlyWage = ep.HourlyWage
				group.EmployeePeriodID = ep.ID
			}
			groups[key] = group
			order = append(order, key)
		}
		group.Tickets = append(group.Tickets, t.Ticket)
		group.TotalHours += t.HoursWorked
		group.TotalCACCost += wage.CACCost(t.HoursWorked)
	}

	for _, key := range order {
		group := groups[key]
		sort.SliceStable(group.Tickets, func(i, j int) bool {
			return group.Tickets[i].DateWorked.Before(group.Tickets[j].DateWorked)
		})
		group.TotalAdjustedPay = sumAdjustedPay(group.Tickets, group.Employee.Salary)
	}

	byPeriod := make(map[payperiod.Period]*PeriodGroup)
	var periodOrder []payperiod.Period
	for _, key := range order {
		pg, ok := byPeriod[key.period]
		if !ok {
			pg = &PeriodGroup{
				Period: key.period,
				Key:    key.period.Key(),
				Label:  key.period.Label(),
			}
			byPeriod[key.period] = pg
			periodOrder = append(periodOrder, key.period)
		}
		pg.Employees = append(pg.Employees, *groups[key])
	}

	result := make([]PeriodGroup, 0, len(periodOrder))
	for _, p := range periodOrder {
		pg := byPeriod[p]
		sort.SliceStable(pg.Employees, func(i, j int) bool {
			return strings.ToLower(pg.Employees[i].Employee.DisplayName()) <
				strings.ToLower(pg.Employees[j].Employee.DisplayName())
		})
		pg.TotalAdjustedPay = rollupAdjustedPay(pg.Employees)
		for _, emp := range pg.Employees {
			pg.TotalHours += emp.TotalHours
			pg.TotalCACCost += emp.TotalCACCost
		}
		result = append(result, *pg)
	}

	// newest period first: year, then month, then half, descending
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Period, result[j].Period
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		return a.Half > b.Half
	})
	return result
}

// GroupFor builds one employee's period aggregate from tickets already
// filtered to the period's date range, attaching the persisted record when
// one exists.
func GroupFor(emp employee.Employee, tickets []ticket.Ticket, ep *EmployeePeriod) EmployeeGroup {
	group := EmployeeGroup{Employee: emp, Tickets: tickets, Status: StatusPending}
	if ep != nil {
		group.Status = ep.Status
		group.HourlyWage = ep.HourlyWage
		group.EmployeePeriodID = ep.ID
	}
	for _, t := range tickets {
		group.TotalHours += t.HoursWorked
		group.TotalCACCost += wage.CACCost(t.HoursWorked)
	}
	group.TotalAdjustedPay = sumAdjustedPay(tickets, emp.Salary)
	return group
}

func sumAdjustedPay(tickets []ticket.Ticket, salary *float64) *float64 {
	var total float64
	for _, t := range tickets {
		pay := wage.AdjustedPay(t.HoursWorked, salary)
		if pay == nil {
			return nil
		}
		total += *pay
	}
	return &total
}

func rollupAdjustedPay(employees []EmployeeGroup) *float64 {
	var total float64
	for _, emp := range employees {
		if emp.TotalAdjustedPay == nil {
			return nil
		}
		total += *emp.TotalAdjustedPay
	}
	return &total
}
