package payroll

import (
	"math"
	"testing"
	"time"

	"dirtrack/internal/domain/employee"
	"dirtrack/internal/domain/ticket"
)

func fl(v float64) *float64 { return &v }

func tk(id, employeeID string, emp employee.Employee, day time.Time, hours float64) ticket.WithEmployee {
	return ticket.WithEmployee{
		Ticket: ticket.Ticket{
			ID:           id,
			EmployeeID:   employeeID,
			DIRNumber:    "DIR100",
			ProjectTitle: "Project",
			DateWorked:   day,
			HoursWorked:  hours,
			Status:       ticket.StatusPending,
		},
		Employee: emp,
	}
}

func TestBuildPeriodsGroupsAndSums(t *testing.T) {
	alice := employee.Employee{ID: "a", Email: "alice@example.com", FullName: "Alice Adams", Salary: fl(104000)}

	tickets := []ticket.WithEmployee{
		tk("t1", "a", alice, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 8),
		tk("t2", "a", alice, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 8),
		tk("t3", "a", alice, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), 4),
	}

	groups := BuildPeriods(tickets, nil)
	if len(groups) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(groups))
	}
	// newest first: second half of March before first half
	if groups[0].Key != "2024-03-2" || groups[1].Key != "2024-03-1" {
		t.Fatalf("unexpected period order: %s, %s", groups[0].Key, groups[1].Key)
	}

	first := groups[1]
	if len(first.Employees) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(first.Employees))
	}
	emp := first.Employees[0]
	if emp.TotalHours != 16 {
		t.Fatalf("expected 16 hours, got %v", emp.TotalHours)
	}
	if emp.TotalAdjustedPay == nil {
		t.Fatal("expected a concrete adjusted pay total")
	}
	// 19.3653... per hour shortfall over 16 hours
	if math.Abs(*emp.TotalAdjustedPay-309.85) > 0.005 {
		t.Fatalf("expected ~309.85, got %v", *emp.TotalAdjustedPay)
	}
	if emp.TotalCACCost != 12.8 {
		t.Fatalf("expected CAC cost 12.8, got %v", emp.TotalCACCost)
	}
	if emp.Status != StatusPending {
		t.Fatalf("expected default status pending, got %s", emp.Status)
	}
}

func TestBuildPeriodsAbsentSalaryPropagates(t *testing.T) {
	alice := employee.Employee{ID: "a", Email: "alice@example.com", FullName: "Alice Adams", Salary: fl(104000)}
	bob := employee.Employee{ID: "b", Email: "bob@example.com", FullName: "Bob Brown"} // salary never set

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	tickets := []ticket.WithEmployee{
		tk("t1", "a", alice, day, 8),
		tk("t2", "b", bob, day, 8),
	}

	groups := BuildPeriods(tickets, nil)
	if len(groups) != 1 {
		t.Fatalf("expected 1 period, got %d", len(groups))
	}
	pg := groups[0]

	var aliceGroup, bobGroup *EmployeeGroup
	for i := range pg.Employees {
		switch pg.Employees[i].Employee.ID {
		case "a":
			aliceGroup = &pg.Employees[i]
		case "b":
			bobGroup = &pg.Employees[i]
		}
	}
	if aliceGroup == nil || bobGroup == nil {
		t.Fatal("missing employee groups")
	}
	if aliceGroup.TotalAdjustedPay == nil {
		t.Fatal("expected concrete total for employee with salary")
	}
	if bobGroup.TotalAdjustedPay != nil {
		t.Fatalf("expected nil total for unset salary, got %v", *bobGroup.TotalAdjustedPay)
	}
	// one nil employee invalidates the period rollup
	if pg.TotalAdjustedPay != nil {
		t.Fatalf("expected nil period rollup, got %v", *pg.TotalAdjustedPay)
	}
	// CAC cost is salary-independent and still summed
	if pg.TotalCACCost != 12.8 {
		t.Fatalf("expected period CAC cost 12.8, got %v", pg.TotalCACCost)
	}
}

func TestBuildPeriodsSortsEmployeesByDisplayName(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	zoe := employee.Employee{ID: "z", Email: "zoe@example.com", FullName: "Zoe Young"}
	noName := employee.Employee{ID: "n", Email: "aaron@example.com"} // falls back to email

	groups := BuildPeriods([]ticket.WithEmployee{
		tk("t1", "z", zoe, day, 4),
		tk("t2", "n", noName, day, 4),
	}, nil)

	pg := groups[0]
	if pg.Employees[0].Employee.ID != "n" || pg.Employees[1].Employee.ID != "z" {
		t.Fatalf("unexpected employee order: %s, %s",
			pg.Employees[0].Employee.ID, pg.Employees[1].Employee.ID)
	}
}

func TestBuildPeriodsAttachesWorkflowStatus(t *testing.T) {
	alice := employee.Employee{ID: "a", Email: "alice@example.com", FullName: "Alice Adams"}
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	wageSnapshot := 42.5
	groups := BuildPeriods(
		[]ticket.WithEmployee{tk("t1", "a", alice, day, 8)},
		[]EmployeePeriod{{
			ID:         "ep1",
			EmployeeID: "a",
			Year:       2024,
			Month:      2,
			Half:       1,
			Status:     StatusAwaitingPay,
			HourlyWage: &wageSnapshot,
		}},
	)

	emp := groups[0].Employees[0]
	if emp.Status != StatusAwaitingPay {
		t.Fatalf("expected awaiting_pay, got %s", emp.Status)
	}
	if emp.EmployeePeriodID != "ep1" {
		t.Fatalf("expected employee period id ep1, got %q", emp.EmployeePeriodID)
	}
	if emp.HourlyWage == nil || *emp.HourlyWage != 42.5 {
		t.Fatalf("expected hourly wage snapshot 42.5, got %v", emp.HourlyWage)
	}
}

func TestBuildPeriodsTicketsAscendingByDate(t *testing.T) {
	alice := employee.Employee{ID: "a", Email: "alice@example.com", FullName: "Alice Adams"}
	groups := BuildPeriods([]ticket.WithEmployee{
		tk("t2", "a", alice, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 4),
		tk("t1", "a", alice, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 4),
	}, nil)

	tickets := groups[0].Employees[0].Tickets
	if tickets[0].ID != "t1" || tickets[1].ID != "t2" {
		t.Fatalf("expected ascending date order, got %s, %s", tickets[0].ID, tickets[1].ID)
	}
}
