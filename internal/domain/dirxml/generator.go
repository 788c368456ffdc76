package dirxml

import (
	"encoding/xml"
	"fmt"
	"time"

	"dirtrack/internal/domain/employee"
	"dirtrack/internal/domain/payperiod"
	"dirtrack/internal/domain/ticket"
	"dirtrack/internal/domain/wage"
)

// PendingSalary marks figures that cannot be computed until the employee's
// salary is set. It is rendered in place of a number; an absent salary must
// never surface as 0.00.
const PendingSalary = "Pending Salary"

const formulaText = "AdjustedRate = BaseRate - (HourlyRate + FixedDeduction + (120 * HourlyRate) / 2080); AdjustedPay = AdjustedRate * HoursWorked"

// CheckFields are the optional payroll check figures echoed into the
// document verbatim.
type CheckFields struct {
	CheckNumber string  `json:"checkNumber"`
	GrossWages  float64 `json:"grossWages"`
	FederalTax  float64 `json:"federalTax"`
	FICA        float64 `json:"fica"`
	StateTax    float64 `json:"stateTax"`
	SDI         float64 `json:"sdi"`
	Savings     float64 `json:"savings"`
	NetTotal    float64 `json:"netTotal"`
}

// Generate renders the period-level DIR submission for one employee. The
// ticket slice must already be filtered to the period's date range and
// sorted ascending by worked date (ticket.Store.ListForEmployeePeriod
// guarantees both).
func Generate(period payperiod.Period, emp employee.Employee, tickets []ticket.Ticket, check *CheckFields, generatedAt time.Time) ([]byte, error) {
	doc := Document{
		PayPeriod: PayPeriodBlock{
			Label:     period.Label(),
			StartDate: period.Start().Format("2006-01-02"),
			EndDate:   period.End().Format("2006-01-02"),
		},
		Employee:    employeeBlock(emp),
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
	}

	if check != nil {
		doc.CheckInformation = &CheckBlock{
			CheckNumber: check.CheckNumber,
			GrossWages:  money(check.GrossWages),
			FederalTax:  money(check.FederalTax),
			FICA:        money(check.FICA),
			StateTax:    money(check.StateTax),
			SDI:         money(check.SDI),
			Savings:     money(check.Savings),
			NetTotal:    money(check.NetTotal),
		}
	}

	doc.WageCalculation = WageBlock{
		BaseRate:       money(wage.BaseRate),
		FixedDeduction: money(wage.FixedDeduction),
		Formula:        formulaText,
	}
	if rate := wage.HourlyRate(emp.Salary); rate != nil {
		doc.WageCalculation.AdjustmentFactor = fmt.Sprintf("%.4f", wage.AdjustmentFactor(*rate))
	}

	var totalHours float64
	var totalAdjusted *float64 = new(float64)
	seenProjects := map[string]bool{}
	seenNumbers := map[string]bool{}
	for _, t := range tickets {
		totalHours += t.HoursWorked
		pay := wage.AdjustedPay(t.HoursWorked, emp.Salary)
		if pay == nil {
			totalAdjusted = nil
		} else if totalAdjusted != nil {
			*totalAdjusted += *pay
		}

		if !seenProjects[t.ProjectTitle] {
			seenProjects[t.ProjectTitle] = true
			doc.Projects.Projects = append(doc.Projects.Projects, t.ProjectTitle)
		}
		if !seenNumbers[t.DIRNumber] {
			seenNumbers[t.DIRNumber] = true
			doc.DIRNumbers.Numbers = append(doc.DIRNumbers.Numbers, t.DIRNumber)
		}

		block := TicketBlock{
			Date:      t.DateWorked.Format("2006-01-02"),
			DIRNumber: t.DIRNumber,
			Project:   t.ProjectTitle,
			Hours:     money(t.HoursWorked),
		}
		if pay != nil {
			block.AdjustedPay = money(*pay)
		} else {
			block.PayStatus = PendingSalary
		}
		doc.TicketDetails.Tickets = append(doc.TicketDetails.Tickets, block)
	}

	doc.WorkSummary = SummaryBlock{
		TotalHours:   money(totalHours),
		TotalCACCost: money(wage.CACCost(totalHours)),
	}
	if totalAdjusted != nil {
		doc.WorkSummary.TotalAdjustedPay = money(*totalAdjusted)
	} else {
		doc.WorkSummary.PayStatus = PendingSalary
	}

	return marshal(doc)
}

// GenerateTicket renders the per-ticket variant.
func GenerateTicket(t ticket.WithEmployee, generatedAt time.Time) ([]byte, error) {
	doc := TicketDocument{
		Header: TicketHeader{
			SubmissionDate: generatedAt.UTC().Format("2006-01-02"),
			DIRNumber:      t.DIRNumber,
		},
		Project:  TicketProject{Title: t.ProjectTitle},
		Employee: employeeBlock(t.Employee),
		WorkDetails: TicketWorkDetails{
			DateWorked:  t.DateWorked.Format("2006-01-02"),
			HoursWorked: money(t.HoursWorked),
		},
		Document:    TicketAttachment{DocumentURL: t.DocumentURL},
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
	}
	if pay := wage.AdjustedPay(t.HoursWorked, t.Employee.Salary); pay != nil {
		doc.WorkDetails.AdjustedPay = money(*pay)
	} else {
		doc.WorkDetails.PayStatus = PendingSalary
	}
	return marshal(doc)
}

func employeeBlock(emp employee.Employee) EmployeeBlock {
	block := EmployeeBlock{
		Name:  emp.DisplayName(),
		Email: emp.Email,
	}
	if emp.Salary != nil {
		block.YearlySalary = money(*emp.Salary)
		if rate := wage.HourlyRate(emp.Salary); rate != nil {
			block.HourlyRate = money(*rate)
		}
	} else {
		block.PayStatus = PendingSalary
	}
	return block
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func marshal(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
