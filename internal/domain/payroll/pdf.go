package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"dirtrack/internal/domain/payperiod"
	"dirtrack/internal/domain/wage"
)

// PeriodPDF renders a printable summary of one employee's pay period. Pay
// figures that depend on an unset salary are printed as "Pending Salary",
// never as a zero amount.
func PeriodPDF(period payperiod.Period, group EmployeeGroup) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Pay Period Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", group.Employee.DisplayName()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", group.Employee.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s (%s to %s)",
		period.Label(), period.Start().Format("2006-01-02"), period.End().Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", StatusLabels[group.Status]))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(28, 8, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(32, 8, "DIR #", "1", 0, "", false, 0, "")
	pdf.CellFormat(70, 8, "Project", "1", 0, "", false, 0, "")
	pdf.CellFormat(20, 8, "Hours", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Adj. Pay", "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range group.Tickets {
		pay := "Pending Salary"
		if p := wage.AdjustedPay(t.HoursWorked, group.Employee.Salary); p != nil {
			pay = fmt.Sprintf("%.2f", *p)
		}
		pdf.CellFormat(28, 7, t.DateWorked.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(32, 7, t.DIRNumber, "1", 0, "", false, 0, "")
		pdf.CellFormat(70, 7, t.ProjectTitle, "1", 0, "", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%.2f", t.HoursWorked), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, pay, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total Hours: %.2f", group.TotalHours))
	pdf.Ln(7)
	if group.TotalAdjustedPay != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Total Adjusted Pay: %.2f", *group.TotalAdjustedPay))
	} else {
		pdf.Cell(0, 8, "Total Adjusted Pay: Pending Salary")
	}
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total CAC Cost: %.2f", group.TotalCACCost))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
