// Package dirxml renders the fixed-schema DIR submission documents. The
// generator is pure; persisting the ready_for_dir workflow transition is
// the caller's job. All text content goes through encoding/xml, so names
// and project titles are escaped before interpolation.
package dirxml

import "encoding/xml"

// Document is the period-level submission, root <DIRSubmission>.
type Document struct {
	XMLName          xml.Name       `xml:"DIRSubmission"`
	PayPeriod        PayPeriodBlock `xml:"PayPeriod"`
	Employee         EmployeeBlock  `xml:"Employee"`
	CheckInformation *CheckBlock    `xml:"CheckInformation,omitempty"`
	WageCalculation  WageBlock      `xml:"WageCalculation"`
	WorkSummary      SummaryBlock   `xml:"WorkSummary"`
	Projects         ProjectsBlock  `xml:"Projects"`
	DIRNumbers       NumbersBlock   `xml:"DIRNumbers"`
	TicketDetails    DetailsBlock   `xml:"TicketDetails"`
	GeneratedAt      string         `xml:"GeneratedAt"`
}

type PayPeriodBlock struct {
	Label     string `xml:"Label"`
	StartDate string `xml:"StartDate"`
	EndDate   string `xml:"EndDate"`
}

type EmployeeBlock struct {
	Name         string `xml:"Name"`
	Email        string `xml:"Email"`
	YearlySalary string `xml:"YearlySalary,omitempty"`
	HourlyRate   string `xml:"HourlyRate,omitempty"`
	PayStatus    string `xml:"PayStatus,omitempty"`
}

// CheckBlock echoes the payroll check fields verbatim, each formatted to
// two decimals; the check number is literal text.
type CheckBlock struct {
	CheckNumber string `xml:"CheckNumber"`
	GrossWages  string `xml:"GrossWages"`
	FederalTax  string `xml:"FederalTax"`
	FICA        string `xml:"FICA"`
	StateTax    string `xml:"StateTax"`
	SDI         string `xml:"SDI"`
	Savings     string `xml:"Savings"`
	NetTotal    string `xml:"NetTotal"`
}

// WageBlock is a reporting/audit aid echoing the formula constants; no
// consumer re-parses it.
type WageBlock struct {
	BaseRate         string `xml:"BaseRate"`
	FixedDeduction   string `xml:"FixedDeduction"`
	AdjustmentFactor string `xml:"AdjustmentFactor,omitempty"`
	Formula          string `xml:"Formula"`
}

type SummaryBlock struct {
	TotalHours       string `xml:"TotalHours"`
	TotalAdjustedPay string `xml:"TotalAdjustedPay,omitempty"`
	TotalCACCost     string `xml:"TotalCACCost"`
	PayStatus        string `xml:"PayStatus,omitempty"`
}

type ProjectsBlock struct {
	Projects []string `xml:"Project"`
}

type NumbersBlock struct {
	Numbers []string `xml:"DIRNumber"`
}

type DetailsBlock struct {
	Tickets []TicketBlock `xml:"Ticket"`
}

type TicketBlock struct {
	Date        string `xml:"Date"`
	DIRNumber   string `xml:"DIRNumber"`
	Project     string `xml:"Project"`
	Hours       string `xml:"Hours"`
	AdjustedPay string `xml:"AdjustedPay,omitempty"`
	PayStatus   string `xml:"PayStatus,omitempty"`
}

// TicketDocument is the simpler per-ticket variant.
type TicketDocument struct {
	XMLName     xml.Name          `xml:"DIRSubmission"`
	Header      TicketHeader      `xml:"Header"`
	Project     TicketProject     `xml:"Project"`
	Employee    EmployeeBlock     `xml:"Employee"`
	WorkDetails TicketWorkDetails `xml:"WorkDetails"`
	Document    TicketAttachment  `xml:"Documentation"`
	GeneratedAt string            `xml:"GeneratedAt"`
}

type TicketHeader struct {
	SubmissionDate string `xml:"SubmissionDate"`
	DIRNumber      string `xml:"DIRNumber"`
}

type TicketProject struct {
	Title string `xml:"Title"`
}

type TicketWorkDetails struct {
	DateWorked  string `xml:"DateWorked"`
	HoursWorked string `xml:"HoursWorked"`
	AdjustedPay string `xml:"AdjustedPay,omitempty"`
	PayStatus   string `xml:"PayStatus,omitempty"`
}

type TicketAttachment struct {
	DocumentURL string `xml:"DocumentURL"`
}
