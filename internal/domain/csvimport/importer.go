package csvimport

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"dirtrack/internal/domain/employee"
	"dirtrack/internal/domain/ticket"
)

// Result reports what an import run actually did. Failures are per
// row/person; one bad record never aborts the batch, and the counts
// reflect successes only.
type Result struct {
	RowsParsed       int        `json:"rowsParsed"`
	TicketsCreated   int        `json:"ticketsCreated"`
	EmployeesCreated int        `json:"employeesCreated"`
	Failures         []RowError `json:"failures,omitempty"`
}

type RowError struct {
	Row     int    `json:"row"`
	Person  string `json:"person,omitempty"`
	Message string `json:"message"`
}

type Importer struct {
	Employees *employee.Store
	Tickets   *ticket.Store
}

func NewImporter(employees *employee.Store, tickets *ticket.Store) *Importer {
	return &Importer{Employees: employees, Tickets: tickets}
}

// Run parses the CSV text and materializes one ticket per person per row.
// A row with three people and eight hours yields three tickets of eight
// hours each; each person worked those hours. Unmatched person names are
// provisioned as new employees with a placeholder email and no salary.
// Matching is by exact case-insensitive full name, so two real people with
// identical names collide; that is a documented limitation of the export,
// not something the importer guesses around.
func (imp *Importer) Run(ctx context.Context, csvText string) (Result, error) {
	rows, parseErrs := Parse(csvText)
	if len(rows) == 0 && len(parseErrs) > 0 {
		// header-level failure: nothing importable
		return Result{}, parseErrs[0]
	}

	result := Result{RowsParsed: len(rows)}
	for _, err := range parseErrs {
		result.Failures = append(result.Failures, RowError{Message: err.Error()})
	}

	nameIndex, err := imp.Employees.IDsByFullName(ctx)
	if err != nil {
		return Result{}, err
	}

	for rowNum, row := range rows {
		dateWorked, err := time.Parse("2006-01-02", row.DateWorked)
		if err != nil {
			result.Failures = append(result.Failures, RowError{Row: rowNum + 1, Message: "invalid date " + row.DateWorked})
			continue
		}

		for _, person := range row.People {
			employeeID, ok := nameIndex[strings.ToLower(person)]
			if !ok {
				employeeID = uuid.NewString()
				email := placeholderEmail(person)
				if err := imp.Employees.Create(ctx, employeeID, email, person, employee.RoleEmployee, ""); err != nil {
					log.Printf("import: create employee %q failed: %v", person, err)
					result.Failures = append(result.Failures, RowError{Row: rowNum + 1, Person: person, Message: err.Error()})
					continue
				}
				nameIndex[strings.ToLower(person)] = employeeID
				result.EmployeesCreated++
			}

			if _, err := imp.Tickets.Create(ctx, employeeID, row.DIRNumber, row.ProjectTitle, dateWorked, row.TotalHours); err != nil {
				log.Printf("import: create ticket for %q failed: %v", person, err)
				result.Failures = append(result.Failures, RowError{Row: rowNum + 1, Person: person, Message: err.Error()})
				continue
			}
			result.TicketsCreated++
		}
	}

	return result, nil
}

// placeholderEmail builds the synthetic address for auto-provisioned
// employees, e.g. "Jane Q Smith" -> "jane.q.smith@placeholder.local".
func placeholderEmail(fullName string) string {
	name := strings.ToLower(strings.TrimSpace(fullName))
	name = strings.Join(strings.Fields(name), ".")
	return name + "@placeholder.local"
}
