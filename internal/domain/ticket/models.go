package ticket

import (
	"time"

	"dirtrack/internal/domain/employee"
)

const (
	// StatusPending is the initial ticket status.
	StatusPending = "pending"
	// StatusCompleted is set once a supporting document is attached.
	StatusCompleted = "completed"
)

// Ticket is one employee's recorded work entry for one date on one DIR
// project. Immutable after creation except for status and document URL.
type Ticket struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	DIRNumber    string    `json:"dirNumber"`
	ProjectTitle string    `json:"projectTitle"`
	DateWorked   time.Time `json:"dateWorked"`
	HoursWorked  float64   `json:"hoursWorked"`
	Status       string    `json:"status"`
	DocumentURL  string    `json:"documentUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WithEmployee joins a ticket with its owning profile, the shape the
// period aggregator and the admin listings work over.
type WithEmployee struct {
	Ticket
	Employee employee.Employee `json:"employee"`
}
