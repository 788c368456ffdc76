package employee

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Employee is a profile row. Salary is the yearly salary; nil means it has
// not been set yet, which is a first-class state distinct from zero.
type Employee struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	Salary    *float64  `json:"salary"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayName is the name shown in listings and reports, falling back to
// the email address when no full name was captured.
func (e Employee) DisplayName() string {
	if e.FullName != "" {
		return e.FullName
	}
	return e.Email
}
