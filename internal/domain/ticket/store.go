package ticket

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, employeeID, dirNumber, projectTitle string, dateWorked time.Time, hoursWorked float64) (string, error) {
	if hoursWorked <= 0 {
		return "", ErrInvalidHours
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO tickets (employee_id, dir_number, project_title, date_worked, hours_worked, status)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, employeeID, dirNumber, projectTitle, dateWorked, hoursWorked, StatusPending).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (WithEmployee, error) {
	var t WithEmployee
	err := s.DB.QueryRow(ctx, `
    SELECT t.id, t.employee_id, t.dir_number, t.project_title, t.date_worked,
           t.hours_worked, t.status, COALESCE(t.document_url, ''),
           t.created_at, t.updated_at,
           e.id, e.email, COALESCE(e.full_name, ''), e.role, e.salary, e.created_at, e.updated_at
    FROM tickets t
    JOIN profiles e ON e.id = t.employee_id
    WHERE t.id = $1
  `, id).Scan(
		&t.ID, &t.EmployeeID, &t.DIRNumber, &t.ProjectTitle, &t.DateWorked,
		&t.HoursWorked, &t.Status, &t.DocumentURL, &t.CreatedAt, &t.UpdatedAt,
		&t.Employee.ID, &t.Employee.Email, &t.Employee.FullName, &t.Employee.Role,
		&t.Employee.Salary, &t.Employee.CreatedAt, &t.Employee.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return WithEmployee{}, ErrNotFound
	}
	if err != nil {
		return WithEmployee{}, err
	}
	return t, nil
}

// ListByEmployee returns an employee's own tickets, newest worked date first.
func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Ticket, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, dir_number, project_title, date_worked,
           hours_worked, status, COALESCE(document_url, ''), created_at, updated_at
    FROM tickets
    WHERE employee_id = $1
    ORDER BY date_worked DESC, created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// ListAll returns every ticket joined with its owning profile, newest
// worked date first. The period aggregator consumes this shape.
func (s *Store) ListAll(ctx context.Context) ([]WithEmployee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT t.id, t.employee_id, t.dir_number, t.project_title, t.date_worked,
           t.hours_worked, t.status, COALESCE(t.document_url, ''),
           t.created_at, t.updated_at,
           e.id, e.email, COALESCE(e.full_name, ''), e.role, e.salary, e.created_at, e.updated_at
    FROM tickets t
    JOIN profiles e ON e.id = t.employee_id
    ORDER BY t.date_worked DESC, t.created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []WithEmployee
	for rows.Next() {
		var t WithEmployee
		if err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.DIRNumber, &t.ProjectTitle, &t.DateWorked,
			&t.HoursWorked, &t.Status, &t.DocumentURL, &t.CreatedAt, &t.UpdatedAt,
			&t.Employee.ID, &t.Employee.Email, &t.Employee.FullName, &t.Employee.Role,
			&t.Employee.Salary, &t.Employee.CreatedAt, &t.Employee.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// ListForEmployeePeriod returns one employee's tickets inside a date range,
// ascending by worked date. The XML generator depends on this ordering.
func (s *Store) ListForEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) ([]Ticket, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, dir_number, project_title, date_worked,
           hours_worked, status, COALESCE(document_url, ''), created_at, updated_at
    FROM tickets
    WHERE employee_id = $1 AND date_worked >= $2 AND date_worked <= $3
    ORDER BY date_worked ASC, created_at ASC
  `, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// AttachDocument records an uploaded document URL and marks the ticket
// completed.
func (s *Store) AttachDocument(ctx context.Context, id, documentURL string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE tickets SET document_url = $1, status = $2, updated_at = now() WHERE id = $3
  `, documentURL, StatusCompleted, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTickets(rows pgx.Rows) ([]Ticket, error) {
	var tickets []Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.DIRNumber, &t.ProjectTitle, &t.DateWorked,
			&t.HoursWorked, &t.Status, &t.DocumentURL, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
