package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dirtrack/internal/domain/payperiod"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// UpsertStatus records a workflow transition for (employee, period). The
// write is a single INSERT ... ON CONFLICT so two admins acting on the same
// tuple concurrently cannot lose an update, and regenerating XML for the
// same tuple never creates a duplicate row. A nil hourlyWage leaves any
// previously snapshotted wage untouched.
func (s *Store) UpsertStatus(ctx context.Context, employeeID string, period payperiod.Period, status string, hourlyWage *float64) (EmployeePeriod, error) {
	if !ValidStatus(status) {
		return EmployeePeriod{}, ErrInvalidStatus
	}
	var ep EmployeePeriod
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_periods (employee_id, year, month, half, status, hourly_wage)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (employee_id, year, month, half)
    DO UPDATE SET
      status = EXCLUDED.status,
      hourly_wage = COALESCE(EXCLUDED.hourly_wage, employee_periods.hourly_wage),
      updated_at = now()
    RETURNING id, employee_id, year, month, half, status, hourly_wage, created_at, updated_at
  `, employeeID, period.Year, period.Month, period.Half, status, hourlyWage).Scan(
		&ep.ID, &ep.EmployeeID, &ep.Year, &ep.Month, &ep.Half,
		&ep.Status, &ep.HourlyWage, &ep.CreatedAt, &ep.UpdatedAt,
	)
	if err != nil {
		return EmployeePeriod{}, err
	}
	return ep, nil
}

func (s *Store) Get(ctx context.Context, employeeID string, period payperiod.Period) (EmployeePeriod, error) {
	var ep EmployeePeriod
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, year, month, half, status, hourly_wage, created_at, updated_at
    FROM employee_periods
    WHERE employee_id = $1 AND year = $2 AND month = $3 AND half = $4
  `, employeeID, period.Year, period.Month, period.Half).Scan(
		&ep.ID, &ep.EmployeeID, &ep.Year, &ep.Month, &ep.Half,
		&ep.Status, &ep.HourlyWage, &ep.CreatedAt, &ep.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeePeriod{}, ErrNotFound
	}
	if err != nil {
		return EmployeePeriod{}, err
	}
	return ep, nil
}

func (s *Store) List(ctx context.Context) ([]EmployeePeriod, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, year, month, half, status, hourly_wage, created_at, updated_at
    FROM employee_periods
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []EmployeePeriod
	for rows.Next() {
		var ep EmployeePeriod
		if err := rows.Scan(
			&ep.ID, &ep.EmployeeID, &ep.Year, &ep.Month, &ep.Half,
			&ep.Status, &ep.HourlyWage, &ep.CreatedAt, &ep.UpdatedAt,
		); err != nil {
			return nil, err
		}
		periods = append(periods, ep)
	}
	return periods, rows.Err()
}
