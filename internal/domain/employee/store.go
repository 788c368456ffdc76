package employee

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetByID(ctx context.Context, id string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, COALESCE(full_name, ''), role, salary, created_at, updated_at
    FROM profiles
    WHERE id = $1
  `, id).Scan(&emp.ID, &emp.Email, &emp.FullName, &emp.Role, &emp.Salary, &emp.CreatedAt, &emp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, email, COALESCE(full_name, ''), role, salary, created_at, updated_at
    FROM profiles
    ORDER BY COALESCE(NULLIF(full_name, ''), email)
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.Email, &emp.FullName, &emp.Role, &emp.Salary, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// Create inserts a profile. ID may be supplied by the caller (import
// provisioning) so the in-memory name index stays consistent.
func (s *Store) Create(ctx context.Context, id, email, fullName, role string, passwordHash string) error {
	if role != RoleAdmin && role != RoleEmployee {
		return ErrInvalidRole
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO profiles (id, email, full_name, role, password_hash)
    VALUES ($1, $2, $3, $4, $5)
  `, id, email, fullName, role, passwordHash)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

// UpdateSalary sets or clears the yearly salary. A nil salary returns the
// employee to the "not yet set" state.
func (s *Store) UpdateSalary(ctx context.Context, id string, salary *float64) error {
	if salary != nil && *salary < 0 {
		return ErrInvalidSalary
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE profiles SET salary = $1, updated_at = now() WHERE id = $2
  `, salary, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IDsByFullName returns a lookup from lower-cased full name to profile id,
// used by the CSV importer to match people case-insensitively. Two
// profiles with the same full name map to whichever row scans last.
func (s *Store) IDsByFullName(ctx context.Context) (map[string]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, full_name FROM profiles WHERE full_name IS NOT NULL AND full_name <> ''
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[string]string)
	for rows.Next() {
		var id, fullName string
		if err := rows.Scan(&id, &fullName); err != nil {
			return nil, err
		}
		index[strings.ToLower(fullName)] = id
	}
	return index, rows.Err()
}

// CredentialsByEmail returns the profile id, role and password hash used by
// the login flow.
func (s *Store) CredentialsByEmail(ctx context.Context, email string) (id, role, passwordHash string, err error) {
	err = s.DB.QueryRow(ctx, `
    SELECT id, role, password_hash FROM profiles WHERE lower(email) = lower($1)
  `, email).Scan(&id, &role, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", "", ErrNotFound
	}
	return id, role, passwordHash, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
