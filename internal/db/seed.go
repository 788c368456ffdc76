package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"dirtrack/internal/auth"
	"dirtrack/internal/domain/employee"
	"dirtrack/internal/platform/config"
)

// Seed provisions the bootstrap admin profile when one does not exist.
// Safe to run on every start.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx,
		"SELECT COUNT(1) FROM profiles WHERE lower(email) = lower($1)",
		cfg.SeedAdminEmail,
	).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO profiles (email, full_name, role, password_hash)
    VALUES ($1, $2, $3, $4)
  `, cfg.SeedAdminEmail, cfg.SeedAdminName, employee.RoleAdmin, hash)
	return err
}
