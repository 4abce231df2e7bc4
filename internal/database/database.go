package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"storefront/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service wraps the connection pool
type Service struct {
	db *sql.DB
}

// New opens a postgres connection pool via the pgx stdlib driver.
func New(cfg config.DatabaseConfig) (*Service, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return &Service{db: db}, nil
}

// DB exposes the underlying pool
func (s *Service) DB() *sql.DB {
	return s.db
}

// Health pings the database with a short timeout
func (s *Service) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the pool
func (s *Service) Close() error {
	return s.db.Close()
}
