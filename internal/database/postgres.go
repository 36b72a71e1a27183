package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDB is the global PostgreSQL connection pool
var PostgresDB *sql.DB

// ConnectPostgres establishes connection to PostgreSQL
func ConnectPostgres(uri string) error {
	db, err := sql.Open("postgres", uri)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	PostgresDB = db
	return nil
}

// InitPostgresTables creates the required tables if they don't exist
func InitPostgresTables() error {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		username VARCHAR(20) PRIMARY KEY,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL DEFAULT '',
		wellness_score INTEGER NOT NULL DEFAULT 0,
		last_quiz_at TIMESTAMPTZ,
		language VARCHAR(5) NOT NULL DEFAULT 'en',
		theme VARCHAR(20) NOT NULL DEFAULT 'COLORFUL',
		email VARCHAR(255) NOT NULL DEFAULT '',
		birthday VARCHAR(20) NOT NULL DEFAULT '',
		sex VARCHAR(20) NOT NULL DEFAULT '',
		civil_status VARCHAR(30) NOT NULL DEFAULT '',
		city VARCHAR(100) NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := PostgresDB.Exec(createUsersTable); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	return nil
}

// ClosePostgres closes the PostgreSQL connection
func ClosePostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
