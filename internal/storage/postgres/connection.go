package postgres

import (
	"database/sql"
	"fmt"

	"github.com/calendario-app/calendario-backend/config"
	_ "github.com/lib/pq"
)

// NewConnection opens a database/sql handle over lib/pq. The API serves
// through pgxpool; this handle backs schema migrations.
func NewConnection(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)

	return db, nil
}
