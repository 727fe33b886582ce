package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the embedded cart database.
func Open(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cart db %s: %w", path, err)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping cart db %s: %w", path, err)
	}

	// Concurrent readers don't block the persistence worker's writes.
	if _, err := database.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		database.Close()
		return nil, fmt.Errorf("configure cart db: %w", err)
	}

	return database, nil
}
