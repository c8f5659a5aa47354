package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// pragmas are applied to every pooled connection, not just the first one.
var pragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

// Open opens a SQLite database with the recommended pragmas and validates
// connectivity. ":memory:" is pinned to a single connection so every query
// sees the same database.
func Open(ctx context.Context, dbPath string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if isMemory(dbPath) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return db, nil
}

func dsn(dbPath string) string {
	q := url.Values{}
	for _, p := range pragmas {
		if isMemory(dbPath) && strings.HasPrefix(p, "journal_mode") {
			continue
		}
		q.Add("_pragma", p)
	}
	return "file:" + dbPath + "?" + q.Encode()
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:"
}
