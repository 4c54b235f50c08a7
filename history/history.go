// Package history keeps a record of every ticket acquisition so an
// operator can audit what was issued and where it went.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const (
	sqlite3Driver = "sqlite3"
	mysqlDriver   = "mysql"

	initStmt = `
CREATE TABLE IF NOT EXISTS issuance (
	ts INTEGER NOT NULL,
	audience TEXT NOT NULL,
	ticket_bytes INTEGER NOT NULL,
	destination TEXT NOT NULL,
	outcome TEXT NOT NULL
)`
)

type Record struct {
	Timestamp   time.Time
	Audience    string
	TicketBytes int
	Destination string
	Outcome     string
}

type Store struct {
	db     *sql.DB
	driver string
}

// New opens the history store. A DSN with a mysql address block picks
// the mysql driver; anything else is treated as a sqlite3 path.
func New(dsn string) (*Store, error) {
	driver := sqlite3Driver
	if strings.Contains(dsn, "@tcp(") || strings.Contains(dsn, "@unix(") {
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("couldn't parse mysql DSN: %w", err)
		}
		dsn = cfg.FormatDSN()
		driver = mysqlDriver
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("couldn't open history database: %w", err)
	}

	if _, err := db.Exec(initStmt); err != nil {
		return nil, fmt.Errorf("error initializing history database: %w", err)
	}

	if driver == sqlite3Driver {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			return nil, fmt.Errorf("couldn't enable WAL mode: %w", err)
		}
	}

	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Record(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(
		ctx,
		"INSERT INTO issuance (ts, audience, ticket_bytes, destination, outcome) VALUES (?, ?, ?, ?, ?)",
		r.Timestamp.Unix(),
		r.Audience,
		r.TicketBytes,
		r.Destination,
		r.Outcome,
	)
	if err != nil {
		return fmt.Errorf("error recording issuance: %w", err)
	}
	return nil
}

func (s *Store) Dump(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT ts, audience, ticket_bytes, destination, outcome FROM issuance ORDER BY ts",
	)
	if err != nil {
		return nil, fmt.Errorf("error querying history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var ts int64
		if err := rows.Scan(&ts, &r.Audience, &r.TicketBytes, &r.Destination, &r.Outcome); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		r.Timestamp = time.Unix(ts, 0)
		records = append(records, r)
	}

	return records, rows.Err()
}
