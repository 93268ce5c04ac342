package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"satchel/internal/domain"
	"satchel/internal/ports"
)

// Opener implements ports.DatabaseOpener with read-only SQLite connections.
type Opener struct{}

var _ ports.DatabaseOpener = (*Opener)(nil)

// NewOpener creates a SQLite opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens path read-only and verifies the connection is usable.
// mode=ro guarantees the file is never created or written.
func (o *Opener) Open(path string) (ports.Database, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	return &Database{db: db}, nil
}

// Database is an open read-only SQLite connection.
type Database struct {
	db *sql.DB
}

var _ ports.Database = (*Database)(nil)

// Tables lists user tables, sorted by name. Internal sqlite_* tables are
// excluded.
func (d *Database) Tables() ([]string, error) {
	rows, err := d.db.Query(`
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}

	return tables, rows.Err()
}

// Columns introspects a table via PRAGMA table_info.
func (d *Database) Columns(table string) ([]domain.Column, error) {
	quoted := strings.ReplaceAll(table, `"`, `""`)
	rows, err := d.db.Query(fmt.Sprintf(`PRAGMA table_info("%s")`, quoted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []domain.Column
	for rows.Next() {
		var (
			cid         int
			name, ctype string
			notNull, pk int
			dflt        sql.NullString
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		columns = append(columns, domain.Column{
			Name:         name,
			Type:         ctype,
			NotNull:      notNull != 0,
			PrimaryKey:   pk != 0,
			DefaultValue: dflt.String,
		})
	}

	return columns, rows.Err()
}

// Query executes a statement and returns all rows. Callers cap the result;
// this layer reports everything so the true total is known.
func (d *Database) Query(query string) ([]string, [][]any, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var result [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result = append(result, values)
	}

	return columns, result, rows.Err()
}

// Close closes the underlying connection.
func (d *Database) Close() error {
	return d.db.Close()
}
