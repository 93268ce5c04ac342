package ports

import "satchel/internal/domain"

// DatabaseOpener opens a read-only connection to a SQLite file.
type DatabaseOpener interface {
	Open(path string) (Database, error)
}

// Database is an open read-only connection. Introspection runs live at
// call time; nothing is cached on the handle.
type Database interface {
	Tables() ([]string, error)
	Columns(table string) ([]domain.Column, error)
	Query(sql string) (columns []string, rows [][]any, err error)
	Close() error
}
