package application

import (
	"fmt"
	"strings"
)

// maxQueryRows caps the rows returned to the caller; the true total is
// still reported so truncation is visible.
const maxQueryRows = 100

// allowedStatement accepts statements whose leading keyword is SELECT,
// case-insensitive, ignoring leading whitespace. This is a prefix check
// only, not SQL parsing, and not a security boundary.
func allowedStatement(query string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT")
}

// Query runs a read-only statement against a mounted database. Execution
// errors come back as QueryError, never as a panic or transport failure.
func (r *Registry) Query(path, query string) (*QueryResult, error) {
	norm, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	db, ok := r.databases[norm]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("database %s: %w", norm, ErrNotMounted)
	}

	if !allowedStatement(query) {
		return nil, &RejectedStatementError{Statement: query}
	}

	columns, rows, err := db.Query(query)
	if err != nil {
		return nil, &QueryError{Path: norm, Err: err}
	}

	total := len(rows)
	truncated := total > maxQueryRows
	if truncated {
		rows = rows[:maxQueryRows]
	}

	return &QueryResult{
		Columns:   columns,
		Rows:      rows,
		Total:     total,
		Truncated: truncated,
	}, nil
}
