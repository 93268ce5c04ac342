package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for resource-state conditions. All of them are reported
// to the caller as structured failures, never thrown past the command
// boundary.
var (
	ErrNotFound      = errors.New("not found")
	ErrNotADirectory = errors.New("not a directory")
	ErrNotAFile      = errors.New("not a file")
	ErrNotMounted    = errors.New("not mounted")
)

// FetchError wraps a failed page fetch; the page is not inserted.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// OpenError wraps a failed database open (missing, locked, or corrupt).
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("opening database %s: %s", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// QueryError wraps a failed query execution.
type QueryError struct {
	Path string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("querying %s: %s", e.Path, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// RejectedStatementError reports a statement whose leading keyword is not
// SELECT. The check is a syntactic prefix test, not a parser.
type RejectedStatementError struct {
	Statement string
}

func (e *RejectedStatementError) Error() string {
	return "only SELECT statements are allowed"
}
