package application

import (
	"time"

	"satchel/internal/domain"
)

// MountFolderResult reports a folder mount. AlreadyMounted means the call
// was an idempotent no-op; Files always reflects the current enumeration.
type MountFolderResult struct {
	Path           string
	Files          []domain.FileEntry
	AlreadyMounted bool
	Warning        string
}

// UnmountFolderResult confirms a removal.
type UnmountFolderResult struct {
	Path    string
	Warning string
}

// MountPageResult reports a page mount. On AlreadyMounted the title and
// fetch time come from the cache and no fetch was performed.
type MountPageResult struct {
	URL            string
	Title          string
	Content        string
	FetchedAt      time.Time
	AlreadyMounted bool
	Warning        string
}

// MountDatabaseResult reports a database mount with a live table summary.
type MountDatabaseResult struct {
	Path           string
	Tables         []string
	AlreadyMounted bool
	Warning        string
}

// QueryResult holds a capped result set. Total is the true row count of
// the statement; Truncated reports whether rows were dropped to fit the cap.
type QueryResult struct {
	Columns   []string
	Rows      [][]any
	Total     int
	Truncated bool
}

// Objects renders the rows as column-keyed maps, the shape serialized to
// JSON for callers.
func (r *QueryResult) Objects() []map[string]any {
	objects := make([]map[string]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		obj := make(map[string]any, len(r.Columns))
		for i, col := range r.Columns {
			obj[col] = row[i]
		}
		objects = append(objects, obj)
	}
	return objects
}
