package application

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"satchel/internal/domain"
)

// Resolve maps a resource identifier to a live read across the three
// backends. Every successful resolution emits a read notification; the
// emission is fire-and-forget and never affects the read.
func (r *Registry) Resolve(id domain.ResourceID) (*domain.ResourceContent, error) {
	switch res := id.(type) {
	case domain.FileResource:
		return r.resolveFile(res)
	case domain.PageResource:
		return r.resolvePage(res)
	case domain.SchemaResource:
		return r.resolveSchema(res)
	default:
		return nil, fmt.Errorf("resource %s: %w", id.URI(), ErrNotMounted)
	}
}

// resolveFile reads a file under one of the mounted folders. A file that
// vanished after mounting yields its error string as the payload rather
// than a failed read.
func (r *Registry) resolveFile(res domain.FileResource) (*domain.ResourceContent, error) {
	path, err := normalizePath(res.Path)
	if err != nil {
		return nil, err
	}

	if !domain.Exposable(path) {
		return nil, fmt.Errorf("file %s: %w", path, ErrNotMounted)
	}

	r.mu.Lock()
	owned := ""
	for root := range r.folders {
		rel, relErr := filepath.Rel(root, path)
		if relErr == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			owned = root
			break
		}
	}
	r.mu.Unlock()

	if owned == "" {
		return nil, fmt.Errorf("file %s: %w", path, ErrNotMounted)
	}

	content := &domain.ResourceContent{
		URI:      domain.FileResource{Path: path}.URI(),
		MIMEType: domain.ContentTypeFor(path),
	}

	text, err := r.deps.Scanner.ReadFile(path)
	if err != nil {
		content.MIMEType = "text/plain"
		content.Text = fmt.Sprintf("error reading file %s: %s", path, err)
	} else {
		content.Text = text
	}

	r.notifyRead("file: " + filepath.Base(path))
	return content, nil
}

// resolvePage serves the cached conversion for an exact URL match, trying
// an https:// prefix for scheme-omitted input before giving up.
func (r *Registry) resolvePage(res domain.PageResource) (*domain.ResourceContent, error) {
	url := strings.TrimSpace(res.URL)

	r.mu.Lock()
	page, ok := r.pages[url]
	if !ok {
		page, ok = r.pages["https://"+url]
	}
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("page %s: %w", url, ErrNotMounted)
	}

	text := fmt.Sprintf("# %s\n\nSource: %s\nFetched: %s\n\n%s",
		page.Title, page.URL, page.FetchedAt.Format(time.RFC3339), page.Content)

	r.notifyRead("web: " + page.Title)
	return &domain.ResourceContent{
		URI:      page.URL,
		MIMEType: "text/plain",
		Text:     text,
	}, nil
}

// resolveSchema introspects a mounted database at read time; the schema
// description is never cached.
func (r *Registry) resolveSchema(res domain.SchemaResource) (*domain.ResourceContent, error) {
	path, err := normalizePath(res.Path)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	db, ok := r.databases[path]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("database %s: %w", path, ErrNotMounted)
	}

	tables, err := db.Tables()
	if err != nil {
		return nil, &QueryError{Path: path, Err: err}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Schema: %s\n", filepath.Base(path))
	for _, table := range tables {
		columns, err := db.Columns(table)
		if err != nil {
			return nil, &QueryError{Path: path, Err: err}
		}

		fmt.Fprintf(&sb, "\n## %s\n\n", table)
		sb.WriteString("| column | type | not null | primary key | default |\n")
		sb.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, col := range columns {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				col.Name, col.Type, yesNo(col.NotNull), yesNo(col.PrimaryKey), col.DefaultValue)
		}
	}

	r.notifyRead("schema: " + filepath.Base(path))
	return &domain.ResourceContent{
		URI:      domain.SchemaResource{Path: path}.URI(),
		MIMEType: "text/markdown",
		Text:     sb.String(),
	}, nil
}

func (r *Registry) notifyRead(label string) {
	r.deps.Notifier.Emit(domain.Event{Kind: domain.EventResourceRead, Label: label})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
