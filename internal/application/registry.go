// Package application holds the mount registry and resource resolver: the
// single source of truth for mounted folders, cached pages, and open
// database handles, plus the persistence and notification wiring around it.
package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"satchel/internal/domain"
	"satchel/internal/ports"
)

// Deps are the collaborators threaded into the registry at construction.
// There is no hidden process-wide state; callers own exactly one Registry.
type Deps struct {
	Scanner  ports.FolderScanner
	Fetcher  ports.PageFetcher
	Opener   ports.DatabaseOpener
	Store    ports.RegistryStore
	Notifier ports.Notifier
}

// Registry owns the three mount collections. The mutex guards map
// integrity only; duplicate checks and inserts around fetch/open
// suspension points are intentionally not serialized.
type Registry struct {
	deps Deps

	mu        sync.Mutex
	folders   map[string]domain.MountedFolder
	pages     map[string]domain.MountedPage
	databases map[string]ports.Database
}

// NewRegistry creates an empty registry.
func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:      deps,
		folders:   make(map[string]domain.MountedFolder),
		pages:     make(map[string]domain.MountedPage),
		databases: make(map[string]ports.Database),
	}
}

// normalizePath expands ~, makes the path absolute, and cleans it. The
// result is the identity key for folders and databases.
func normalizePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(path)
}

// Load seeds the registry from the durable store, best-effort: databases
// that can no longer be opened are silently dropped, and the default home
// folder is created and mounted regardless of persisted state. Load never
// fails the boot sequence.
func (r *Registry) Load(homePath string) {
	state, _ := r.deps.Store.Load()

	r.mu.Lock()
	for _, path := range state.Folders {
		if norm, err := normalizePath(path); err == nil {
			r.folders[norm] = domain.MountedFolder{Path: norm}
		}
	}
	for _, page := range state.Pages {
		url := strings.TrimSpace(page.URL)
		if url == "" {
			continue
		}
		page.URL = url
		r.pages[url] = page
	}
	r.mu.Unlock()

	// Reconnection is a sequence of independent fallible opens, not an
	// all-or-nothing load.
	for _, path := range state.Databases {
		norm, err := normalizePath(path)
		if err != nil {
			continue
		}
		db, err := r.deps.Opener.Open(norm)
		if err != nil {
			continue
		}
		r.mu.Lock()
		r.databases[norm] = db
		r.mu.Unlock()
	}

	if norm, err := normalizePath(homePath); err == nil {
		os.MkdirAll(norm, 0755)
		r.mu.Lock()
		r.folders[norm] = domain.MountedFolder{Path: norm}
		r.mu.Unlock()
	}

	r.notifyFolders()
	r.notifyPages()
	r.notifyDatabases()
}

// Close releases database handles, best-effort. Folders and pages need no
// teardown.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for path, db := range r.databases {
		db.Close()
		delete(r.databases, path)
	}
}

// MountFolder registers a directory. Mounting an already-mounted path is
// an idempotent no-op reported through AlreadyMounted, with the current
// enumeration so callers still see a file count.
func (r *Registry) MountFolder(path string) (*MountFolderResult, error) {
	norm, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(norm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", norm, ErrNotFound)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", norm, ErrNotADirectory)
	}

	r.mu.Lock()
	_, exists := r.folders[norm]
	if !exists {
		r.folders[norm] = domain.MountedFolder{Path: norm}
	}
	r.mu.Unlock()

	files, _ := r.deps.Scanner.ListFiles(norm)
	if exists {
		return &MountFolderResult{Path: norm, Files: files, AlreadyMounted: true}, nil
	}

	warning := r.persist()
	r.notifyFolders()
	return &MountFolderResult{Path: norm, Files: files, Warning: warning}, nil
}

// UnmountFolder removes a mounted directory. Unmounting an unknown path
// reports ErrNotMounted and triggers no persistence write.
func (r *Registry) UnmountFolder(path string) (*UnmountFolderResult, error) {
	norm, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if _, ok := r.folders[norm]; !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("folder %s: %w", norm, ErrNotMounted)
	}
	delete(r.folders, norm)
	r.mu.Unlock()

	warning := r.persist()
	r.notifyFolders()
	return &UnmountFolderResult{Path: norm, Warning: warning}, nil
}

// MountPage fetches a URL, converts it to text, and caches the result.
// The trimmed URL string is the key verbatim: case- and trailing-slash-
// sensitive. An already-mounted URL returns the cache without refetching.
func (r *Registry) MountPage(ctx context.Context, rawURL string) (*MountPageResult, error) {
	url := strings.TrimSpace(rawURL)

	r.mu.Lock()
	if page, ok := r.pages[url]; ok {
		r.mu.Unlock()
		return &MountPageResult{
			URL:            page.URL,
			Title:          page.Title,
			Content:        page.Content,
			FetchedAt:      page.FetchedAt,
			AlreadyMounted: true,
		}, nil
	}
	r.mu.Unlock()

	// Suspension point: a concurrent mount of the same URL can pass the
	// check above before either inserts. Last insert wins; the registry
	// still holds one entry.
	title, text, err := r.deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	page := domain.MountedPage{
		URL:       url,
		Title:     title,
		Content:   text,
		FetchedAt: time.Now(),
	}

	r.mu.Lock()
	r.pages[url] = page
	r.mu.Unlock()

	warning := r.persist()
	r.notifyPages()
	return &MountPageResult{
		URL:       page.URL,
		Title:     page.Title,
		Content:   page.Content,
		FetchedAt: page.FetchedAt,
		Warning:   warning,
	}, nil
}

// MountDatabase opens a SQLite file read-only and registers the handle.
// A failed open or unreadable schema reports OpenError without inserting.
func (r *Registry) MountDatabase(path string) (*MountDatabaseResult, error) {
	norm, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(norm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", norm, ErrNotFound)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", norm, ErrNotAFile)
	}

	r.mu.Lock()
	existing, exists := r.databases[norm]
	r.mu.Unlock()
	if exists {
		tables, _ := existing.Tables()
		return &MountDatabaseResult{Path: norm, Tables: tables, AlreadyMounted: true}, nil
	}

	db, err := r.deps.Opener.Open(norm)
	if err != nil {
		return nil, &OpenError{Path: norm, Err: err}
	}

	tables, err := db.Tables()
	if err != nil {
		db.Close()
		return nil, &OpenError{Path: norm, Err: err}
	}

	r.mu.Lock()
	if old, ok := r.databases[norm]; ok {
		// Concurrent duplicate mount passed the check above; keep one
		// handle per path.
		old.Close()
	}
	r.databases[norm] = db
	r.mu.Unlock()

	warning := r.persist()
	r.notifyDatabases()
	return &MountDatabaseResult{Path: norm, Tables: tables, Warning: warning}, nil
}

// ListAll returns a read-only snapshot. Folder file counts are recomputed
// live so the listing always reflects current disk state.
func (r *Registry) ListAll() *domain.MountSnapshot {
	return &domain.MountSnapshot{
		Folders:   r.foldersSnapshot(),
		Pages:     r.pagesSnapshot(),
		Databases: r.databasesSnapshot(),
	}
}

// Resources describes every readable unit for the protocol layer.
func (r *Registry) Resources() []domain.ResourceDescriptor {
	var descriptors []domain.ResourceDescriptor

	r.mu.Lock()
	folders := make([]string, 0, len(r.folders))
	for path := range r.folders {
		folders = append(folders, path)
	}
	pages := make([]domain.MountedPage, 0, len(r.pages))
	for _, page := range r.pages {
		pages = append(pages, page)
	}
	databases := make([]string, 0, len(r.databases))
	for path := range r.databases {
		databases = append(databases, path)
	}
	r.mu.Unlock()

	sort.Strings(folders)
	sort.Strings(databases)
	sort.Slice(pages, func(i, j int) bool { return pages[i].URL < pages[j].URL })

	for _, root := range folders {
		files, _ := r.deps.Scanner.ListFiles(root)
		for _, f := range files {
			descriptors = append(descriptors, domain.ResourceDescriptor{
				URI:         domain.FileResource{Path: f.Path}.URI(),
				Name:        f.Name,
				Description: "Text file in " + root,
				MIMEType:    domain.ContentTypeFor(f.Name),
			})
		}
	}
	for _, page := range pages {
		descriptors = append(descriptors, domain.ResourceDescriptor{
			URI:         page.URL,
			Name:        page.Title,
			Description: "Cached web page, fetched " + page.FetchedAt.Format(time.RFC3339),
			MIMEType:    "text/plain",
		})
	}
	for _, path := range databases {
		descriptors = append(descriptors, domain.ResourceDescriptor{
			URI:         domain.SchemaResource{Path: path}.URI(),
			Name:        filepath.Base(path) + " schema",
			Description: "Live schema of the SQLite database at " + path,
			MIMEType:    "text/markdown",
		})
	}

	return descriptors
}

// persist writes the registry to the durable store after a successful
// mutation. A write failure is downgraded to a warning; the mutation has
// already succeeded in memory.
func (r *Registry) persist() string {
	state := r.stateSnapshot()
	if err := r.deps.Store.Save(state); err != nil {
		return fmt.Sprintf("failed to persist registry: %s", err)
	}
	return ""
}

func (r *Registry) stateSnapshot() *domain.RegistryState {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := &domain.RegistryState{
		Folders:   make([]string, 0, len(r.folders)),
		Pages:     make([]domain.MountedPage, 0, len(r.pages)),
		Databases: make([]string, 0, len(r.databases)),
	}
	for path := range r.folders {
		state.Folders = append(state.Folders, path)
	}
	for _, page := range r.pages {
		state.Pages = append(state.Pages, page)
	}
	for path := range r.databases {
		state.Databases = append(state.Databases, path)
	}

	sort.Strings(state.Folders)
	sort.Strings(state.Databases)
	sort.Slice(state.Pages, func(i, j int) bool {
		return state.Pages[i].URL < state.Pages[j].URL
	})

	return state
}

func (r *Registry) foldersSnapshot() []domain.FolderInfo {
	r.mu.Lock()
	paths := make([]string, 0, len(r.folders))
	for path := range r.folders {
		paths = append(paths, path)
	}
	r.mu.Unlock()

	sort.Strings(paths)

	infos := make([]domain.FolderInfo, 0, len(paths))
	for _, path := range paths {
		files, _ := r.deps.Scanner.ListFiles(path)
		infos = append(infos, domain.FolderInfo{Path: path, FileCount: len(files)})
	}
	return infos
}

func (r *Registry) pagesSnapshot() []domain.PageInfo {
	r.mu.Lock()
	infos := make([]domain.PageInfo, 0, len(r.pages))
	for _, page := range r.pages {
		infos = append(infos, domain.PageInfo{
			URL:       page.URL,
			Title:     page.Title,
			FetchedAt: page.FetchedAt,
		})
	}
	r.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].URL < infos[j].URL })
	return infos
}

func (r *Registry) databasesSnapshot() []domain.DatabaseInfo {
	r.mu.Lock()
	infos := make([]domain.DatabaseInfo, 0, len(r.databases))
	for path := range r.databases {
		infos = append(infos, domain.DatabaseInfo{Path: path})
	}
	r.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })
	return infos
}

func (r *Registry) notifyFolders() {
	r.deps.Notifier.Emit(domain.Event{
		Kind:    domain.EventFoldersChanged,
		Folders: r.foldersSnapshot(),
	})
}

func (r *Registry) notifyPages() {
	r.deps.Notifier.Emit(domain.Event{
		Kind:  domain.EventPagesChanged,
		Pages: r.pagesSnapshot(),
	})
}

func (r *Registry) notifyDatabases() {
	r.deps.Notifier.Emit(domain.Event{
		Kind:      domain.EventDatabasesChanged,
		Databases: r.databasesSnapshot(),
	})
}
