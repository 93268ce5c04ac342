package domain

import "time"

// MountedFolder is a local directory exposed through the resource surface.
// Its normalized absolute path is its identity.
type MountedFolder struct {
	Path string `json:"path"`
}

// MountedPage is a fetched-and-converted web page. The trimmed URL string
// is its identity; content is cached at mount time and never refreshed.
type MountedPage struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// FileEntry is one enumerated file under a mounted folder.
type FileEntry struct {
	Path string // absolute
	Name string // relative to the mount root
}

// Column describes one column of an introspected table.
type Column struct {
	Name         string
	Type         string
	NotNull      bool
	PrimaryKey   bool
	DefaultValue string
}

// FolderInfo is a folder entry in a listing snapshot, with a live file count.
type FolderInfo struct {
	Path      string
	FileCount int
}

// PageInfo is a page entry in a listing snapshot (content omitted).
type PageInfo struct {
	URL       string
	Title     string
	FetchedAt time.Time
}

// DatabaseInfo is a database entry in a listing snapshot.
type DatabaseInfo struct {
	Path string
}

// MountSnapshot is a read-only view of everything currently mounted.
type MountSnapshot struct {
	Folders   []FolderInfo
	Pages     []PageInfo
	Databases []DatabaseInfo
}

// Empty reports whether nothing is mounted.
func (s *MountSnapshot) Empty() bool {
	return len(s.Folders) == 0 && len(s.Pages) == 0 && len(s.Databases) == 0
}

// RegistryState is the durable form of the registry: folder paths, page
// entries with cached content, and database paths. Database handles are
// reopened on load, not persisted.
type RegistryState struct {
	Folders   []string      `json:"folders"`
	Pages     []MountedPage `json:"pages"`
	Databases []string      `json:"databases"`
}
