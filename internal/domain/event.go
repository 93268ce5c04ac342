package domain

// EventKind discriminates notification events.
type EventKind int

const (
	EventServerOnline EventKind = iota
	EventResourceRead
	EventFoldersChanged
	EventPagesChanged
	EventDatabasesChanged
)

func (k EventKind) String() string {
	switch k {
	case EventServerOnline:
		return "server-online"
	case EventResourceRead:
		return "resource-read"
	case EventFoldersChanged:
		return "folders-changed"
	case EventPagesChanged:
		return "pages-changed"
	case EventDatabasesChanged:
		return "databases-changed"
	default:
		return "unknown"
	}
}

// Event is a fire-and-forget notification to the external observer.
// Collection-changed events carry the full current snapshot of that
// collection, not a delta; resource reads carry a short label.
type Event struct {
	Kind      EventKind
	Label     string
	Folders   []FolderInfo
	Pages     []PageInfo
	Databases []DatabaseInfo
}
