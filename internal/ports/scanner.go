package ports

import "satchel/internal/domain"

// FolderScanner enumerates and reads text files under a mount root.
type FolderScanner interface {
	// ListFiles walks root and returns every exposable file, sorted by
	// relative name. Enumeration is best-effort: unreadable
	// subdirectories are skipped silently.
	ListFiles(root string) ([]domain.FileEntry, error)

	// ReadFile returns the raw text of a file.
	ReadFile(path string) (string, error)
}
