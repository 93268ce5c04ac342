package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"satchel/internal/domain"
	"satchel/internal/ports"
)

// Scanner implements ports.FolderScanner against the local filesystem.
type Scanner struct{}

var _ ports.FolderScanner = (*Scanner)(nil)

// NewScanner creates a filesystem scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// ListFiles walks root and returns every .txt/.md file, sorted by relative
// name. Unreadable subdirectories are skipped silently; enumeration is
// best-effort by design.
func (s *Scanner) ListFiles(root string) ([]domain.FileEntry, error) {
	var files []domain.FileEntry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() || !domain.Exposable(d.Name()) {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		files = append(files, domain.FileEntry{Path: path, Name: rel})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// ReadFile returns the raw text of a file.
func (s *Scanner) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
