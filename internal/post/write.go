package post

import (
	"os"
	"path/filepath"

	"dealpost/internal/domain"
)

// Write stores doc under dir, creating dir when needed, and returns the file path.
// An existing file with the same name is replaced.
func Write(dir string, doc Document) (string, error) {
	path := filepath.Join(dir, doc.Filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.FileWriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, []byte(doc.Body), 0o644); err != nil {
		return "", &domain.FileWriteError{Path: path, Err: err}
	}
	return path, nil
}

// Exists reports whether a post with doc's file name is already in dir.
func Exists(dir string, doc Document) bool {
	_, err := os.Stat(filepath.Join(dir, doc.Filename))
	return err == nil
}
