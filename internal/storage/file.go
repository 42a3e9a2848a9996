package storage

import (
	"context"
	"os"
	"path/filepath"
)

// FileBlob keeps the document in a local JSON file. It backs development
// and tests; production uses GCSBlob.
type FileBlob struct {
	path string
}

func NewFileBlob(path string) *FileBlob {
	return &FileBlob{path: path}
}

func (b *FileBlob) Download(_ context.Context) ([]byte, error) {
	return os.ReadFile(b.path)
}

func (b *FileBlob) Upload(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, b.path)
}
