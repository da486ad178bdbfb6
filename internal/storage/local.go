// Package storage holds the photo blob store. Complaints reference
// photos only by path; the store itself is an opaque collaborator, so
// swapping the local disk for an object store later only touches this
// package.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// LocalStore writes uploaded files to a directory on disk and returns
// the relative path they are served from.
type LocalStore struct {
	Dir string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir}, nil
}

// SaveUpload stores a multipart file under a timestamp-prefixed name
// and returns its path relative to the server root, e.g.
// "uploads/1714049393000-photo.jpg". The blob write completes before
// any row referencing the path is inserted.
func (s *LocalStore) SaveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("storage: open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fh.Filename))
	full := filepath.Join(s.Dir, name)

	dst, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return filepath.ToSlash(filepath.Join(filepath.Base(s.Dir), name)), nil
}
