// Package storage implements the photo file store on the local
// filesystem. File I/O has no ecosystem dependency worth taking; the
// stdlib os package is the idiomatic tool here.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore saves uploaded files under a base directory and serves them
// through the given URL prefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore ensures dir exists and returns a store serving files
// under urlPrefix (e.g. "/uploads").
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Dir returns the base directory, for static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes content under name and returns its serving URL. name must
// be a bare file name; anything resolving outside the base directory is
// rejected.
func (s *LocalStore) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	return s.urlPrefix + "/" + name, nil
}

// Remove deletes the stored file. A missing file is not an error.
func (s *LocalStore) Remove(ctx context.Context, name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// resolve joins name onto the base directory and guards against path
// traversal.
func (s *LocalStore) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}
