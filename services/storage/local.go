package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// PublicPrefix is the route local uploads are served under
const PublicPrefix = "/uploads"

// LocalStore writes files below a directory served as static content
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore stores files under root. baseURL, when set, is prepended to
// returned URLs ("https://api.example.edu"); otherwise URLs are root-relative.
func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: baseURL}
}

func (s *LocalStore) Name() string { return "local" }

// Root is the directory files are written to
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) Store(ctx context.Context, data []byte, meta FileMeta) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, meta.Kind.Dir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := objectName(meta)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.baseURL + PublicPrefix + "/" + meta.Kind.Dir() + "/" + name, nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	key, err := keyFromURL(url, s.baseURL+PublicPrefix)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key))); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
