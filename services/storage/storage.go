// Package storage persists uploaded files and hands back the public URL
// each one is served from. The backend is chosen by STORAGE_DRIVER.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cse-dept/cms-api/config"
	"github.com/google/uuid"
)

var (
	// ErrForeignURL is returned by Delete for URLs the store did not issue
	ErrForeignURL = errors.New("url is not managed by this store")
	// ErrNotFound is returned by Delete when the object is already gone
	ErrNotFound = errors.New("stored file not found")
)

// Kind groups stored files by what they hold
type Kind string

const (
	KindImage Kind = "image"
	KindPDF   Kind = "pdf"
)

// Dir is the folder files of this kind live under
func (k Kind) Dir() string {
	if k == KindPDF {
		return "pdfs"
	}
	return "images"
}

// FileMeta describes a file handed to Store
type FileMeta struct {
	Kind        Kind
	Filename    string
	ContentType string
}

// FileStore is implemented by every storage backend
type FileStore interface {
	// Store writes data and returns the URL it is served from
	Store(ctx context.Context, data []byte, meta FileMeta) (string, error)
	// Delete removes the file behind a URL previously returned by Store
	Delete(ctx context.Context, url string) error
	Name() string
}

// New builds the FileStore selected by env.STORAGE_DRIVER
func New(ctx context.Context, env *config.EnvironmentVariable) (FileStore, error) {
	switch env.STORAGE_DRIVER {
	case "", "local":
		return NewLocalStore(env.UPLOAD_DIR, env.PUBLIC_BASE_URL), nil
	case "spaces":
		return NewSpacesStore(SpacesConfig{
			AccessKey: env.DO_SPACES_KEY,
			SecretKey: env.DO_SPACES_SECRET,
			Bucket:    env.DO_SPACES_BUCKET,
			Region:    env.DO_SPACES_REGION,
			Endpoint:  env.DO_SPACES_ENDPOINT,
			CDNURL:    env.DO_SPACES_CDN_URL,
		})
	case "minio":
		return NewMinIOStore(ctx, MinIOConfig{
			Endpoint:  env.MINIO_ENDPOINT,
			AccessKey: env.MINIO_ACCESS_KEY,
			SecretKey: env.MINIO_SECRET_KEY,
			Bucket:    env.MINIO_BUCKET,
			UseSSL:    env.MINIO_USE_SSL,
			PublicURL: env.MINIO_PUBLIC_URL,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", env.STORAGE_DRIVER)
	}
}

// objectName returns "<unix>-<uuid><ext>", unique per upload
func objectName(meta FileMeta) string {
	return fmt.Sprintf("%d-%s%s", time.Now().Unix(), uuid.NewString(), extension(meta))
}

func extension(meta FileMeta) string {
	switch meta.ContentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	}
	return strings.ToLower(filepath.Ext(meta.Filename))
}

// keyFromURL strips base from url and checks the remainder is
// "<images|pdfs>/<name>" with no traversal.
func keyFromURL(url, base string) (string, error) {
	if base != "" && !strings.HasPrefix(url, base+"/") {
		return "", ErrForeignURL
	}
	key := strings.TrimPrefix(url, base+"/")

	dir, name, ok := strings.Cut(key, "/")
	if !ok || (dir != KindImage.Dir() && dir != KindPDF.Dir()) {
		return "", ErrForeignURL
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", ErrForeignURL
	}
	return key, nil
}
