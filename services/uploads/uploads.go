// Package uploads validates, normalizes and stores files attached to admin
// requests, and removes the files records no longer reference.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"

	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/utils/imageproc"
	"github.com/cse-dept/cms-api/utils/pdfvalidation"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// FileError is a client mistake in an uploaded file
type FileError struct {
	Field   string
	Message string
}

func (e *FileError) Error() string {
	return e.Field + ": " + e.Message
}

// DeleteResult reports what happened to a file the API tried to remove.
// Removal is best-effort: a failure never fails the request that caused it.
type DeleteResult struct {
	URL     string `json:"url"`
	Deleted bool   `json:"deleted"`
	// Skipped is set for URLs this API never stored (seeded or external links)
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Service stores uploads through a storage.FileStore
type Service struct {
	store    storage.FileStore
	maxBytes int64
	maxDim   int
}

// NewService creates an upload service. maxBytes caps each file.
func NewService(store storage.FileStore, maxBytes int64) *Service {
	return &Service{store: store, maxBytes: maxBytes, maxDim: imageproc.MaxDimension}
}

// Store returns the underlying file store
func (s *Service) Store() storage.FileStore {
	return s.store
}

// FromForm stores the file in multipart field when the request carries one.
// It returns "" and no error when the field is absent.
func (s *Service) FromForm(c *fiber.Ctx, field string, kind storage.Kind) (string, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return "", nil
	}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) {
			return "", nil
		}
		return "", &FileError{Field: field, Message: "Could not read uploaded file"}
	}

	return s.Save(c.UserContext(), fh, field, kind)
}

// Save validates and stores a multipart file
func (s *Service) Save(ctx context.Context, fh *multipart.FileHeader, field string, kind storage.Kind) (string, error) {
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return "", &FileError{Field: field, Message: fmt.Sprintf("File exceeds the %dMB limit", s.maxBytes/(1024*1024))}
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	return s.SaveBytes(ctx, data, fh.Filename, field, kind)
}

// SaveBytes validates and stores data. Images are sniffed and downscaled;
// PDFs are checked for a header and a sane page count.
func (s *Service) SaveBytes(ctx context.Context, data []byte, filename, field string, kind storage.Kind) (string, error) {
	if len(data) == 0 {
		return "", &FileError{Field: field, Message: "File is empty"}
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", &FileError{Field: field, Message: fmt.Sprintf("File exceeds the %dMB limit", s.maxBytes/(1024*1024))}
	}

	contentType := mimetype.Detect(data).String()
	// strip parameters such as "; charset=utf-8"
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	switch kind {
	case storage.KindImage:
		if !allowedImageTypes[contentType] {
			return "", &FileError{Field: field, Message: "Only JPEG, PNG and WebP images are allowed"}
		}
		res, err := imageproc.Downscale(data, contentType, s.maxDim)
		if err != nil {
			return "", &FileError{Field: field, Message: "Image could not be decoded"}
		}
		data = res.Data

	case storage.KindPDF:
		if contentType != "application/pdf" {
			return "", &FileError{Field: field, Message: "Only PDF files are allowed"}
		}
		limits := pdfvalidation.NewsletterLimits.WithMaxSize(s.maxBytes)
		if _, err := pdfvalidation.Validate(data, limits); err != nil {
			return "", &FileError{Field: field, Message: err.Error()}
		}

	default:
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}

	return s.store.Store(ctx, data, storage.FileMeta{
		Kind:        kind,
		Filename:    filename,
		ContentType: contentType,
	})
}

// Discard removes a file that is no longer referenced and logs the outcome
func (s *Service) Discard(ctx context.Context, url string) DeleteResult {
	result := DeleteResult{URL: url}
	if url == "" {
		result.Skipped = true
		return result
	}

	err := s.store.Delete(ctx, url)
	switch {
	case err == nil:
		result.Deleted = true
	case errors.Is(err, storage.ErrForeignURL):
		result.Skipped = true
	default:
		result.Error = err.Error()
		log.Printf("[WARN] failed to delete stored file %s via %s: %v", url, s.store.Name(), err)
	}
	return result
}

// DiscardAll discards every non-empty URL
func (s *Service) DiscardAll(ctx context.Context, urls ...string) []DeleteResult {
	results := make([]DeleteResult, 0, len(urls))
	for _, url := range urls {
		if url == "" {
			continue
		}
		results = append(results, s.Discard(ctx, url))
	}
	return results
}

// Respond writes a 400 for FileError and passes anything else on to the
// app error handler.
func Respond(c *fiber.Ctx, err error) error {
	var fe *FileError
	if errors.As(err, &fe) {
		return response.FieldErrors(c, []validation.FieldError{{Field: fe.Field, Message: fe.Message}})
	}
	return err
}
