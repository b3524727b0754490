package pdfvalidation

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

var (
	ErrTooLarge      = errors.New("file size exceeds the maximum allowed")
	ErrMissingHeader = errors.New("invalid PDF file: missing PDF header")
	ErrUnreadable    = errors.New("failed to read PDF")
	ErrNoPages       = errors.New("PDF has no pages")
	ErrTooManyPages  = errors.New("PDF has too many pages")
	pdfHeader        = []byte("%PDF-")
	eofMarker        = []byte("%%EOF")
)

// Limits defines the validation limits for PDF uploads
type Limits struct {
	MaxFileSizeMB    int    // Maximum file size in MB
	MaxPages         int    // Maximum number of pages
	DocumentTypeName string // For error messages (e.g., "newsletter")
}

var (
	NewsletterLimits = Limits{
		MaxFileSizeMB:    20,
		MaxPages:         500,
		DocumentTypeName: "newsletter",
	}

	CurriculumLimits = Limits{
		MaxFileSizeMB:    20,
		MaxPages:         500,
		DocumentTypeName: "curriculum",
	}
)

// WithMaxSize returns a copy of l capped at maxBytes when that is smaller
func (l Limits) WithMaxSize(maxBytes int64) Limits {
	if mb := int(maxBytes / (1024 * 1024)); mb > 0 && mb < l.MaxFileSizeMB {
		l.MaxFileSizeMB = mb
	}
	return l
}

// Validate checks content against limits and returns its page count.
// Every returned error wraps one of the package's sentinel errors and
// carries a message suitable for an API client.
func Validate(content []byte, limits Limits) (int, error) {
	maxSize := int64(limits.MaxFileSizeMB) * 1024 * 1024
	if int64(len(content)) > maxSize {
		return 0, fmt.Errorf("%w of %dMB", ErrTooLarge, limits.MaxFileSizeMB)
	}

	if !bytes.HasPrefix(content, pdfHeader) {
		return 0, ErrMissingHeader
	}

	pageCount, err := PageCount(content)
	if err != nil {
		return 0, err
	}

	if pageCount == 0 {
		return 0, ErrNoPages
	}

	if pageCount > limits.MaxPages {
		return pageCount, fmt.Errorf("%w: %d pages exceeds the maximum of %d pages for %s",
			ErrTooManyPages, pageCount, limits.MaxPages, limits.DocumentTypeName)
	}

	return pageCount, nil
}

// PageCount returns the number of pages in a PDF
func PageCount(content []byte) (count int, err error) {
	// the parser panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			count, err = 0, fmt.Errorf("%w: %v", ErrUnreadable, r)
		}
	}()

	content = sanitize(content)
	pdfReader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	return pdfReader.NumPage(), nil
}

// sanitize drops trailing garbage after the last %%EOF marker
func sanitize(content []byte) []byte {
	if !bytes.HasPrefix(content, pdfHeader) {
		return content
	}

	lastEOF := bytes.LastIndex(content, eofMarker)
	if lastEOF == -1 {
		return content
	}

	pdfEnd := lastEOF + len(eofMarker)
	for pdfEnd < len(content) && (content[pdfEnd] == '\n' || content[pdfEnd] == '\r') {
		pdfEnd++
	}

	return content[:pdfEnd]
}
