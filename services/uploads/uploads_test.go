package uploads

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/testutil/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, maxBytes int64) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	return NewService(storage.NewLocalStore(root, ""), maxBytes), root
}

func TestSaveBytesImage(t *testing.T) {
	svc, root := newService(t, 5*1024*1024)
	svc.maxDim = 64

	url, err := svc.SaveBytes(context.Background(), fixtures.PNG(128, 32), "banner.png", "image", storage.KindImage)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/images/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	_, err = os.Stat(filepath.Join(root, "images", filepath.Base(url)))
	assert.NoError(t, err)
}

func TestSaveBytesRejections(t *testing.T) {
	svc, _ := newService(t, 1024*1024)

	tests := []struct {
		name string
		data []byte
		kind storage.Kind
	}{
		{"empty", nil, storage.KindImage},
		{"text as image", []byte("just some text"), storage.KindImage},
		{"pdf as image", fixtures.PDF(1), storage.KindImage},
		{"image as pdf", fixtures.PNG(4, 4), storage.KindPDF},
		{"text as pdf", []byte("not a pdf at all"), storage.KindPDF},
		{"too large", append(fixtures.PNG(4, 4), make([]byte, 1024*1024)...), storage.KindImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveBytes(context.Background(), tt.data, "f", "file", tt.kind)
			var fe *FileError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, "file", fe.Field)
		})
	}
}

func TestSaveBytesPDF(t *testing.T) {
	svc, _ := newService(t, 5*1024*1024)

	url, err := svc.SaveBytes(context.Background(), fixtures.PDF(2), "issue.pdf", "pdf", storage.KindPDF)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/pdfs/"), url)
}

func TestDiscard(t *testing.T) {
	svc, _ := newService(t, 5*1024*1024)
	ctx := context.Background()

	url, err := svc.SaveBytes(ctx, fixtures.PNG(4, 4), "a.png", "image", storage.KindImage)
	require.NoError(t, err)

	assert.Equal(t, DeleteResult{URL: url, Deleted: true}, svc.Discard(ctx, url))

	missing := svc.Discard(ctx, url)
	assert.False(t, missing.Deleted)
	assert.NotEmpty(t, missing.Error)

	foreign := svc.Discard(ctx, "https://example.com/photo.jpg")
	assert.True(t, foreign.Skipped)
	assert.Empty(t, foreign.Error)

	assert.True(t, svc.Discard(ctx, "").Skipped)
	assert.Len(t, svc.DiscardAll(ctx, "", "https://example.com/x.png"), 1)
}
