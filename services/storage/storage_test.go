package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "")
	ctx := context.Background()

	url, err := store.Store(ctx, []byte("%PDF-1.4"), FileMeta{Kind: KindPDF, Filename: "Issue 1.PDF", ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/pdfs/"), url)
	assert.True(t, strings.HasSuffix(url, ".pdf"), url)

	onDisk := filepath.Join(root, "pdfs", filepath.Base(url))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, store.Delete(ctx, url), ErrNotFound)
}

func TestLocalStoreBaseURL(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "https://api.cse.example.edu")

	url, err := store.Store(context.Background(), []byte("img"), FileMeta{Kind: KindImage, ContentType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://api.cse.example.edu/uploads/images/"), url)
	assert.NoError(t, store.Delete(context.Background(), url))
}

func TestLocalStoreRejectsForeignURLs(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "")

	urls := []string{
		"https://cdn.example.com/uploads/images/a.png",
		"/uploads/other/a.png",
		"/uploads/images/../../etc/passwd",
		"/uploads/images/",
		"/uploads/images/..",
		"relative.png",
	}
	for _, u := range urls {
		assert.ErrorIs(t, store.Delete(context.Background(), u), ErrForeignURL, u)
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".jpg", extension(FileMeta{ContentType: "image/jpeg", Filename: "a.jpeg"}))
	assert.Equal(t, ".webp", extension(FileMeta{ContentType: "image/webp"}))
	assert.Equal(t, ".gif", extension(FileMeta{ContentType: "image/gif", Filename: "A.GIF"}))
}

type fakeS3 struct {
	s3iface.S3API
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestSpacesStore(t *testing.T) {
	fake := &fakeS3{}
	store := newSpacesStore(fake, SpacesConfig{Bucket: "dept", Endpoint: "blr1.digitaloceanspaces.com"})
	ctx := context.Background()

	url, err := store.Store(ctx, []byte("png"), FileMeta{Kind: KindImage, ContentType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://dept.blr1.digitaloceanspaces.com/cms/images/"), url)

	require.Len(t, fake.puts, 1)
	assert.Equal(t, "public-read", aws.StringValue(fake.puts[0].ACL))
	assert.Equal(t, "image/png", aws.StringValue(fake.puts[0].ContentType))
	assert.True(t, strings.HasPrefix(aws.StringValue(fake.puts[0].Key), "cms/images/"))

	require.NoError(t, store.Delete(ctx, url))
	require.Len(t, fake.deletes, 1)
	assert.Equal(t, aws.StringValue(fake.puts[0].Key), aws.StringValue(fake.deletes[0].Key))

	assert.ErrorIs(t, store.Delete(ctx, "/uploads/images/a.png"), ErrForeignURL)
}

func TestSpacesStoreCDN(t *testing.T) {
	store := newSpacesStore(&fakeS3{}, SpacesConfig{Bucket: "dept", CDNURL: "https://cdn.cse.example.edu"})
	url, err := store.Store(context.Background(), []byte("%PDF"), FileMeta{Kind: KindPDF, ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.cse.example.edu/cms/pdfs/"), url)
}
