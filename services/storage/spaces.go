package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// keyPrefix namespaces CMS uploads inside a shared bucket
const keyPrefix = "cms"

// SpacesConfig holds configuration for the DigitalOcean Spaces store
type SpacesConfig struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	CDNURL    string
}

// SpacesStore keeps files in a DigitalOcean Spaces bucket
type SpacesStore struct {
	s3Client s3iface.S3API
	bucket   string
	baseURL  string
}

// NewSpacesStore creates a new Spaces-backed store
func NewSpacesStore(config SpacesConfig) (*SpacesStore, error) {
	if config.Bucket == "" || config.AccessKey == "" {
		return nil, errors.New("DO_SPACES_BUCKET and DO_SPACES_KEY are required for the spaces storage driver")
	}

	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
		Endpoint:         aws.String(config.Endpoint),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Spaces session: %w", err)
	}

	return newSpacesStore(s3.New(sess), config), nil
}

func newSpacesStore(client s3iface.S3API, config SpacesConfig) *SpacesStore {
	base := config.CDNURL
	if base == "" {
		base = fmt.Sprintf("https://%s.%s", config.Bucket, config.Endpoint)
	}
	return &SpacesStore{
		s3Client: client,
		bucket:   config.Bucket,
		baseURL:  base + "/" + keyPrefix,
	}
}

func (s *SpacesStore) Name() string { return "spaces" }

func (s *SpacesStore) Store(ctx context.Context, data []byte, meta FileMeta) (string, error) {
	key := meta.Kind.Dir() + "/" + objectName(meta)

	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(keyPrefix + "/" + key),
		Body:        bytes.NewReader(data),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(meta.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *SpacesStore) Delete(ctx context.Context, url string) error {
	key, err := keyFromURL(url, s.baseURL)
	if err != nil {
		return err
	}

	_, err = s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(keyPrefix + "/" + key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
