// Package media stores product images in S3-compatible object storage.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ErrNotConfigured is returned when image storage has no bucket.
var ErrNotConfigured = errors.New("image storage not configured")

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Store uploads objects to a single bucket.
type S3Store struct {
	up         uploader
	bucket     string
	publicBase string
}

// NewS3 loads AWS credentials from the default chain (env, shared config,
// instance role) and returns a store for bucket. publicBase, when set, is used
// to build object URLs instead of the upload location.
func NewS3(ctx context.Context, bucket, publicBase string) (*S3Store, error) {
	if bucket == "" {
		return nil, ErrNotConfigured
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		up:         manager.NewUploader(client),
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Upload stores body under products/<productID>/<random><ext> and returns its URL.
func (s *S3Store) Upload(ctx context.Context, productID, filename, contentType string, body io.Reader) (string, error) {
	key := ObjectKey(productID, filename)
	out, err := s.up.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if s.publicBase != "" {
		return s.publicBase + "/" + key, nil
	}
	return out.Location, nil
}

// ObjectKey builds a collision-free key that keeps the original extension.
func ObjectKey(productID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("products/%s/%s%s", productID, uuid.NewString(), ext)
}
