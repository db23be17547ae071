package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type stubUploader struct {
	input *s3.PutObjectInput
	err   error
}

func (s *stubUploader) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	s.input = in
	if s.err != nil {
		return nil, s.err
	}
	return &manager.UploadOutput{Location: "https://bucket.s3.amazonaws.com/" + aws.ToString(in.Key)}, nil
}

func TestObjectKeyKeepsExtension(t *testing.T) {
	key := ObjectKey("p1", "Photo.JPG")
	if !strings.HasPrefix(key, "products/p1/") || !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("unexpected key %s", key)
	}
	if ObjectKey("p1", "a.png") == ObjectKey("p1", "a.png") {
		t.Fatalf("keys must be unique")
	}
}

func TestS3StoreUploadUsesPublicBase(t *testing.T) {
	up := &stubUploader{}
	s := &S3Store{up: up, bucket: "shop", publicBase: "https://cdn.example.com"}
	url, err := s.Upload(context.Background(), "p1", "a.png", "image/png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if aws.ToString(up.input.Bucket) != "shop" || aws.ToString(up.input.ContentType) != "image/png" {
		t.Fatalf("unexpected input %+v", up.input)
	}
	if !strings.HasPrefix(url, "https://cdn.example.com/products/p1/") {
		t.Fatalf("unexpected url %s", url)
	}
}

func TestS3StoreUploadFallsBackToLocation(t *testing.T) {
	s := &S3Store{up: &stubUploader{}, bucket: "shop"}
	url, err := s.Upload(context.Background(), "p1", "a.png", "image/png", strings.NewReader("x"))
	if err != nil || !strings.HasPrefix(url, "https://bucket.s3.amazonaws.com/products/p1/") {
		t.Fatalf("unexpected url %s err %v", url, err)
	}
}

func TestS3StoreUploadError(t *testing.T) {
	s := &S3Store{up: &stubUploader{err: errors.New("denied")}, bucket: "shop"}
	if _, err := s.Upload(context.Background(), "p1", "a.png", "image/png", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewS3RequiresBucket(t *testing.T) {
	if _, err := NewS3(context.Background(), "", ""); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
