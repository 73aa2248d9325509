package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pageza/nutrilens/backend/config"
	"github.com/pageza/nutrilens/backend/internal/slogx"
)

// photoURLExpiry is how long a returned meal photo link stays usable.
const photoURLExpiry = 7 * 24 * time.Hour

// S3PhotoStore uploads meal photos to the configured bucket.
type S3PhotoStore struct {
	s3Config *config.S3Config
}

var _ PhotoStore = (*S3PhotoStore)(nil)

func NewS3PhotoStore(s3Config *config.S3Config) *S3PhotoStore {
	return &S3PhotoStore{s3Config: s3Config}
}

// Put uploads body under key and returns a presigned link to it.
func (s *S3PhotoStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url, err := s.s3Config.GeneratePresignedURL(ctx, key, photoURLExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign photo url: %w", err)
	}
	slogx.FromContext(ctx).Debug("uploaded meal photo", "key", key)
	return url, nil
}
