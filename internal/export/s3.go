package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
)

// S3API is the subset of *s3.Client the sink uses
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads CSV objects to <bucket>/<prefix>/<category>/<filename>
type S3Sink struct {
	client S3API
	bucket string
	prefix string
	logger *logger.Logger
}

// NewS3Sink creates a sink for bucket under prefix (may be empty)
func NewS3Sink(client S3API, bucket, prefix string, log *logger.Logger) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: log.WithFields(map[string]interface{}{"module": "export", "sink": "s3"}),
	}
}

// Save uploads the CSV encoding of t
func (s *S3Sink) Save(ctx context.Context, t *table.Table, category, filename string) (string, error) {
	key, err := objectKey(category, filename)
	if err != nil {
		return "", err
	}
	if s.prefix != "" {
		key = path.Join(s.prefix, key)
	}

	data, err := EncodeCSV(t)
	if err != nil {
		return "", fmt.Errorf("encode csv: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
		"rows":   t.Len(),
	}).Info("Table exported")

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
