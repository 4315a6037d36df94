package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Store stores receipt files in S3-compatible object storage
// (Supabase storage exposes an S3 endpoint).
type S3Store struct {
	s3Client *s3.S3
	bucket   string
	endpoint string
}

// S3Config holds configuration for the S3 receipt store
type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Region          string
}

// NewS3Store creates a new S3-backed receipt store
func NewS3Store(config *S3Config) (*S3Store, error) {
	if config.Endpoint == "" || config.AccessKeyID == "" || config.AccessKeySecret == "" {
		return nil, fmt.Errorf("S3 configuration is incomplete")
	}
	if config.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	sess := session.Must(session.NewSession(&aws.Config{
		Region:           aws.String(config.Region),
		Endpoint:         aws.String(config.Endpoint + "/storage/v1/s3"),
		Credentials:      credentials.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(false),
	}))

	return &S3Store{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
		endpoint: config.Endpoint,
	}, nil
}

// Save uploads the receipt file and returns its public URL.
// Format: {endpoint}/storage/v1/object/public/{bucket}/{filename}
func (s *S3Store) Save(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(filename),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", &StorageError{Op: "save_receipt", Err: fmt.Errorf("failed to upload to S3: %w", err)}
	}

	baseURL := strings.Replace(s.endpoint, "/storage/v1/s3", "", 1)
	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", baseURL, s.bucket, filename)
	return publicURL, nil
}

// Remove deletes a previously stored receipt file by its public URL.
func (s *S3Store) Remove(ctx context.Context, receiptURL string) error {
	prefix := fmt.Sprintf("/storage/v1/object/public/%s/", s.bucket)
	idx := strings.Index(receiptURL, prefix)
	if idx < 0 {
		return &StorageError{Op: "remove_receipt", Err: fmt.Errorf("URL %q does not belong to bucket %s", receiptURL, s.bucket)}
	}
	key := receiptURL[idx+len(prefix):]

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return &StorageError{Op: "remove_receipt", Err: fmt.Errorf("failed to delete from S3: %w", err)}
	}
	return nil
}
