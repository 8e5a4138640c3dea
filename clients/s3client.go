package clients

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3Config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/emzola/shelf/config"
)

// NewS3Client configures a new AWS S3 object storage client.
func NewS3Client(ctx context.Context, cfg config.Config) (*s3.Client, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")
	awsCfg, err := s3Config.LoadDefaultConfig(ctx, s3Config.WithCredentialsProvider(creds), s3Config.WithRegion(cfg.S3.Region))
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg), nil
}

// objectAPI is the part of *s3.Client a CoverBucket needs.
type objectAPI interface {
	manager.UploadAPIClient
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// CoverBucket stores book cover images in a public S3 bucket.
type CoverBucket struct {
	client   objectAPI
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

// NewCoverBucket wraps client for the configured bucket.
func NewCoverBucket(client objectAPI, bucket, region string) *CoverBucket {
	return &CoverBucket{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		baseURL:  fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", bucket, region),
	}
}

// Upload stores body under key and returns its public URL.
func (b *CoverBucket) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := b.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: int64(len(body)),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return b.baseURL + key, nil
}

// Owns reports whether url points into this bucket.
func (b *CoverBucket) Owns(url string) bool {
	return strings.HasPrefix(url, b.baseURL) && len(url) > len(b.baseURL)
}

// Delete removes the object behind url. URLs outside the bucket are ignored.
func (b *CoverBucket) Delete(ctx context.Context, url string) error {
	if !b.Owns(url) {
		return nil
	}
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(strings.TrimPrefix(url, b.baseURL)),
	})
	return err
}
