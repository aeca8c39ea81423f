package connector

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BizLenz/api/internal/domain/plans"
	appconfig "github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type s3Connector struct {
	client    *s3.Client
	presigner *s3.PresignClient
	settings  *appconfig.S3Settings
	logger    logger.Logger
}

// NewS3Connector creates an ObjectStore backed by an S3 bucket. Credentials
// are resolved through the default AWS credential chain.
func NewS3Connector(ctx context.Context, settings *appconfig.S3Settings, logger logger.Logger) (plans.ObjectStore, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(settings.Region),
	}
	if settings.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	return &s3Connector{
		client:    client,
		presigner: s3.NewPresignClient(client),
		settings:  settings,
		logger:    logger,
	}, nil
}

func (c *s3Connector) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.settings.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}

	c.logger.Info("Issued presigned upload URL for key ", key)
	return req.URL, nil
}

func (c *s3Connector) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.settings.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign download for %s: %w", key, err)
	}

	c.logger.Info("Issued presigned download URL for key ", key)
	return req.URL, nil
}

func (c *s3Connector) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.settings.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("failed to store object %s: %w", key, err)
	}

	c.logger.Info("Stored object with key ", key)
	return nil
}

func (c *s3Connector) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.settings.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	c.logger.Info("Deleted object with key ", key)
	return nil
}

func (c *s3Connector) Archive(ctx context.Context, key string) (string, error) {
	archivedKey := c.archiveKey(key)

	// Server-side copy into cold storage, the source object stays in place
	_, err := c.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:       aws.String(c.settings.Bucket),
		CopySource:   aws.String(c.settings.Bucket + "/" + key),
		Key:          aws.String(archivedKey),
		StorageClass: types.StorageClassGlacier,
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive object %s: %w", key, err)
	}

	c.logger.Info("Archived object to key ", archivedKey)
	return archivedKey, nil
}

// archiveKey maps an object key to its location under the archive folder.
func (c *s3Connector) archiveKey(key string) string {
	trimmed := strings.TrimPrefix(key, c.settings.UploadFolder+"/")
	return c.settings.ArchiveFolder + "/" + trimmed
}
