package adapter

import (
	"CoinVestAPI/internal/config"
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StorageAdapter stores deposit proof images in a private bucket and hands
// out short-lived presigned URLs for reading them back.
type StorageAdapter struct {
	client        *s3.Client
	bucket        string
	presignClient *s3.PresignClient
}

func NewStorageAdapter(cfg *config.AppConfig, s3Client *s3.Client) *StorageAdapter {
	var presignClient *s3.PresignClient
	if s3Client != nil {
		presignClient = s3.NewPresignClient(s3Client)
	}

	return &StorageAdapter{
		client:        s3Client,
		bucket:        cfg.S3BucketProofs,
		presignClient: presignClient,
	}
}

func (s *StorageAdapter) Store(ctx context.Context, file *multipart.FileHeader, key string) error {
	if s.client == nil {
		return errors.New("s3 client is not initialized")
	}

	fileOpened, err := file.Open()
	if err != nil {
		return err
	}
	defer fileOpened.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(filepath.ToSlash(key)),
		Body:        fileOpened,
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *StorageAdapter) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	if s.presignClient == nil {
		return "", errors.New("s3 client is not initialized")
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *StorageAdapter) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return errors.New("s3 client is not initialized")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
