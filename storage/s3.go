package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

var ErrIncompleteS3Config = errors.New("incomplete S3 configuration")

type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string // for S3 compatible services
	Key      string
	Secret   string
	Prefix   string
	SSE      string
	// PublicURL is the prefix of object URLs, the bucket URL is used when empty
	PublicURL string
}

type S3Storage struct {
	config   S3Config
	s3Client *s3.S3
	uploader *s3manager.Uploader
}

func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	if strings.TrimSpace(cfg.Bucket) == "" || strings.TrimSpace(cfg.Region) == "" {
		return nil, ErrIncompleteS3Config
	}
	awsConfig := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Key != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.Key, cfg.Secret, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, err
	}
	client := s3.New(sess)
	return &S3Storage{
		config:   cfg,
		s3Client: client,
		uploader: s3manager.NewUploaderWithClient(client),
	}, nil
}

func (s *S3Storage) remotePath(key string) string {
	if s.config.Prefix == "" {
		return key
	}
	return joinURL(s.config.Prefix, key)
}

func (s *S3Storage) Save(ctx context.Context, key, contentType string, reader io.Reader) (string, error) {
	input := s3manager.UploadInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(s.remotePath(key)),
		ContentType: aws.String(contentType),
		Body:        reader,
	}
	if s.config.SSE != "" {
		input.ServerSideEncryption = aws.String(s.config.SSE)
	}
	result, err := s.uploader.UploadWithContext(ctx, &input)
	if err != nil {
		return "", err
	}
	if s.config.PublicURL == "" {
		return result.Location, nil
	}
	return s.URL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.remotePath(key)),
	})
	return err
}

func (s *S3Storage) URL(key string) string {
	if s.config.PublicURL == "" {
		return "https://" + s.config.Bucket + ".s3." + s.config.Region + ".amazonaws.com/" + s.remotePath(key)
	}
	return joinURL(s.config.PublicURL, s.remotePath(key))
}
