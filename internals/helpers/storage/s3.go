// Package storage uploads club logos and event images to an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"videoach_backend/internals/configs"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrDisabled = errors.New("object storage is not configured")

// Uploader is what controllers depend on.
type Uploader interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

type Config struct {
	Region        string
	Bucket        string
	Endpoint      string // MinIO and friends
	PublicBaseURL string
	PathStyle     bool
}

type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3(ctx context.Context, cfg Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, ErrDisabled
	}
	region := cfg.Region
	if region == "" {
		region = "eu-west-3"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		if cfg.Endpoint != "" {
			base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
		}
	}
	return &S3Store{client: client, bucket: cfg.Bucket, baseURL: base}, nil
}

// NewFromEnv returns nil (uploads disabled) when S3_BUCKET is empty.
func NewFromEnv(ctx context.Context) Uploader {
	st, err := NewS3(ctx, Config{
		Region:        configs.GetEnv("S3_REGION"),
		Bucket:        configs.GetEnv("S3_BUCKET"),
		Endpoint:      configs.GetEnv("S3_ENDPOINT"),
		PublicBaseURL: configs.GetEnv("S3_PUBLIC_BASE_URL"),
		PathStyle:     configs.GetEnvBool("S3_PATH_STYLE", false),
	})
	if err != nil {
		log.Printf("⚠️ [STORAGE] uploads disabled: %v", err)
		return nil
	}
	log.Printf("✅ [STORAGE] bucket %s ready", st.bucket)
	return st
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	return err
}

func (s *S3Store) KeyFromURL(url string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
