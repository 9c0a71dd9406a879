package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	appcfg "github.com/gracepath/core/internal/config"
)

// S3 stores objects in an S3 compatible bucket.
type S3 struct {
	client       *s3.Client
	bucket       string
	endpoint     *url.URL
	customDomain string
	pathStyle    bool
}

// NewS3 creates an S3 backend. A custom endpoint implies path-style access.
func NewS3(opts appcfg.S3Options) (*S3, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	region := strings.TrimSpace(opts.Region)
	accessKey := strings.TrimSpace(opts.AccessKeyID)
	secretKey := strings.TrimSpace(opts.SecretAccessKey)
	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket/region/access_key_id/secret_access_key are required")
	}

	rawEndpoint := strings.TrimSpace(opts.Endpoint)
	endpoint := rawEndpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", region)
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid s3 endpoint: %s", endpoint)
	}

	pathStyle := opts.PathStyleAccess || rawEndpoint != ""

	client := s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	}, func(o *s3.Options) {
		if rawEndpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = pathStyle
	})

	return &S3{
		client:       client,
		bucket:       bucket,
		endpoint:     parsed,
		customDomain: strings.TrimRight(strings.TrimSpace(opts.CustomDomain), "/"),
		pathStyle:    pathStyle,
	}, nil
}

func (s *S3) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	key = normalizeObjectKey(key)
	if !validObjectKey(key) {
		return "", ErrInvalidKey
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *S3) Get(ctx context.Context, key string) ([]byte, error) {
	key = normalizeObjectKey(key)
	if !validObjectKey(key) {
		return nil, ErrInvalidKey
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// URL returns the public URL of key, preferring the custom domain.
func (s *S3) URL(key string) string {
	key = normalizeObjectKey(key)
	if s.customDomain != "" {
		return s.customDomain + "/" + key
	}
	basePath := strings.TrimSuffix(s.endpoint.Path, "/")
	if s.pathStyle {
		return s.endpoint.Scheme + "://" + s.endpoint.Host + basePath + "/" + s.bucket + "/" + key
	}
	host := s.endpoint.Host
	if !strings.HasPrefix(strings.ToLower(host), strings.ToLower(s.bucket)+".") {
		host = s.bucket + "." + host
	}
	return s.endpoint.Scheme + "://" + host + basePath + "/" + key
}
