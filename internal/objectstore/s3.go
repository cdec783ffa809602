// Package objectstore uploads export files to an S3-compatible bucket
// through presigned PUT URLs.
package objectstore

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/solidarias/internal/netx"
	"github.com/google/uuid"
)

// PresignExpiry bounds how long a presigned URL stays usable.
const PresignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	uploadToPresignedURL = netx.UploadToS3PresignedURL

	now = time.Now
)

// Uploader stores a named blob and returns the object key it was stored
// under.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// S3Config holds the connection settings of the bucket.
type S3Config struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

type S3Uploader struct {
	config     S3Config
	httpClient *http.Client
}

func NewS3Uploader(cfg S3Config, httpClient *http.Client) *S3Uploader {
	return &S3Uploader{config: cfg, httpClient: httpClient}
}

// StorageKey returns a fresh key for name, e.g.
// exports/2026/10/18/<uuid>/products.csv.
func StorageKey(name string) string {
	d := now()
	return fmt.Sprintf("exports/%d/%d/%d/%v/%s", d.Year(), d.Month(), d.Day(), uuid.New(), name)
}

func (u *S3Uploader) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(u.config.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.config.RootUser,
			u.config.RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if u.config.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(u.config.BaseEndpoint)
			// MinIO and most self-hosted stores do not serve virtual-host buckets.
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// PresignPut returns a fresh key for name and a URL accepting a PUT of it.
func (u *S3Uploader) PresignPut(ctx context.Context, name string) (string, string, error) {
	presignClient, err := u.getPresignClient(ctx)
	if err != nil {
		return "", "", fmt.Errorf("presign client error: %w", err)
	}

	bucket := u.config.Bucket
	key := StorageKey(name)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", "", fmt.Errorf("presign error: %w", err)
	}

	return key, req.URL, nil
}

// Upload presigns a PUT for name and sends data to it.
func (u *S3Uploader) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key, url, err := u.PresignPut(ctx, name)
	if err != nil {
		return "", err
	}
	if err := uploadToPresignedURL(ctx, u.httpClient, url, contentType, data); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}
