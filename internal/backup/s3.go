package backup

import (
	"context"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/loginsystem/internal/config"
	"github.com/pkg/errors"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Target uploads backups to a bucket.
type S3Target struct {
	client putObjectAPI
	bucket string
	prefix string
}

// NewS3Target builds an S3 client from cfg. Static credentials are used when
// AccessKey is set, the default AWS credential chain otherwise. A non-empty
// BaseEndpoint switches to path-style addressing for MinIO.
func NewS3Target(ctx context.Context, cfg config.S3) (*S3Target, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Target{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Put uploads body as prefix+key.
func (t *S3Target) Put(ctx context.Context, key string, body io.ReadSeeker) (string, error) {
	objectKey := t.prefix + key

	_, err := t.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(t.bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", errors.Wrapf(err, "put s3://%s/%s", t.bucket, objectKey)
	}

	return "s3://" + path.Join(t.bucket, objectKey), nil
}

func (t *S3Target) String() string { return "s3://" + t.bucket }
