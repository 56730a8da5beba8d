package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectGetter is the subset of *s3.Client used by the S3 source.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ directory.Loader = (*S3)(nil)

// S3 loads records from a JSON object in an S3-compatible bucket.
type S3 struct {
	client ObjectGetter
	bucket string
	key    string
}

// S3Config holds explicit construction parameters. Credentials come from the
// default AWS chain (environment, shared config, instance role).
type S3Config struct {
	Bucket    string
	Key       string
	Region    string
	Endpoint  string // optional; enables a custom endpoint such as MinIO
	PathStyle bool
}

// NewS3 builds an S3 source using the default AWS configuration.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, errors.New("s3 bucket and key required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewS3WithClient(client, cfg.Bucket, cfg.Key), nil
}

// NewS3WithClient builds an S3 source around an existing client.
func NewS3WithClient(client ObjectGetter, bucket, key string) *S3 {
	return &S3{client: client, bucket: bucket, key: key}
}

// Name describes the source.
func (s *S3) Name() string {
	return "s3 " + s.bucket + "/" + s.key
}

// Load fetches and decodes the object. A missing object is a status failure.
func (s *S3) Load(ctx context.Context) ([]directory.Record, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, directory.NewLoadError(s.Name(), directory.ErrStatus, err)
		}
		return nil, directory.NewLoadError(s.Name(), directory.ErrTransport, err)
	}
	defer out.Body.Close()

	return Decode(s.Name(), out.Body)
}
