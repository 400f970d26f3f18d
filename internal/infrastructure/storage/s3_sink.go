package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/domain/entity"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Target = "s3"

// S3Config holds connection settings for an S3-compatible object store.
type S3Config struct {
	Endpoint       string
	Region         string
	Bucket         string
	Prefix         string
	AccessKey      string
	SecretKey      string
	ForcePathStyle bool
}

// objectPutter is the subset of *s3.Client used by the sink.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink mirrors snapshots to a bucket: one timestamped object per run plus <prefix>/latest.json.
type S3Sink struct {
	client objectPutter
	bucket string
	prefix string
	logger port.Logger
	now    func() time.Time
}

// NewS3Client builds an S3 client with static credentials and an optional custom endpoint.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket name is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("s3: region is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	return s3.NewFromConfig(awsCfg, s3Opts...), nil
}

func NewS3Sink(client objectPutter, bucket, prefix string, logger port.Logger) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
		now:    time.Now,
	}
}

// Name implements port.SnapshotSink.
func (s *S3Sink) Name() string { return s3Target }

// Persist implements port.SnapshotSink.
func (s *S3Sink) Persist(ctx context.Context, candidates []entity.ScoredCandidate) error {
	data, err := EncodeSnapshot(candidates)
	if err != nil {
		return &entity.PersistenceError{Target: s3Target, Path: s.bucket, Err: err}
	}

	for _, key := range []string{path.Join(s.prefix, SnapshotName(s.now())), path.Join(s.prefix, "latest.json")} {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return &entity.PersistenceError{Target: s3Target, Path: s.bucket + "/" + key, Err: err}
		}
		s.logger.Debug("Snapshot object uploaded", "bucket", s.bucket, "key", key)
	}
	return nil
}
