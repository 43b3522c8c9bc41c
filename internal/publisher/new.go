package publisher

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appconfig "github.com/nguyentantai21042004/deckcast/internal/config"
	"github.com/nguyentantai21042004/deckcast/internal/logger"
)

// objectPutter is the slice of the S3 client we use
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Publisher struct {
	client objectPutter
	bucket string
	prefix string
	logger logger.Logger
}

// New creates an S3 Publisher using the default AWS credential chain,
// with optional region/profile overrides.
func New(ctx context.Context, cfg appconfig.S3Config, log logger.Logger) (Publisher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("publish bucket is required")
	}

	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newWithClient(client, cfg.Bucket, cfg.Prefix, log), nil
}

func newWithClient(client objectPutter, bucket, prefix string, log logger.Logger) *s3Publisher {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &s3Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: log,
	}
}
