package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/adrianliechti/contentkit/pkg/source"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

var _ source.Provider = &Provider{}

// Provider reads the objects below a prefix of an S3 bucket.
type Provider struct {
	client *s3.Client

	bucket string
	prefix string

	region   string
	endpoint string

	accessKey string
	secretKey string
}

type Option func(*Provider)

func WithPrefix(prefix string) Option {
	return func(p *Provider) {
		p.prefix = prefix
	}
}

func WithRegion(region string) Option {
	return func(p *Provider) {
		p.region = region
	}
}

// WithEndpoint targets an S3 compatible service using path style addressing.
func WithEndpoint(url string) Option {
	return func(p *Provider) {
		p.endpoint = url
	}
}

func WithCredentials(accessKey, secretKey string) Option {
	return func(p *Provider) {
		p.accessKey = accessKey
		p.secretKey = secretKey
	}
}

func New(ctx context.Context, bucket string, options ...Option) (*Provider, error) {
	if bucket == "" {
		return nil, errors.New("invalid bucket")
	}

	p := &Provider{
		bucket: bucket,
	}

	for _, option := range options {
		option(p)
	}

	var loaders []func(*config.LoadOptions) error

	if p.region != "" {
		loaders = append(loaders, config.WithRegion(p.region))
	}

	if p.accessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(p.accessKey, p.secretKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loaders...)

	if err != nil {
		return nil, err
	}

	p.client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if p.endpoint != "" {
			o.BaseEndpoint = aws.String(p.endpoint)
			o.UsePathStyle = true
		}
	})

	return p, nil
}

func (p *Provider) Files(ctx context.Context) ([]source.File, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(p.bucket),
	}

	if p.prefix != "" {
		input.Prefix = aws.String(p.prefix)
	}

	var result []source.File

	paginator := s3.NewListObjectsV2Paginator(p.client, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)

		if err != nil {
			return nil, convertError(err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)

			if strings.HasSuffix(key, "/") {
				continue
			}

			file, err := p.file(ctx, key)

			if err != nil {
				return nil, err
			}

			result = append(result, *file)
		}
	}

	return result, nil
}

func (p *Provider) file(ctx context.Context, key string) (*source.File, error) {
	output, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return nil, fmt.Errorf("getting object %s: %w", key, err)
	}

	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)

	if err != nil {
		return nil, err
	}

	name := path.Base(key)
	contentType := aws.ToString(output.ContentType)

	if contentType == "" || strings.HasSuffix(contentType, "/octet-stream") {
		contentType = source.ContentType(name)
	}

	return &source.File{
		Name: name,

		Content:     data,
		ContentType: contentType,
	}, nil
}

var ErrBucketNotFound = errors.New("bucket not found")

func convertError(err error) error {
	var apiErr smithy.APIError

	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchBucket" {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, apiErr.ErrorMessage())
	}

	return fmt.Errorf("listing objects: %w", err)
}

// Client exposes the underlying S3 client.
func (p *Provider) Client() *s3.Client {
	return p.client
}
