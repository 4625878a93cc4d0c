package s3bucket

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"pet-store/internal/adapters/imagestore"
	ports "pet-store/internal/ports/imagestore"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrS3NotConfigured = errors.New("s3 uploader not configured")

type Config struct {
	Bucket string
	Region string

	// Endpoint opcional (MinIO, LocalStack). Activa path-style.
	Endpoint string

	// Prefix se antepone a cada key ("uploads" => uploads/pets/avatar/<id>-square.jpg).
	Prefix string

	// PublicBaseURL reemplaza la URL pública derivada del bucket (CDN, etc.).
	PublicBaseURL string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Uploader struct {
	client  putObjectAPI
	bucket  string
	prefix  string
	baseURL string
	specs   []imagestore.Spec
}

func New(ctx context.Context, cfg Config) (*Uploader, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrS3NotConfigured
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("s3 uploader: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if ep := strings.TrimSpace(cfg.Endpoint); ep != "" {
			o.BaseEndpoint = aws.String(ep)
			o.UsePathStyle = true
		}
	})

	return newUploader(client, cfg), nil
}

func newUploader(client putObjectAPI, cfg Config) *Uploader {
	base := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if base == "" {
		switch {
		case strings.TrimSpace(cfg.Endpoint) != "":
			base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		default:
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		baseURL: base,
		specs:   imagestore.DefaultSpecs,
	}
}

func (u *Uploader) Upload(ctx context.Context, localPath string, opts ports.UploadOptions) ([]ports.Variant, error) {
	renditions, err := imagestore.Render(localPath, u.specs)
	if err != nil {
		return nil, err
	}

	out := make([]ports.Variant, 0, len(renditions))
	for _, r := range renditions {
		key := imagestore.ObjectName(path.Join(u.prefix, opts.Key), r.Suffix)

		_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:       aws.String(u.bucket),
			Key:          aws.String(key),
			Body:         bytes.NewReader(r.Data),
			ContentType:  aws.String("image/jpeg"),
			CacheControl: aws.String("public, max-age=31536000"),
		})
		if err != nil {
			return nil, fmt.Errorf("s3 put %s: %w", key, err)
		}

		out = append(out, ports.Variant{
			Suffix: r.Suffix,
			URL:    u.baseURL + "/" + key,
		})
	}

	if err := os.Remove(localPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove original: %w", err)
	}
	return out, nil
}
