// Package publish uploads materialized HTML snapshots of a tree to S3 or an
// S3-compatible store.
package publish

import (
	"bytes"
	"context"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vango-dev/vtree/internal/config"
	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/internal/logging"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// ContentType is the content type of uploaded snapshots.
const ContentType = "text/html; charset=utf-8"

// ObjectPutter is the subset of the S3 client the publisher uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher renders trees as full HTML pages and uploads them.
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
	render render.Options
	logger *zap.Logger
}

// Result describes an uploaded snapshot.
type Result struct {
	Bucket string
	Key    string
	Size   int
	ETag   string
}

// URI returns the s3:// URI of the snapshot.
func (r *Result) URI() string {
	return "s3://" + r.Bucket + "/" + r.Key
}

// New creates a publisher writing to cfg.Bucket under cfg.Prefix.
func New(client ObjectPutter, cfg config.PublishConfig, opts render.Options) *Publisher {
	return &Publisher{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		render: opts,
		logger: logging.Named("publish"),
	}
}

// Key returns the object key for name: the prefix joined with name, with
// ".html" appended when name has no extension.
func (p *Publisher) Key(name string) string {
	name = strings.TrimPrefix(name, "/")
	if path.Ext(name) == "" {
		name += ".html"
	}
	return p.prefix + name
}

// Publish renders t as a page titled title and uploads it as name.
func (p *Publisher) Publish(ctx context.Context, t *vdom.Tree, name, title string) (*Result, error) {
	if p.bucket == "" {
		return nil, vterrors.New(vterrors.CodePublishFailed).
			WithDetail("no bucket configured").
			WithSuggestion("Set publish.bucket in " + config.ConfigFileName)
	}
	if strings.TrimSpace(name) == "" {
		return nil, vterrors.New(vterrors.CodePublishFailed).WithDetail("snapshot name is empty")
	}

	m := render.NewMaterializer(render.NewHTMLHost(), p.render)
	var buf bytes.Buffer
	if err := render.RenderPage(&buf, render.PageData{Body: m.ToDocumentFragment(t), Title: title}); err != nil {
		return nil, vterrors.New(vterrors.CodePublishFailed).Wrap(err)
	}

	key := p.Key(name)
	out, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(ContentType),
		Metadata: map[string]string{
			"vtree-nodes":   strconv.Itoa(t.Len()),
			"vtree-created": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, vterrors.New(vterrors.CodePublishFailed).
			Wrap(errors.Wrapf(err, "put s3://%s/%s", p.bucket, key))
	}

	res := &Result{Bucket: p.bucket, Key: key, Size: buf.Len()}
	if out != nil && out.ETag != nil {
		res.ETag = *out.ETag
	}
	p.logger.Info("snapshot published",
		zap.String("uri", res.URI()),
		zap.Int("bytes", res.Size),
		zap.String("etag", res.ETag))
	return res, nil
}

// NewS3Client builds an S3 client for cfg. Credentials come from the
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN
// environment variables.
func NewS3Client(cfg config.PublishConfig) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  aws.NewCredentialsCache(envCredentials{}),
		UsePathStyle: cfg.PathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

type envCredentials struct{}

func (envCredentials) Retrieve(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return creds, nil
}
