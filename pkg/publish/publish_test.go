package publish

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vtree/internal/config"
	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = string(b)
	return &s3.PutObjectOutput{ETag: aws.String(`"abc"`)}, nil
}

func newTree() *vdom.Tree {
	tree := vdom.NewTree()
	tree.Mount(vdom.H1(vdom.Text("Report")), vdom.P(vdom.Class("lead"), vdom.Text("ok")))
	return tree
}

func TestPublish(t *testing.T) {
	put := &fakePutter{}
	p := New(put, config.PublishConfig{Bucket: "snaps", Prefix: "pages/"}, render.Options{})

	res, err := p.Publish(context.Background(), newTree(), "daily", "Daily")
	require.NoError(t, err)

	assert.Equal(t, "snaps", res.Bucket)
	assert.Equal(t, "pages/daily.html", res.Key)
	assert.Equal(t, "s3://snaps/pages/daily.html", res.URI())
	assert.Equal(t, `"abc"`, res.ETag)
	assert.Equal(t, len(put.body), res.Size)

	assert.Equal(t, "snaps", aws.ToString(put.in.Bucket))
	assert.Equal(t, ContentType, aws.ToString(put.in.ContentType))
	assert.Equal(t, "2", put.in.Metadata["vtree-nodes"])
	assert.Contains(t, put.body, "<title>Daily</title>")
	assert.Contains(t, put.body, `<h1>Report</h1><p class="lead">ok</p>`)
}

func TestKey(t *testing.T) {
	p := New(&fakePutter{}, config.PublishConfig{Bucket: "b", Prefix: "x/"}, render.Options{})
	assert.Equal(t, "x/a.html", p.Key("a"))
	assert.Equal(t, "x/a.htm", p.Key("a.htm"))
	assert.Equal(t, "x/dir/a.html", p.Key("/dir/a"))
}

func TestPublishErrors(t *testing.T) {
	tree := newTree()

	_, err := New(&fakePutter{}, config.PublishConfig{}, render.Options{}).
		Publish(context.Background(), tree, "a", "")
	assert.ErrorIs(t, err, vterrors.New(vterrors.CodePublishFailed))

	_, err = New(&fakePutter{}, config.PublishConfig{Bucket: "b"}, render.Options{}).
		Publish(context.Background(), tree, " ", "")
	assert.ErrorIs(t, err, vterrors.New(vterrors.CodePublishFailed))

	denied := errors.New("access denied")
	_, err = New(&fakePutter{err: denied}, config.PublishConfig{Bucket: "b"}, render.Options{}).
		Publish(context.Background(), tree, "a", "")
	assert.ErrorIs(t, err, denied)
	assert.Contains(t, err.Error(), "put s3://b/a.html")
}

func TestNewS3Client(t *testing.T) {
	c := NewS3Client(config.PublishConfig{Region: "eu-west-1", Endpoint: "http://localhost:9000", PathStyle: true})
	o := c.Options()
	assert.Equal(t, "eu-west-1", o.Region)
	assert.Equal(t, "http://localhost:9000", aws.ToString(o.BaseEndpoint))
	assert.True(t, o.UsePathStyle)
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	_, err := envCredentials{}.Retrieve(context.Background())
	assert.Error(t, err)

	t.Setenv("AWS_ACCESS_KEY_ID", "id")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	creds, err := envCredentials{}.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "id", creds.AccessKeyID)
}
