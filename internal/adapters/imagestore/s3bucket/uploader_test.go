package s3bucket

import (
	"context"
	"errors"
	"image/color"
	"io"
	"path/filepath"
	"testing"

	ports "pet-store/internal/ports/imagestore"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	keys []string
	size map[string]int
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(in.Body)
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, aws.ToString(in.Bucket)+"/"+key)
	f.size[key] = len(b)
	return &s3.PutObjectOutput{}, nil
}

func srcImage(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "avatar.jpg")
	require.NoError(t, imaging.Save(imaging.New(500, 500, color.Black), p))
	return p
}

func TestUpload_PutsEachVariant(t *testing.T) {
	fake := &fakeS3{size: map[string]int{}}
	up := newUploader(fake, Config{Bucket: "pets-bucket", Region: "us-east-1", Prefix: "/media/"})

	variants, err := up.Upload(context.Background(), srcImage(t), ports.UploadOptions{Key: "pets/avatar/p1"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"pets-bucket/media/pets/avatar/p1-standard.jpg",
		"pets-bucket/media/pets/avatar/p1-square.jpg",
	}, fake.keys)
	assert.Positive(t, fake.size["media/pets/avatar/p1-square.jpg"])

	require.Len(t, variants, 2)
	assert.Equal(t, "https://pets-bucket.s3.us-east-1.amazonaws.com/media/pets/avatar/p1-standard.jpg", variants[0].URL)
}

func TestUpload_BaseURLFromEndpointOrPublic(t *testing.T) {
	up := newUploader(&fakeS3{size: map[string]int{}}, Config{Bucket: "b", Endpoint: "http://localhost:9000/"})
	assert.Equal(t, "http://localhost:9000/b", up.baseURL)

	up = newUploader(&fakeS3{size: map[string]int{}}, Config{Bucket: "b", PublicBaseURL: "https://cdn.example.com/"})
	assert.Equal(t, "https://cdn.example.com", up.baseURL)
}

func TestUpload_PutFailure(t *testing.T) {
	up := newUploader(&fakeS3{err: errors.New("access denied")}, Config{Bucket: "b", Region: "us-east-1"})

	_, err := up.Upload(context.Background(), srcImage(t), ports.UploadOptions{Key: "pets/avatar/p1"})
	require.Error(t, err)
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.ErrorIs(t, err, ErrS3NotConfigured)
}
