package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func newTestUploader(t *testing.T) (*Uploader, *DiskStorage) {
	t.Helper()
	disk, err := NewDiskStorage(t.TempDir(), "http://localhost:8080/media/")
	require.NoError(t, err)
	return &Uploader{Store: disk, MaxSize: 1 << 20, Timeout: time.Second}, disk
}

// stored returns the path of a URL produced by disk below its base directory
func stored(t *testing.T, disk *DiskStorage, url string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(url, "http://localhost:8080/media/"), url)
	return disk.getFullPath(strings.TrimPrefix(url, "http://localhost:8080/media/"))
}

func TestDiskStorage(t *testing.T) {
	disk, err := NewDiskStorage(t.TempDir(), "http://localhost:8080/media")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := disk.Save(ctx, "music/2026/01/a.txt", "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/music/2026/01/a.txt", url)

	data, err := os.ReadFile(disk.getFullPath("music/2026/01/a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	rec := httptest.NewRecorder()
	disk.Serve("music/2026/01/a.txt", httptest.NewRequest("GET", "/media/music/2026/01/a.txt", nil), rec)
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())

	require.NoError(t, disk.Delete(ctx, "music/2026/01/a.txt"))
	_, err = os.Stat(disk.getFullPath("music/2026/01/a.txt"))
	assert.True(t, os.IsNotExist(err))

	// keys can't escape the base directory
	assert.Equal(t, filepath.Join(disk.BasePath, "etc", "passwd"), disk.getFullPath("../../etc/passwd"))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = disk.Save(cancelled, "x.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve(t *testing.T) {
	u, disk := newTestUploader(t)
	ctx := context.Background()

	value := dataURI("image/png", pngBytes(t, 10, 10))
	require.NoError(t, u.Resolve(ctx, &value, KindImage, "artists"))
	now := time.Now().UTC()
	assert.Contains(t, value, "/artists/"+now.Format("2006/01")+"/")
	assert.True(t, strings.HasSuffix(value, ".png"))
	_, err := os.Stat(stored(t, disk, value))
	assert.NoError(t, err)

	for _, unchanged := range []string{"", "https://cdn.example.com/a.png"} {
		v := unchanged
		require.NoError(t, u.Resolve(ctx, &v, KindImage, "artists"))
		assert.Equal(t, unchanged, v)
	}
}

func TestResolveRejects(t *testing.T) {
	u, _ := newTestUploader(t)
	ctx := context.Background()
	u.MaxSize = 100

	tests := []struct {
		name  string
		value string
		kind  Kind
	}{
		{"not base64 uri", "data:image/png,plain", KindImage},
		{"bad base64", "data:image/png;base64,@@@", KindImage},
		{"wrong kind", dataURI("audio/mpeg", pngBytes(t, 2, 2)), KindAudio},
		{"too large", dataURI("image/png", make([]byte, 500)), KindImage},
		{"empty", "data:image/png;base64,", KindImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := tt.value
			err := u.Resolve(ctx, &value, tt.kind, "music")
			assert.ErrorIs(t, err, ErrInvalidMedia)
			assert.Equal(t, tt.value, value)
		})
	}
}

type failingStore struct{}

func (failingStore) Save(context.Context, string, string, io.Reader) (string, error) {
	return "", errors.New("bucket unavailable")
}

func (failingStore) Delete(context.Context, string) error { return nil }

func (failingStore) URL(key string) string { return key }

func TestResolveUpstreamFailure(t *testing.T) {
	u := &Uploader{Store: failingStore{}, MaxSize: 1 << 20, Timeout: time.Second}
	value := dataURI("image/png", pngBytes(t, 4, 4))
	err := u.Resolve(context.Background(), &value, KindImage, "gallery")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.True(t, IsInline(value))
}

func TestResolveImageThumbnail(t *testing.T) {
	u, disk := newTestUploader(t)
	ctx := context.Background()

	value := dataURI("image/png", pngBytes(t, 800, 600))
	thumb := ""
	require.NoError(t, u.ResolveImage(ctx, &value, &thumb, "gallery"))
	assert.True(t, strings.HasSuffix(value, ".png"))
	require.True(t, strings.HasSuffix(thumb, "_thumb.jpg"), thumb)

	file, err := os.Open(stored(t, disk, thumb))
	require.NoError(t, err)
	defer file.Close()
	cfg, format, err := image.DecodeConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestDiscard(t *testing.T) {
	u, disk := newTestUploader(t)
	ctx := context.Background()

	value := dataURI("image/png", pngBytes(t, 600, 300))
	thumb := ""
	require.NoError(t, u.ResolveImage(ctx, &value, &thumb, "gallery"))
	audio := dataURI("audio/mpeg", []byte("ID3\x04\x00\x00\x00\x00\x00\x00"))
	require.NoError(t, u.Resolve(ctx, &audio, KindAudio, "music"))
	paths := []string{stored(t, disk, value), stored(t, disk, thumb), stored(t, disk, audio)}
	for _, p := range paths {
		_, err := os.Stat(p)
		require.NoError(t, err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	u.Discard(cancelled)
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), p)
	}
	// nothing left to remove
	u.Discard(ctx)
}

func TestS3Config(t *testing.T) {
	_, err := NewS3Storage(S3Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, ErrIncompleteS3Config)

	s, err := NewS3Storage(S3Config{Bucket: "media", Region: "eu-west-1", Prefix: "portfolio", Key: "k", Secret: "s"})
	require.NoError(t, err)
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/portfolio/music/a.mp3", s.URL("music/a.mp3"))

	s, err = NewS3Storage(S3Config{Bucket: "media", Region: "eu-west-1", PublicURL: "https://cdn.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/music/a.mp3", s.URL("music/a.mp3"))
}
