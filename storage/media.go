package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Franklin-pro/simpo-planet-studio-bn/config"
	"github.com/Franklin-pro/simpo-planet-studio-bn/utils"

	"github.com/docker/go-units"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const thumbSize = 400

type Kind string

const (
	KindImage Kind = "image"
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

var (
	// ErrUpstream is returned when the media store fails
	ErrUpstream = errors.New("media upload failed")
	// ErrInvalidMedia is returned for inline payloads that can't be accepted
	ErrInvalidMedia = errors.New("invalid media")
)

// Uploader turns inline payloads into stored objects. It remembers the keys it stored until Discard.
type Uploader struct {
	Store   StorageAPI
	MaxSize int64
	Timeout time.Duration

	stored []string
}

// NewUploader returns an uploader for the default store with the configured limits
func NewUploader() *Uploader {
	return &Uploader{Store: Default, MaxSize: config.MediaMaxBytes(), Timeout: config.MEDIA_TIMEOUT}
}

func IsInline(value string) bool {
	return strings.HasPrefix(value, "data:")
}

type payload struct {
	data []byte
	mime *mimetype.MIME
}

// decode parses a "data:<mime>;base64,<data>" URI and checks the content matches kind
func (u *Uploader) decode(value string, kind Kind) (*payload, error) {
	meta, encoded, found := strings.Cut(strings.TrimPrefix(value, "data:"), ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: expected a base64 data URI", ErrInvalidMedia)
	}
	if u.MaxSize > 0 && int64(base64.StdEncoding.DecodedLen(len(encoded))) > u.MaxSize+2 {
		return nil, fmt.Errorf("%w: larger than %s", ErrInvalidMedia, units.HumanSize(float64(u.MaxSize)))
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMedia, err)
	}
	if u.MaxSize > 0 && int64(len(data)) > u.MaxSize {
		return nil, fmt.Errorf("%w: larger than %s", ErrInvalidMedia, units.HumanSize(float64(u.MaxSize)))
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidMedia)
	}
	mime := mimetype.Detect(data)
	if !isKind(mime, kind) {
		return nil, fmt.Errorf("%w: %s is not %s", ErrInvalidMedia, mime.String(), kind)
	}
	return &payload{data: data, mime: mime}, nil
}

func isKind(mime *mimetype.MIME, kind Kind) bool {
	for m := mime; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), string(kind)+"/") {
			return true
		}
	}
	return false
}

// objectKey follows <folder>/<year>/<month>/<id><ext>
func objectKey(folder string, now time.Time, suffix string) string {
	return fmt.Sprintf("%s/%d/%02d/%s%s", folder, now.Year(), now.Month(), uuid.NewString(), suffix)
}

func (u *Uploader) save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()
	url, err := u.Store.Save(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("media upload")
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	u.stored = append(u.stored, key)
	return url, nil
}

// Discard deletes every object stored so far, for requests that failed after uploading.
// It runs even when ctx is already done.
func (u *Uploader) Discard(ctx context.Context) {
	if len(u.stored) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.Timeout)
	defer cancel()
	for _, key := range u.stored {
		if err := u.Store.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("media cleanup")
		}
	}
	u.stored = nil
}

// Resolve uploads *value when it holds an inline payload and replaces it with the public URL.
// Any other value is left as it is.
func (u *Uploader) Resolve(ctx context.Context, value *string, kind Kind, folder string) error {
	if !IsInline(*value) {
		return nil
	}
	p, err := u.decode(*value, kind)
	if err != nil {
		return err
	}
	url, err := u.save(ctx, objectKey(folder, time.Now().UTC(), p.mime.Extension()), p.mime.String(), p.data)
	if err != nil {
		return err
	}
	*value = url
	return nil
}

// ResolveImage is Resolve for images that also stores a JPEG thumbnail next to the original.
// A payload the thumbnailer can't decode is stored without thumbnail.
func (u *Uploader) ResolveImage(ctx context.Context, value, thumb *string, folder string) error {
	if !IsInline(*value) {
		return nil
	}
	p, err := u.decode(*value, KindImage)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	url, err := u.save(ctx, objectKey(folder, now, p.mime.Extension()), p.mime.String(), p.data)
	if err != nil {
		return err
	}
	*value = url

	var buf bytes.Buffer
	if _, err = utils.CreateThumb(thumbSize, bytes.NewReader(p.data), &buf); err != nil {
		log.Warn().Err(err).Str("mime", p.mime.String()).Msg("thumbnail skipped")
		return nil
	}
	thumbURL, err := u.save(ctx, objectKey(folder, now, "_thumb.jpg"), "image/jpeg", buf.Bytes())
	if err != nil {
		return err
	}
	*thumb = thumbURL
	return nil
}
