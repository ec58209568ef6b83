package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Franklin-pro/simpo-planet-studio-bn/config"

	"github.com/rs/zerolog/log"
)

const (
	StorageTypeDisk = "disk"
	StorageTypeS3   = "s3"
)

// StorageAPI is a media store. Keys are relative slash-separated paths.
type StorageAPI interface {
	Save(ctx context.Context, key, contentType string, reader io.Reader) (url string, err error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Default is the store configured by Init
var Default StorageAPI

func Init() (err error) {
	switch config.MEDIA_STORAGE {
	case StorageTypeDisk:
		Default, err = NewDiskStorage(config.MEDIA_DIR, config.MEDIA_PUBLIC_URL)
	case StorageTypeS3:
		Default, err = NewS3Storage(S3Config{
			Bucket:    config.S3_BUCKET,
			Region:    config.S3_REGION,
			Endpoint:  config.S3_ENDPOINT,
			Key:       config.S3_KEY,
			Secret:    config.S3_SECRET,
			Prefix:    config.S3_PREFIX,
			SSE:       config.S3_SSE,
			PublicURL: config.MEDIA_PUBLIC_URL,
		})
	default:
		return fmt.Errorf("unknown media storage %q", config.MEDIA_STORAGE)
	}
	if err == nil {
		log.Info().Str("type", config.MEDIA_STORAGE).Msg("media storage ready")
	}
	return err
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
